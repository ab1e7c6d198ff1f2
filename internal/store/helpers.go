// Package store provides scanning and marshaling helpers shared by SQL backends.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lisahealth/checkin/internal/models"
)

// marshalRecordColumns serializes the answers and summary columns as JSON.
// Either may be empty, which maps to NULL.
func marshalRecordColumns(rec models.SessionRecord) (interface{}, interface{}, error) {
	var answersJSON, summaryJSON interface{}

	if len(rec.Answers) > 0 {
		b, err := json.Marshal(rec.Answers)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal answers failed: %w", err)
		}
		answersJSON = string(b)
	}

	if rec.Summary != nil {
		b, err := json.Marshal(rec.Summary)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal summary failed: %w", err)
		}
		summaryJSON = string(b)
	}

	return answersJSON, summaryJSON, nil
}

// unmarshalRecordColumns restores the answers and summary fields from their
// JSON columns.
func unmarshalRecordColumns(rec *models.SessionRecord, answersJSON, summaryJSON sql.NullString) error {
	if answersJSON.Valid && answersJSON.String != "" {
		if err := json.Unmarshal([]byte(answersJSON.String), &rec.Answers); err != nil {
			return fmt.Errorf("unmarshal answers failed: %w", err)
		}
	}
	if summaryJSON.Valid && summaryJSON.String != "" {
		rec.Summary = &models.SessionSummary{}
		if err := json.Unmarshal([]byte(summaryJSON.String), rec.Summary); err != nil {
			return fmt.Errorf("unmarshal summary failed: %w", err)
		}
	}
	return nil
}

// scanSessionRecord scans a SessionRecord from a single sql.Row.
func scanSessionRecord(row *sql.Row) (*models.SessionRecord, error) {
	var rec models.SessionRecord
	var answersJSON, summaryJSON sql.NullString

	err := row.Scan(&rec.ID, &rec.DisplayName, &rec.StartedAt, &rec.CompletedAt, &answersJSON, &summaryJSON)
	if err != nil {
		return nil, err
	}
	if err := unmarshalRecordColumns(&rec, answersJSON, summaryJSON); err != nil {
		return nil, err
	}
	return &rec, nil
}

// collectSessionRecords scans all SessionRecords from sql.Rows.
func collectSessionRecords(rows *sql.Rows) ([]models.SessionRecord, error) {
	var out []models.SessionRecord
	for rows.Next() {
		var rec models.SessionRecord
		var answersJSON, summaryJSON sql.NullString
		if err := rows.Scan(&rec.ID, &rec.DisplayName, &rec.StartedAt, &rec.CompletedAt, &answersJSON, &summaryJSON); err != nil {
			return nil, fmt.Errorf("scan session record failed: %w", err)
		}
		if err := unmarshalRecordColumns(&rec, answersJSON, summaryJSON); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
