// Package store provides storage backends for check-in session records.
//
// This file implements a PostgreSQL-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"

	_ "embed"

	_ "github.com/lib/pq"

	"github.com/lisahealth/checkin/internal/models"
)

//go:embed migrations_postgres.sql
var postgresMigrations string

// PostgresStore persists session records in a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL store with the given DSN.
func NewPostgresStore(opts ...Option) (*PostgresStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewPostgresStore invoked", "DSN_set", cfg.DSN != "")

	if cfg.DSN == "" {
		slog.Error("PostgresStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		slog.Error("Failed to open PostgreSQL connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("PostgreSQL ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(postgresMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("PostgreSQL migrations applied successfully")

	return &PostgresStore{db: db}, nil
}

// SaveSessionRecord stores or replaces a session record by its ID.
func (s *PostgresStore) SaveSessionRecord(rec models.SessionRecord) error {
	answersJSON, summaryJSON, err := marshalRecordColumns(rec)
	if err != nil {
		slog.Error("PostgresStore SaveSessionRecord marshal failed", "error", err, "id", rec.ID)
		return err
	}

	query := `
		INSERT INTO session_records (id, display_name, started_at, completed_at, answers, summary)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			started_at = EXCLUDED.started_at,
			completed_at = EXCLUDED.completed_at,
			answers = EXCLUDED.answers,
			summary = EXCLUDED.summary`

	_, err = s.db.Exec(query, rec.ID, rec.DisplayName, rec.StartedAt, rec.CompletedAt, answersJSON, summaryJSON)
	if err != nil {
		slog.Error("PostgresStore SaveSessionRecord failed", "error", err, "id", rec.ID)
		return err
	}
	slog.Debug("PostgresStore SaveSessionRecord succeeded", "id", rec.ID, "displayName", rec.DisplayName)
	return nil
}

// GetSessionRecord retrieves a session record, nil when not found.
func (s *PostgresStore) GetSessionRecord(id string) (*models.SessionRecord, error) {
	query := `SELECT id, display_name, started_at, completed_at, answers, summary
			  FROM session_records WHERE id = $1`

	rec, err := scanSessionRecord(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		slog.Debug("PostgresStore GetSessionRecord not found", "id", id)
		return nil, nil
	}
	if err != nil {
		slog.Error("PostgresStore GetSessionRecord failed", "error", err, "id", id)
		return nil, err
	}
	return rec, nil
}

// ListSessionRecords returns all stored records, newest completion first.
func (s *PostgresStore) ListSessionRecords() ([]models.SessionRecord, error) {
	query := `SELECT id, display_name, started_at, completed_at, answers, summary
			  FROM session_records ORDER BY completed_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		slog.Error("PostgresStore ListSessionRecords query failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	return collectSessionRecords(rows)
}

// Close closes the PostgreSQL database connection.
func (s *PostgresStore) Close() error {
	slog.Debug("Closing PostgreSQL database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close PostgreSQL database", "error", err)
	}
	return err
}
