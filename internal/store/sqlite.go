// Package store provides storage backends for check-in session records.
//
// This file implements an SQLite-backed store.
package store

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "embed"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lisahealth/checkin/internal/models"
)

// DefaultDirPermissions defines the default permissions for database directories.
const DefaultDirPermissions = 0755

//go:embed migrations_sqlite.sql
var sqliteMigrations string

// SQLiteStore persists session records in an SQLite database file.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store with the given DSN.
// The DSN should be a file path to the SQLite database file.
// If the directory doesn't exist, it will be created.
func NewSQLiteStore(opts ...Option) (*SQLiteStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	slog.Debug("NewSQLiteStore invoked", "DSN_set", cfg.DSN != "")

	dsn := cfg.DSN
	if dsn == "" {
		slog.Error("SQLiteStore DSN not set")
		return nil, fmt.Errorf("database DSN not set")
	}

	dir := filepath.Dir(dsn)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		slog.Error("Failed to create database directory", "error", err, "dir", dir)
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		slog.Error("Failed to open SQLite connection", "error", err)
		return nil, err
	}

	if err := db.Ping(); err != nil {
		slog.Error("SQLite ping failed", "error", err)
		return nil, err
	}

	if _, err := db.Exec(sqliteMigrations); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	slog.Debug("SQLite migrations applied successfully")

	return &SQLiteStore{db: db}, nil
}

// SaveSessionRecord stores or replaces a session record by its ID.
func (s *SQLiteStore) SaveSessionRecord(rec models.SessionRecord) error {
	answersJSON, summaryJSON, err := marshalRecordColumns(rec)
	if err != nil {
		slog.Error("SQLiteStore SaveSessionRecord marshal failed", "error", err, "id", rec.ID)
		return err
	}

	query := `
		INSERT OR REPLACE INTO session_records (id, display_name, started_at, completed_at, answers, summary)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err = s.db.Exec(query, rec.ID, rec.DisplayName, rec.StartedAt, rec.CompletedAt, answersJSON, summaryJSON)
	if err != nil {
		slog.Error("SQLiteStore SaveSessionRecord failed", "error", err, "id", rec.ID)
		return err
	}
	slog.Debug("SQLiteStore SaveSessionRecord succeeded", "id", rec.ID, "displayName", rec.DisplayName)
	return nil
}

// GetSessionRecord retrieves a session record, nil when not found.
func (s *SQLiteStore) GetSessionRecord(id string) (*models.SessionRecord, error) {
	query := `SELECT id, display_name, started_at, completed_at, answers, summary
			  FROM session_records WHERE id = ?`

	rec, err := scanSessionRecord(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		slog.Debug("SQLiteStore GetSessionRecord not found", "id", id)
		return nil, nil
	}
	if err != nil {
		slog.Error("SQLiteStore GetSessionRecord failed", "error", err, "id", id)
		return nil, err
	}
	return rec, nil
}

// ListSessionRecords returns all stored records, newest completion first.
func (s *SQLiteStore) ListSessionRecords() ([]models.SessionRecord, error) {
	query := `SELECT id, display_name, started_at, completed_at, answers, summary
			  FROM session_records ORDER BY completed_at DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		slog.Error("SQLiteStore ListSessionRecords query failed", "error", err)
		return nil, err
	}
	defer rows.Close()

	return collectSessionRecords(rows)
}

// ClearSessionRecords deletes all session records (for tests).
func (s *SQLiteStore) ClearSessionRecords() error {
	_, err := s.db.Exec("DELETE FROM session_records")
	if err != nil {
		slog.Error("SQLiteStore ClearSessionRecords failed", "error", err)
		return err
	}
	return nil
}

// Close closes the SQLite database connection.
func (s *SQLiteStore) Close() error {
	slog.Debug("Closing SQLite database connection")
	err := s.db.Close()
	if err != nil {
		slog.Error("Failed to close SQLite database", "error", err)
	}
	return err
}
