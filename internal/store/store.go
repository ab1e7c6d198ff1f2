// Package store provides storage backends for completed check-in sessions.
//
// It includes an in-memory store plus SQLite, PostgreSQL, and Redis backends.
// The engine itself holds no persistence; stores only archive finished
// session transcripts and summaries for later review.
package store

import (
	"sort"
	"sync"

	"github.com/lisahealth/checkin/internal/models"
)

// Store defines persistence for completed session records.
type Store interface {
	// SaveSessionRecord stores or replaces a session record by its ID.
	SaveSessionRecord(rec models.SessionRecord) error

	// GetSessionRecord retrieves a session record, nil when not found.
	GetSessionRecord(id string) (*models.SessionRecord, error)

	// ListSessionRecords returns all stored records, newest completion first.
	ListSessionRecords() ([]models.SessionRecord, error)

	// Close releases any underlying resources.
	Close() error
}

// Opts holds configuration for store backends.
type Opts struct {
	// DSN is the database connection string (file path for SQLite).
	DSN string
	// KeyPrefix namespaces Redis keys; defaults to "checkin:session:".
	KeyPrefix string
}

// Option configures store backends.
type Option func(*Opts)

// WithDSN sets the database connection string.
func WithDSN(dsn string) Option {
	return func(o *Opts) {
		o.DSN = dsn
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) Option {
	return func(o *Opts) {
		o.KeyPrefix = prefix
	}
}

// InMemoryStore is a simple in-memory store for session records.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string]models.SessionRecord
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string]models.SessionRecord)}
}

// SaveSessionRecord stores or replaces a session record by its ID.
func (s *InMemoryStore) SaveSessionRecord(rec models.SessionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	return nil
}

// GetSessionRecord retrieves a session record, nil when not found.
func (s *InMemoryStore) GetSessionRecord(id string) (*models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// ListSessionRecords returns all stored records, newest completion first.
func (s *InMemoryStore) ListSessionRecords() ([]models.SessionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SessionRecord, 0, len(s.records))
	for _, rec := range s.records {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryStore) Close() error {
	return nil
}
