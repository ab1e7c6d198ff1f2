// Package store provides storage backends for check-in session records.
//
// This file implements a Redis-backed store. Records are stored as JSON blobs
// keyed as "{prefix}{session_id}".
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/lisahealth/checkin/internal/models"
)

// DefaultKeyPrefix namespaces session record keys in Redis.
const DefaultKeyPrefix = "checkin:session:"

// RedisStore persists session records in Redis.
type RedisStore struct {
	client *redis.Client
	prefix string
	ctx    context.Context
}

// NewRedisStore creates a Redis-backed store from an existing client.
func NewRedisStore(client *redis.Client, opts ...Option) (*RedisStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if client == nil {
		return nil, fmt.Errorf("redis client not set")
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	slog.Debug("NewRedisStore invoked", "prefix", cfg.KeyPrefix)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("Redis ping failed", "error", err)
		return nil, err
	}

	return &RedisStore{client: client, prefix: cfg.KeyPrefix, ctx: ctx}, nil
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

// SaveSessionRecord stores or replaces a session record by its ID.
func (s *RedisStore) SaveSessionRecord(rec models.SessionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		slog.Error("RedisStore SaveSessionRecord marshal failed", "error", err, "id", rec.ID)
		return err
	}
	if err := s.client.Set(s.ctx, s.key(rec.ID), data, 0).Err(); err != nil {
		slog.Error("RedisStore SaveSessionRecord failed", "error", err, "id", rec.ID)
		return err
	}
	slog.Debug("RedisStore SaveSessionRecord succeeded", "id", rec.ID, "displayName", rec.DisplayName)
	return nil
}

// GetSessionRecord retrieves a session record, nil when not found.
func (s *RedisStore) GetSessionRecord(id string) (*models.SessionRecord, error) {
	val, err := s.client.Get(s.ctx, s.key(id)).Result()
	if err == redis.Nil {
		slog.Debug("RedisStore GetSessionRecord not found", "id", id)
		return nil, nil
	}
	if err != nil {
		slog.Error("RedisStore GetSessionRecord failed", "error", err, "id", id)
		return nil, err
	}

	var rec models.SessionRecord
	if err := json.Unmarshal([]byte(val), &rec); err != nil {
		slog.Error("RedisStore GetSessionRecord unmarshal failed", "error", err, "id", id)
		return nil, err
	}
	return &rec, nil
}

// ListSessionRecords returns all stored records, newest completion first.
func (s *RedisStore) ListSessionRecords() ([]models.SessionRecord, error) {
	keys, err := s.client.Keys(s.ctx, s.prefix+"*").Result()
	if err != nil {
		slog.Error("RedisStore ListSessionRecords keys failed", "error", err)
		return nil, err
	}

	out := make([]models.SessionRecord, 0, len(keys))
	for _, key := range keys {
		val, err := s.client.Get(s.ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			slog.Error("RedisStore ListSessionRecords get failed", "error", err, "key", key)
			return nil, err
		}
		var rec models.SessionRecord
		if err := json.Unmarshal([]byte(val), &rec); err != nil {
			slog.Error("RedisStore ListSessionRecords unmarshal failed", "error", err, "key", key)
			return nil, err
		}
		out = append(out, rec)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].CompletedAt.After(out[j].CompletedAt)
	})
	return out, nil
}

// Close closes the underlying Redis client.
func (s *RedisStore) Close() error {
	slog.Debug("Closing Redis client")
	return s.client.Close()
}
