// Package rediscache decorates an EntityStore with a Redis cache over exact
// lookups, the one store call that runs on every query. The cache is never
// load-bearing: any Redis failure falls through to the inner store.
package rediscache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"watchlist/internal/screening"
)

const keyPrefix = "watchlist:exact:"

// Store wraps an inner EntityStore with cached exact lookups. Candidate
// retrieval methods delegate directly; their result sets are too query-shaped
// to cache usefully.
type Store struct {
	inner  screening.EntityStore
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewStore builds the caching decorator. TTL should be short enough that a
// list refresh becomes visible promptly.
func NewStore(inner screening.EntityStore, client *redis.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (s *Store) ExactLookup(ctx context.Context, normalizedName string) ([]screening.ReferenceEntity, error) {
	key := keyPrefix + normalizedName

	if payload, err := s.client.Get(ctx, key).Bytes(); err == nil {
		var cached []screening.ReferenceEntity
		if err := json.Unmarshal(payload, &cached); err == nil {
			return cached, nil
		}
		// Corrupt payload; fall through and overwrite below.
	}

	entities, err := s.inner.ExactLookup(ctx, normalizedName)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(entities); err == nil {
		if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil && s.logger != nil {
			s.logger.DebugContext(ctx, "entity cache write failed",
				"key", key,
				"error", err,
			)
		}
	}

	return entities, nil
}

func (s *Store) AliasLookup(ctx context.Context, rawName, normalizedName string) ([]screening.ReferenceEntity, error) {
	return s.inner.AliasLookup(ctx, rawName, normalizedName)
}

func (s *Store) FuzzyCandidates(ctx context.Context, normalizedName string, threshold float64) ([]screening.ReferenceEntity, error) {
	return s.inner.FuzzyCandidates(ctx, normalizedName, threshold)
}

func (s *Store) PhoneticCandidates(ctx context.Context, normalizedName string) ([]screening.ReferenceEntity, error) {
	return s.inner.PhoneticCandidates(ctx, normalizedName)
}
