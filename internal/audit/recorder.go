// Package audit persists match audit records. The trail is append-only:
// records are created once per produced match and never updated or deleted
// here; retention is an external policy.
package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"watchlist/internal/screening"
)

// Store is the persistence interface for audit records.
type Store interface {
	Append(ctx context.Context, rec screening.MatchAuditRecord) error
	ListByQuery(ctx context.Context, queryName string) ([]screening.MatchAuditRecord, error)
}

// Publisher streams audit records to downstream consumers (case management,
// SIEM). Publishing is best-effort; the store is the system of record.
type Publisher interface {
	Publish(ctx context.Context, rec screening.MatchAuditRecord) error
}

// Recorder implements screening.AuditRecorder over a store and an optional
// publisher.
type Recorder struct {
	store     Store
	publisher Publisher
	logger    *slog.Logger
}

type Option func(*Recorder)

func WithPublisher(p Publisher) Option {
	return func(r *Recorder) {
		r.publisher = p
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		r.logger = logger
	}
}

func NewRecorder(store Store, opts ...Option) (*Recorder, error) {
	if store == nil {
		return nil, fmt.Errorf("audit store is required")
	}

	r := &Recorder{store: store}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// RecordMatch appends one audit record. A publisher failure is logged but
// does not fail the call; a store failure does, and the pipeline decides
// whether to surface it (it never does).
func (r *Recorder) RecordMatch(ctx context.Context, rec screening.MatchAuditRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	if err := r.store.Append(ctx, rec); err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, rec); err != nil && r.logger != nil {
			r.logger.WarnContext(ctx, "audit record publish failed",
				"entity_id", rec.EntityID,
				"stage", rec.Stage,
				"error", err,
			)
		}
	}

	return nil
}

// List returns the audit trail for one query string, oldest first.
func (r *Recorder) List(ctx context.Context, queryName string) ([]screening.MatchAuditRecord, error) {
	return r.store.ListByQuery(ctx, queryName)
}
