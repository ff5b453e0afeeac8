package worker

import (
	"context"
	"log/slog"

	"watchlist/internal/audit"
	"watchlist/internal/screening"
)

// Worker consumes audit records from a channel and persists them, decoupling
// the screening hot path from audit store latency. Records that fail to
// persist are logged and dropped; the trail is best-effort by contract.
type Worker struct {
	store  audit.Store
	inbox  <-chan screening.MatchAuditRecord
	logger *slog.Logger
}

func NewWorker(store audit.Store, inbox <-chan screening.MatchAuditRecord, logger *slog.Logger) *Worker {
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run drains the inbox until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec := <-w.inbox:
			if err := w.store.Append(ctx, rec); err != nil && w.logger != nil {
				w.logger.ErrorContext(ctx, "audit record dropped",
					"query", rec.QueryName,
					"entity_id", rec.EntityID,
					"error", err,
				)
			}
		}
	}
}
