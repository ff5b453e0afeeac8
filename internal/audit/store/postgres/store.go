// Package postgres persists audit records in PostgreSQL.
//
// Expected schema (managed by external migration tooling):
//
//	CREATE TABLE match_audit_records (
//	    id           UUID PRIMARY KEY,
//	    recorded_at  TIMESTAMPTZ NOT NULL,
//	    query_name   TEXT NOT NULL,
//	    entity_id    TEXT NOT NULL,
//	    list_id      TEXT NOT NULL,
//	    stage        TEXT NOT NULL,
//	    matched_name TEXT NOT NULL,
//	    score        DOUBLE PRECISION NOT NULL,
//	    confidence   TEXT NOT NULL,
//	    reason       TEXT NOT NULL,
//	    status       TEXT NOT NULL
//	);
//	CREATE INDEX idx_match_audit_query ON match_audit_records (query_name, recorded_at);
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"watchlist/internal/screening"
	id "watchlist/pkg/domain"
)

// Store is the PostgreSQL audit store. Append-only by construction: no
// update or delete statements exist in this package.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, rec screening.MatchAuditRecord) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO match_audit_records
		 (id, recorded_at, query_name, entity_id, list_id, stage, matched_name, score, confidence, reason, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		uuid.NewString(),
		rec.Timestamp,
		rec.QueryName,
		rec.EntityID.String(),
		rec.ListID.String(),
		string(rec.Stage),
		rec.MatchedName,
		rec.Score,
		string(rec.Confidence),
		rec.Reason,
		string(rec.Status),
	)
	if err != nil {
		return fmt.Errorf("append audit record: %w", err)
	}
	return nil
}

func (s *Store) ListByQuery(ctx context.Context, queryName string) ([]screening.MatchAuditRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT recorded_at, query_name, entity_id, list_id, stage, matched_name, score, confidence, reason, status
		 FROM match_audit_records
		 WHERE query_name = $1
		 ORDER BY recorded_at`,
		queryName,
	)
	if err != nil {
		return nil, fmt.Errorf("list audit records: %w", err)
	}
	defer rows.Close()

	var out []screening.MatchAuditRecord
	for rows.Next() {
		var rec screening.MatchAuditRecord
		var entityID, listID, stage, confidence, status string
		if err := rows.Scan(
			&rec.Timestamp,
			&rec.QueryName,
			&entityID,
			&listID,
			&stage,
			&rec.MatchedName,
			&rec.Score,
			&confidence,
			&rec.Reason,
			&status,
		); err != nil {
			return nil, fmt.Errorf("scan audit record: %w", err)
		}
		rec.EntityID = id.EntityID(entityID)
		rec.ListID = id.ListID(listID)
		rec.Stage = screening.Stage(stage)
		rec.Confidence = screening.Confidence(confidence)
		rec.Status = screening.Status(status)
		out = append(out, rec)
	}
	return out, rows.Err()
}
