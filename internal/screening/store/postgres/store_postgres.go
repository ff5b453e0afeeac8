// Package postgres persists reference entities in PostgreSQL.
//
// Expected schema (managed by external migration tooling):
//
//	CREATE TABLE reference_entities (
//	    id              TEXT PRIMARY KEY,
//	    list_id         TEXT NOT NULL,
//	    external_id     TEXT NOT NULL,
//	    entity_type     TEXT NOT NULL,
//	    primary_name    TEXT NOT NULL,
//	    name_variants   TEXT[] NOT NULL DEFAULT '{}',
//	    normalized_name TEXT NOT NULL,
//	    soundex_code    TEXT NOT NULL DEFAULT '',
//	    program         TEXT NOT NULL DEFAULT '',
//	    nationality     TEXT[] NOT NULL DEFAULT '{}',
//	    UNIQUE (list_id, external_id)
//	);
//	CREATE INDEX idx_reference_entities_normalized ON reference_entities (normalized_name);
//	CREATE INDEX idx_reference_entities_soundex ON reference_entities (soundex_code);
//	CREATE INDEX idx_reference_entities_variants ON reference_entities USING GIN (name_variants);
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"watchlist/internal/screening"
	id "watchlist/pkg/domain"
)

// maxCandidates bounds fuzzy/phonetic candidate sets.
const maxCandidates = 200

const entityColumns = "id, list_id, external_id, entity_type, primary_name, name_variants, normalized_name, program, nationality"

// Store is the PostgreSQL-backed EntityStore.
type Store struct {
	db *sql.DB
}

// NewStore constructs a PostgreSQL entity store over an existing pool.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func scanEntities(rows *sql.Rows) ([]screening.ReferenceEntity, error) {
	var out []screening.ReferenceEntity
	for rows.Next() {
		var e screening.ReferenceEntity
		var entityID, listID, entityType string
		if err := rows.Scan(
			&entityID,
			&listID,
			&e.ExternalID,
			&entityType,
			&e.PrimaryName,
			pq.Array(&e.NameVariants),
			&e.NormalizedName,
			&e.Program,
			pq.Array(&e.Nationality),
		); err != nil {
			return nil, fmt.Errorf("scan reference entity: %w", err)
		}
		e.ID = id.EntityID(entityID)
		e.ListID = id.ListID(listID)
		e.Type = screening.EntityType(entityType)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) query(ctx context.Context, op, q string, args ...any) ([]screening.ReferenceEntity, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	return scanEntities(rows)
}

func (s *Store) ExactLookup(ctx context.Context, normalizedName string) ([]screening.ReferenceEntity, error) {
	return s.query(ctx, "exact lookup",
		"SELECT "+entityColumns+" FROM reference_entities WHERE normalized_name = $1",
		normalizedName,
	)
}

func (s *Store) AliasLookup(ctx context.Context, rawName, normalizedName string) ([]screening.ReferenceEntity, error) {
	return s.query(ctx, "alias lookup",
		"SELECT "+entityColumns+" FROM reference_entities WHERE $1 = ANY(name_variants) OR normalized_name = $2",
		rawName, normalizedName,
	)
}

// FuzzyCandidates retrieves a bounded superset keyed on the query's first
// token: entities whose first token shares a two-character prefix, or whose
// normalized name contains the whole token. The threshold is deliberately
// unused; retrieval stays a superset so pipeline filtering is monotonic.
func (s *Store) FuzzyCandidates(ctx context.Context, normalizedName string, _ float64) ([]screening.ReferenceEntity, error) {
	token := firstToken(normalizedName)
	if token == "" {
		return nil, nil
	}

	return s.query(ctx, "fuzzy candidates",
		`SELECT `+entityColumns+` FROM reference_entities
		 WHERE split_part(normalized_name, ' ', 1) LIKE $1 || '%'
		    OR normalized_name LIKE '%' || $2 || '%'
		 LIMIT $3`,
		prefix(token, 2), token, maxCandidates,
	)
}

func (s *Store) PhoneticCandidates(ctx context.Context, normalizedName string) ([]screening.ReferenceEntity, error) {
	code := screening.Soundex(normalizedName)
	if code == "" {
		return nil, nil
	}

	return s.query(ctx, "phonetic candidates",
		"SELECT "+entityColumns+" FROM reference_entities WHERE soundex_code = $1 LIMIT $2",
		code, maxCandidates,
	)
}

// ReplaceList swaps the entities of one list inside a transaction, so readers
// never observe a half-refreshed list.
func (s *Store) ReplaceList(ctx context.Context, listID id.ListID, entities []screening.ReferenceEntity) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace list: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM reference_entities WHERE list_id = $1", listID.String(),
	); err != nil {
		return fmt.Errorf("clear list %s: %w", listID, err)
	}

	const insert = `INSERT INTO reference_entities
		(id, list_id, external_id, entity_type, primary_name, name_variants, normalized_name, soundex_code, program, nationality)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, e := range entities {
		if _, err := tx.ExecContext(ctx, insert,
			e.ID.String(),
			e.ListID.String(),
			e.ExternalID,
			string(e.Type),
			e.PrimaryName,
			pq.Array(e.NameVariants),
			e.NormalizedName,
			screening.Soundex(e.NormalizedName),
			e.Program,
			pq.Array(e.Nationality),
		); err != nil {
			return fmt.Errorf("insert entity %s: %w", e.ExternalID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace list: %w", err)
	}
	return nil
}

func firstToken(normalized string) string {
	if i := strings.IndexByte(normalized, ' '); i >= 0 {
		return normalized[:i]
	}
	return normalized
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
