// Package ingest loads SDN-style designation lists into the entity store.
// It is the only writer of reference entities: each load replaces one list
// wholesale, matching the publish-then-refresh lifecycle of the source lists.
package ingest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"watchlist/internal/screening"
	id "watchlist/pkg/domain"
	dErrors "watchlist/pkg/domain-errors"
	pstrings "watchlist/pkg/platform/strings"
)

// ReplaceStore is the write-side slice of the entity store.
type ReplaceStore interface {
	ReplaceList(ctx context.Context, listID id.ListID, entities []screening.ReferenceEntity) error
}

// Loader parses published list files and refreshes the store.
type Loader struct {
	store  ReplaceStore
	logger *slog.Logger
}

func NewLoader(store ReplaceStore, logger *slog.Logger) (*Loader, error) {
	if store == nil {
		return nil, fmt.Errorf("entity store is required")
	}
	return &Loader{store: store, logger: logger}, nil
}

// CSV column layout. Aliases and nationalities are semicolon-separated
// within their cell.
const (
	colExternalID = iota
	colEntityType
	colPrimaryName
	colAliases
	colProgram
	colNationality
	columnCount
)

// LoadCSV reads one list in CSV form (header row required) and replaces the
// list's entities. Returns the number of entities loaded. Rows with an empty
// primary name are skipped with a warning; a malformed row fails the load so
// a truncated file never half-replaces a list.
func (l *Loader) LoadCSV(ctx context.Context, listID id.ListID, r io.Reader) (int, error) {
	if listID.IsNil() {
		return 0, dErrors.New(dErrors.CodeValidation, "list id is required")
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columnCount

	if _, err := reader.Read(); err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeValidation, "list file has no header row")
	}

	var entities []screening.ReferenceEntity
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("malformed row %d", line))
		}

		entity, ok, err := l.buildEntity(listID, row)
		if err != nil {
			return 0, dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid row %d", line))
		}
		if !ok {
			if l.logger != nil {
				l.logger.WarnContext(ctx, "skipping row with empty primary name",
					"list_id", listID,
					"line", line,
				)
			}
			continue
		}
		entities = append(entities, entity)
	}

	if err := l.store.ReplaceList(ctx, listID, entities); err != nil {
		return 0, fmt.Errorf("replace list %s: %w", listID, err)
	}

	if l.logger != nil {
		l.logger.InfoContext(ctx, "list loaded",
			"list_id", listID,
			"entities", len(entities),
		)
	}
	return len(entities), nil
}

func (l *Loader) buildEntity(listID id.ListID, row []string) (screening.ReferenceEntity, bool, error) {
	primary := strings.TrimSpace(row[colPrimaryName])
	if primary == "" {
		return screening.ReferenceEntity{}, false, nil
	}

	externalID := strings.TrimSpace(row[colExternalID])
	if externalID == "" {
		return screening.ReferenceEntity{}, false, fmt.Errorf("external id is required")
	}

	entityType, err := screening.ParseEntityType(strings.TrimSpace(row[colEntityType]))
	if err != nil {
		return screening.ReferenceEntity{}, false, err
	}

	return screening.ReferenceEntity{
		ID:             id.EntityID(uuid.NewString()),
		ListID:         listID,
		ExternalID:     externalID,
		Type:           entityType,
		PrimaryName:    primary,
		NameVariants:   pstrings.DedupeAndTrim(splitCell(row[colAliases])),
		NormalizedName: screening.Normalize(primary),
		Program:        strings.TrimSpace(row[colProgram]),
		Nationality:    pstrings.DedupeAndTrim(splitCell(row[colNationality])),
	}, true, nil
}

func splitCell(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}
	return strings.Split(cell, ";")
}
