package handler

import (
	"fmt"

	"watchlist/internal/screening"
	dErrors "watchlist/pkg/domain-errors"
)

// maxBatchSize caps one batch call; larger populations should be chunked by
// the caller.
const maxBatchSize = 500

// ScreenRequest is the HTTP request body for POST /v1/screen.
type ScreenRequest struct {
	Name           string   `json:"name"`
	EntityType     string   `json:"entity_type,omitempty"`
	Threshold      *float64 `json:"threshold,omitempty"`
	IncludeAliases *bool    `json:"include_aliases,omitempty"`
	EnabledStages  []string `json:"enabled_stages,omitempty"`

	// Parsed value (populated by Validate)
	parsedQuery screening.Query
}

// Validate validates the request and builds the domain query. An empty name
// is legal and screens to CLEAR; defaults are decided here, once, so the
// pipeline never re-evaluates them.
func (r *ScreenRequest) Validate() error {
	if len(r.Name) > 512 {
		return dErrors.New(dErrors.CodeValidation, "name must be at most 512 characters")
	}

	q := screening.NewQuery(r.Name)

	if r.EntityType != "" {
		entityType, err := screening.ParseEntityType(r.EntityType)
		if err != nil {
			return err
		}
		q.TypeFilter = entityType
	}

	if r.Threshold != nil {
		if *r.Threshold <= 0 || *r.Threshold > 1 {
			return dErrors.New(dErrors.CodeValidation, "threshold must be in (0, 1]")
		}
		q.Threshold = *r.Threshold
	}

	if r.IncludeAliases != nil {
		q.IncludeAliases = *r.IncludeAliases
	}

	stages, err := screening.ParseStageSet(r.EnabledStages)
	if err != nil {
		return err
	}
	q.Stages = stages

	r.parsedQuery = q
	return nil
}

// ParsedQuery returns the validated domain query.
func (r *ScreenRequest) ParsedQuery() screening.Query {
	return r.parsedQuery
}

// BatchScreenRequest is the HTTP request body for POST /v1/screen/batch.
type BatchScreenRequest struct {
	Queries []ScreenRequest `json:"queries"`
}

func (r *BatchScreenRequest) Validate() error {
	if len(r.Queries) == 0 {
		return dErrors.New(dErrors.CodeValidation, "queries must not be empty")
	}
	if len(r.Queries) > maxBatchSize {
		return dErrors.Newf(dErrors.CodeValidation, "at most %d queries per batch", maxBatchSize)
	}
	for i := range r.Queries {
		if err := r.Queries[i].Validate(); err != nil {
			return dErrors.Wrap(err, dErrors.CodeValidation, fmt.Sprintf("invalid query at index %d", i))
		}
	}
	return nil
}

// ParsedQueries returns the validated domain queries in input order.
func (r *BatchScreenRequest) ParsedQueries() []screening.Query {
	queries := make([]screening.Query, len(r.Queries))
	for i := range r.Queries {
		queries[i] = r.Queries[i].ParsedQuery()
	}
	return queries
}
