// Package screening implements the sanctions-screening matching and decision
// engine: name normalization, similarity scoring, the staged matching
// pipeline, confidence classification, and verdict derivation.
package screening

import (
	"time"

	id "watchlist/pkg/domain"
	dErrors "watchlist/pkg/domain-errors"
)

// EntityType categorizes a reference-list entity.
type EntityType string

const (
	EntityTypeIndividual   EntityType = "individual"
	EntityTypeOrganization EntityType = "organization"
	EntityTypeVessel       EntityType = "vessel"
	EntityTypeAircraft     EntityType = "aircraft"
)

// ParseEntityType validates an entity type string at a trust boundary.
func ParseEntityType(s string) (EntityType, error) {
	switch t := EntityType(s); t {
	case EntityTypeIndividual, EntityTypeOrganization, EntityTypeVessel, EntityTypeAircraft:
		return t, nil
	}
	return "", dErrors.Newf(dErrors.CodeValidation, "unknown entity type: %s", s)
}

// ReferenceEntity is one reference-list record. Entities are created wholesale
// by ingestion and immutable between ingestion runs; matching never writes them.
type ReferenceEntity struct {
	ID         id.EntityID
	ListID     id.ListID
	ExternalID string
	Type       EntityType

	PrimaryName string
	// NameVariants holds published aliases, deduplicated, original order.
	NameVariants []string
	// NormalizedName is always Normalize(PrimaryName); ingestion recomputes it
	// whenever PrimaryName changes.
	NormalizedName string

	// Descriptive metadata, carried into results but never consulted by
	// matching logic.
	Program     string
	Nationality []string
}

// Stage identifies which matching strategy produced a candidate match.
type Stage string

const (
	StageExact    Stage = "exact"
	StageAlias    Stage = "alias"
	StageFuzzy    Stage = "fuzzy"
	StagePhonetic Stage = "phonetic"
)

// StageSet records which stages a query enables. Built once at query
// construction; the pipeline never re-parses stage names.
type StageSet struct {
	Exact    bool
	Fuzzy    bool
	Phonetic bool
}

// AllStages enables every stage (the default).
func AllStages() StageSet {
	return StageSet{Exact: true, Fuzzy: true, Phonetic: true}
}

// ParseStageSet builds a StageSet from stage names. An empty list means all
// stages; unknown names are rejected.
func ParseStageSet(names []string) (StageSet, error) {
	if len(names) == 0 {
		return AllStages(), nil
	}
	var ss StageSet
	for _, n := range names {
		switch Stage(n) {
		case StageExact:
			ss.Exact = true
		case StageFuzzy:
			ss.Fuzzy = true
		case StagePhonetic:
			ss.Phonetic = true
		default:
			return StageSet{}, dErrors.Newf(dErrors.CodeValidation, "unknown stage: %s", n)
		}
	}
	return ss, nil
}

// Confidence buckets a continuous similarity score.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Status is the screening verdict for one query.
type Status string

const (
	StatusClear          Status = "CLEAR"
	StatusSanctioned     Status = "SANCTIONED"
	StatusReviewRequired Status = "REVIEW_REQUIRED"
	StatusPotentialMatch Status = "POTENTIAL_MATCH"
)

// DefaultThreshold is the fuzzy similarity threshold applied when a query
// carries none.
const DefaultThreshold = 0.85

// Query is one request to screen a name. A zero-value Name is legal and
// yields CLEAR. The boundary layer is responsible for producing only valid
// Query values; the pipeline does not re-validate.
type Query struct {
	Name string
	// TypeFilter, when set, restricts matches to entities of that type.
	TypeFilter EntityType
	// Threshold is the minimum fuzzy similarity; zero means DefaultThreshold.
	Threshold      float64
	IncludeAliases bool
	Stages         StageSet
}

// NewQuery builds a Query with the documented defaults: threshold 0.85,
// aliases included, all stages enabled.
func NewQuery(name string) Query {
	return Query{
		Name:           name,
		Threshold:      DefaultThreshold,
		IncludeAliases: true,
		Stages:         AllStages(),
	}
}

func (q Query) threshold() float64 {
	if q.Threshold <= 0 {
		return DefaultThreshold
	}
	return q.Threshold
}

// Match is one piece of evidence linking a query to a reference entity.
type Match struct {
	Entity *ReferenceEntity
	Stage  Stage
	// MatchedName is whichever of PrimaryName/alias actually matched.
	MatchedName string
	// Score is 1.0 for exact/alias stages and within [threshold, 1.0] for
	// fuzzy/phonetic matches that survived filtering.
	Score      float64
	Confidence Confidence
	Reason     string
}

// StageCounters are diagnostic counters accumulated per query.
type StageCounters struct {
	ExactMatches    int
	AliasMatches    int
	FuzzyMatches    int
	PhoneticMatches int
	// EntitiesChecked accumulates the size of every candidate set examined,
	// not just kept matches.
	EntitiesChecked int
}

// Result is the output of screening one query. Ephemeral; matches are
// mirrored into audit records by the recorder.
type Result struct {
	Query   Query
	Status  Status
	Matches []Match

	Counters StageCounters
	Duration time.Duration

	// Warnings records non-fatal stage degradations (store timeouts etc.).
	Warnings []string

	// Cancelled marks a batch entry whose query was never dispatched because
	// the batch context was cancelled first.
	Cancelled bool
}

// BatchResult aggregates the results of screening N independent queries.
// Results[i] always corresponds to the i-th input query.
type BatchResult struct {
	Results         []Result
	TotalDuration   time.Duration
	AverageDuration time.Duration
}

// MatchAuditRecord is the append-only audit mirror of one produced match.
// Created once per kept match; never updated or deleted by this core.
type MatchAuditRecord struct {
	Timestamp   time.Time
	QueryName   string
	EntityID    id.EntityID
	ListID      id.ListID
	Stage       Stage
	MatchedName string
	Score       float64
	Confidence  Confidence
	Reason      string
	// Status is the overall verdict of the query that produced this match.
	Status Status
}
