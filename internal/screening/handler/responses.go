package handler

import (
	"watchlist/internal/screening"
)

// MatchResponse mirrors one candidate match on the wire.
type MatchResponse struct {
	EntityID    string   `json:"entity_id"`
	ListID      string   `json:"list_id"`
	ExternalID  string   `json:"external_id"`
	EntityType  string   `json:"entity_type"`
	PrimaryName string   `json:"primary_name"`
	Program     string   `json:"program,omitempty"`
	Nationality []string `json:"nationality,omitempty"`

	Stage       string  `json:"stage"`
	MatchedName string  `json:"matched_name"`
	Score       float64 `json:"score"`
	Confidence  string  `json:"confidence"`
	Reason      string  `json:"reason"`
}

// CountersResponse carries the diagnostic stage counters.
type CountersResponse struct {
	ExactMatches    int `json:"exact_matches"`
	AliasMatches    int `json:"alias_matches"`
	FuzzyMatches    int `json:"fuzzy_matches"`
	PhoneticMatches int `json:"phonetic_matches"`
	EntitiesChecked int `json:"entities_checked"`
}

// ScreenResponse is the HTTP response body for one screened query.
type ScreenResponse struct {
	Name       string           `json:"name"`
	Status     string           `json:"status"`
	Matches    []MatchResponse  `json:"matches"`
	Counters   CountersResponse `json:"counters"`
	DurationMS float64          `json:"duration_ms"`
	Warnings   []string         `json:"warnings,omitempty"`
	Cancelled  bool             `json:"cancelled,omitempty"`
}

// BatchScreenResponse is the HTTP response body for a batch call. Results
// preserve input order.
type BatchScreenResponse struct {
	Results           []ScreenResponse `json:"results"`
	TotalDurationMS   float64          `json:"total_duration_ms"`
	AverageDurationMS float64          `json:"average_duration_ms"`
}

// FromResult converts a domain result into its wire shape.
func FromResult(res screening.Result) ScreenResponse {
	matches := make([]MatchResponse, 0, len(res.Matches))
	for _, m := range res.Matches {
		matches = append(matches, MatchResponse{
			EntityID:    m.Entity.ID.String(),
			ListID:      m.Entity.ListID.String(),
			ExternalID:  m.Entity.ExternalID,
			EntityType:  string(m.Entity.Type),
			PrimaryName: m.Entity.PrimaryName,
			Program:     m.Entity.Program,
			Nationality: m.Entity.Nationality,
			Stage:       string(m.Stage),
			MatchedName: m.MatchedName,
			Score:       m.Score,
			Confidence:  string(m.Confidence),
			Reason:      m.Reason,
		})
	}

	return ScreenResponse{
		Name:    res.Query.Name,
		Status:  string(res.Status),
		Matches: matches,
		Counters: CountersResponse{
			ExactMatches:    res.Counters.ExactMatches,
			AliasMatches:    res.Counters.AliasMatches,
			FuzzyMatches:    res.Counters.FuzzyMatches,
			PhoneticMatches: res.Counters.PhoneticMatches,
			EntitiesChecked: res.Counters.EntitiesChecked,
		},
		DurationMS: float64(res.Duration.Microseconds()) / 1000.0,
		Warnings:   res.Warnings,
		Cancelled:  res.Cancelled,
	}
}

// FromBatchResult converts a batch result into its wire shape.
func FromBatchResult(batch screening.BatchResult) BatchScreenResponse {
	results := make([]ScreenResponse, 0, len(batch.Results))
	for _, res := range batch.Results {
		results = append(results, FromResult(res))
	}
	return BatchScreenResponse{
		Results:           results,
		TotalDurationMS:   float64(batch.TotalDuration.Microseconds()) / 1000.0,
		AverageDurationMS: float64(batch.AverageDuration.Microseconds()) / 1000.0,
	}
}
