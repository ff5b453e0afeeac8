package screening

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks EntityStore,AuditRecorder

import "context"

// EntityStore supplies candidate entities to the pipeline. Implementations
// own their retrieval strategy; the pipeline re-scores and filters whatever
// comes back, so candidate methods should favor recall over precision.
type EntityStore interface {
	// ExactLookup returns entities whose normalized name equals normalizedName.
	// Runs on every query, so it must be indexed.
	ExactLookup(ctx context.Context, normalizedName string) ([]ReferenceEntity, error)

	// AliasLookup returns entities whose alias set contains rawName verbatim,
	// or whose normalized name equals normalizedName.
	AliasLookup(ctx context.Context, rawName, normalizedName string) ([]ReferenceEntity, error)

	// FuzzyCandidates returns a bounded superset of entities plausibly close
	// to normalizedName. The threshold is advisory; raising it must never
	// grow the candidate set.
	FuzzyCandidates(ctx context.Context, normalizedName string, threshold float64) ([]ReferenceEntity, error)

	// PhoneticCandidates returns a bounded superset of entities sharing a
	// phonetic fragment with normalizedName.
	PhoneticCandidates(ctx context.Context, normalizedName string) ([]ReferenceEntity, error)
}

// AuditRecorder persists match audit records. Calls are fire-and-forget from
// the pipeline's perspective: errors are logged and counted, never surfaced
// to the caller of Screen.
type AuditRecorder interface {
	RecordMatch(ctx context.Context, rec MatchAuditRecord) error
}
