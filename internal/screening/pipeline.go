package screening

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"watchlist/internal/screening/metrics"
	"watchlist/pkg/requestcontext"
)

const (
	defaultStageTimeout = 250 * time.Millisecond

	// phoneticFloorRatio scales the query threshold down for the phonetic
	// stage's similarity guard; Soundex alone has a high false-positive rate.
	phoneticFloorRatio = 0.90
)

// Pipeline orchestrates the match stages against an EntityStore and derives a
// verdict per query. It holds no per-query state and is safe for concurrent use.
type Pipeline struct {
	store        EntityStore
	recorder     AuditRecorder
	logger       *slog.Logger
	metrics      *metrics.Metrics
	stageTimeout time.Duration
	workers      int
}

type Option func(*Pipeline)

func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(p *Pipeline) {
		p.recorder = recorder
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithStageTimeout bounds every store call; one slow lookup degrades its
// stage instead of stalling the query.
func WithStageTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		if d > 0 {
			p.stageTimeout = d
		}
	}
}

// WithBatchWorkers caps concurrent queries inside ScreenBatch.
func WithBatchWorkers(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// New constructs a screening pipeline. The entity store is required; the
// audit recorder, logger, and metrics are optional.
func New(store EntityStore, opts ...Option) (*Pipeline, error) {
	if store == nil {
		return nil, fmt.Errorf("entity store is required")
	}

	p := &Pipeline{
		store:        store,
		stageTimeout: defaultStageTimeout,
		workers:      defaultBatchWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Screen evaluates one query through the reliability ladder: exact and alias
// first, fuzzy only if nothing reliable was found, phonetic last. Store
// failures degrade the affected stage to zero candidates and are surfaced as
// warnings; Screen itself never fails.
func (p *Pipeline) Screen(ctx context.Context, q Query) Result {
	start := time.Now()

	res := Result{Query: q}
	normalized := Normalize(q.Name)
	threshold := q.threshold()

	if q.Stages.Exact {
		p.exactStage(ctx, q, normalized, &res)
	}
	if len(res.Matches) == 0 && q.IncludeAliases {
		p.aliasStage(ctx, q, normalized, &res)
	}
	if len(res.Matches) == 0 && q.Stages.Fuzzy {
		p.fuzzyStage(ctx, q, normalized, threshold, &res)
	}
	if len(res.Matches) == 0 && q.Stages.Phonetic {
		p.phoneticStage(ctx, q, normalized, threshold, &res)
	}

	rankMatches(res.Matches)
	res.Status = Verdict(res.Matches)
	res.Duration = time.Since(start)

	p.recordMatches(ctx, &res)

	if p.metrics != nil {
		p.metrics.ObserveScreen(string(res.Status), res.Duration)
	}
	if p.logger != nil {
		p.logger.DebugContext(ctx, "query screened",
			"status", res.Status,
			"matches", len(res.Matches),
			"entities_checked", res.Counters.EntitiesChecked,
			"duration_ms", res.Duration.Milliseconds(),
		)
	}

	return res
}

// lookup runs one store call under the stage timeout. Errors and timeouts
// degrade to an empty candidate set with a warning; the pipeline continues.
func (p *Pipeline) lookup(ctx context.Context, stage Stage, res *Result,
	fn func(ctx context.Context) ([]ReferenceEntity, error),
) []ReferenceEntity {
	ctx, cancel := context.WithTimeout(ctx, p.stageTimeout)
	defer cancel()

	entities, err := fn(ctx)
	if err != nil {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s stage degraded: %v", stage, err))
		if p.metrics != nil {
			p.metrics.IncrementStageDegraded(string(stage))
		}
		if p.logger != nil {
			p.logger.WarnContext(ctx, "entity store lookup degraded",
				"stage", stage,
				"error", err,
			)
		}
		return nil
	}

	res.Counters.EntitiesChecked += len(entities)
	return entities
}

// typeAllowed applies the query's optional entity-type filter.
func typeAllowed(q Query, e ReferenceEntity) bool {
	return q.TypeFilter == "" || q.TypeFilter == e.Type
}

func (p *Pipeline) keep(res *Result, m Match) {
	m.Confidence = Classify(m.Score)
	res.Matches = append(res.Matches, m)

	switch m.Stage {
	case StageExact:
		res.Counters.ExactMatches++
	case StageAlias:
		res.Counters.AliasMatches++
	case StageFuzzy:
		res.Counters.FuzzyMatches++
	case StagePhonetic:
		res.Counters.PhoneticMatches++
	}
	if p.metrics != nil {
		p.metrics.IncrementMatches(string(m.Stage))
	}
}

func (p *Pipeline) exactStage(ctx context.Context, q Query, normalized string, res *Result) {
	if normalized == "" {
		return
	}
	entities := p.lookup(ctx, StageExact, res, func(ctx context.Context) ([]ReferenceEntity, error) {
		return p.store.ExactLookup(ctx, normalized)
	})
	for i := range entities {
		e := entities[i]
		if !typeAllowed(q, e) {
			continue
		}
		p.keep(res, Match{
			Entity:      &e,
			Stage:       StageExact,
			MatchedName: e.PrimaryName,
			Score:       1.0,
			Reason:      fmt.Sprintf("normalized name exactly matches %q", e.PrimaryName),
		})
	}
}

func (p *Pipeline) aliasStage(ctx context.Context, q Query, normalized string, res *Result) {
	if q.Name == "" && normalized == "" {
		return
	}
	entities := p.lookup(ctx, StageAlias, res, func(ctx context.Context) ([]ReferenceEntity, error) {
		return p.store.AliasLookup(ctx, q.Name, normalized)
	})
	for i := range entities {
		e := entities[i]
		if !typeAllowed(q, e) {
			continue
		}
		matched := e.PrimaryName
		for _, variant := range e.NameVariants {
			if variant == q.Name {
				matched = variant
				break
			}
		}
		p.keep(res, Match{
			Entity:      &e,
			Stage:       StageAlias,
			MatchedName: matched,
			Score:       1.0,
			Reason:      fmt.Sprintf("name matches published alias %q", matched),
		})
	}
}

func (p *Pipeline) fuzzyStage(ctx context.Context, q Query, normalized string, threshold float64, res *Result) {
	if normalized == "" {
		return
	}
	candidates := p.lookup(ctx, StageFuzzy, res, func(ctx context.Context) ([]ReferenceEntity, error) {
		return p.store.FuzzyCandidates(ctx, normalized, threshold)
	})
	for i := range candidates {
		c := candidates[i]
		if !typeAllowed(q, c) {
			continue
		}
		score := CombinedSimilarity(q.Name, c.PrimaryName)
		if score < threshold {
			continue
		}
		p.keep(res, Match{
			Entity:      &c,
			Stage:       StageFuzzy,
			MatchedName: c.PrimaryName,
			Score:       score,
			Reason:      fmt.Sprintf("fuzzy similarity %.2f against %q", score, c.PrimaryName),
		})
	}
}

func (p *Pipeline) phoneticStage(ctx context.Context, q Query, normalized string, threshold float64, res *Result) {
	queryCode := Soundex(q.Name)
	if queryCode == "" {
		return
	}
	floor := phoneticFloorRatio * threshold

	candidates := p.lookup(ctx, StagePhonetic, res, func(ctx context.Context) ([]ReferenceEntity, error) {
		return p.store.PhoneticCandidates(ctx, normalized)
	})
	for i := range candidates {
		c := candidates[i]
		if !typeAllowed(q, c) {
			continue
		}
		if Soundex(c.PrimaryName) != queryCode {
			continue
		}
		score := CombinedSimilarity(q.Name, c.PrimaryName)
		if score < floor {
			continue
		}
		p.keep(res, Match{
			Entity:      &c,
			Stage:       StagePhonetic,
			MatchedName: c.PrimaryName,
			Score:       score,
			Reason:      fmt.Sprintf("phonetic code %s matches %q (similarity %.2f)", queryCode, c.PrimaryName, score),
		})
	}
}

// recordMatches mirrors every kept match into the audit trail. Failures are
// logged and counted but never fail the screening call.
func (p *Pipeline) recordMatches(ctx context.Context, res *Result) {
	if p.recorder == nil || len(res.Matches) == 0 {
		return
	}

	// Request-scoped time, so every record of one screening shares one stamp.
	now := requestcontext.Now(ctx)

	for _, m := range res.Matches {
		rec := MatchAuditRecord{
			Timestamp:   now,
			QueryName:   res.Query.Name,
			EntityID:    m.Entity.ID,
			ListID:      m.Entity.ListID,
			Stage:       m.Stage,
			MatchedName: m.MatchedName,
			Score:       m.Score,
			Confidence:  m.Confidence,
			Reason:      m.Reason,
			Status:      res.Status,
		}

		recCtx, cancel := context.WithTimeout(ctx, p.stageTimeout)
		err := p.recorder.RecordMatch(recCtx, rec)
		cancel()
		if err != nil {
			if p.metrics != nil {
				p.metrics.IncrementAuditWriteFailures()
			}
			if p.logger != nil {
				p.logger.ErrorContext(ctx, "audit record write failed",
					"entity_id", m.Entity.ID,
					"stage", m.Stage,
					"error", err,
				)
			}
		}
	}
}
