// Package memory provides the in-memory EntityStore used in dev mode and
// unit tests. All lookups are index-backed and bounded.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"watchlist/internal/screening"
	id "watchlist/pkg/domain"
)

// maxCandidates bounds fuzzy/phonetic candidate sets so the pipeline never
// scores an unbounded population.
const maxCandidates = 200

// Store is an in-memory EntityStore. Reads are index lookups under RLock;
// writes (ingestion) rebuild the indexes wholesale, mirroring the
// replace-per-list lifecycle of reference data.
type Store struct {
	mu       sync.RWMutex
	entities map[id.EntityID]screening.ReferenceEntity
	order    []id.EntityID

	byNormalized map[string][]id.EntityID
	byAlias      map[string][]id.EntityID
	bySoundex    map[string][]id.EntityID
	byList       map[id.ListID][]id.EntityID
}

func NewStore() *Store {
	s := &Store{}
	s.reindex(nil)
	return s
}

// reindex rebuilds every index from the given entity set. Must be called
// with s.mu held for writing (or before the store is shared).
func (s *Store) reindex(entities []screening.ReferenceEntity) {
	s.entities = make(map[id.EntityID]screening.ReferenceEntity, len(entities))
	s.order = make([]id.EntityID, 0, len(entities))
	s.byNormalized = make(map[string][]id.EntityID)
	s.byAlias = make(map[string][]id.EntityID)
	s.bySoundex = make(map[string][]id.EntityID)
	s.byList = make(map[id.ListID][]id.EntityID)

	for _, e := range entities {
		s.index(e)
	}
}

func (s *Store) index(e screening.ReferenceEntity) {
	s.entities[e.ID] = e
	s.order = append(s.order, e.ID)
	s.byNormalized[e.NormalizedName] = append(s.byNormalized[e.NormalizedName], e.ID)
	for _, alias := range e.NameVariants {
		s.byAlias[alias] = append(s.byAlias[alias], e.ID)
	}
	if code := screening.Soundex(e.NormalizedName); code != "" {
		s.bySoundex[code] = append(s.bySoundex[code], e.ID)
	}
	s.byList[e.ListID] = append(s.byList[e.ListID], e.ID)
}

// ReplaceList atomically swaps the entities of one list, leaving other lists
// untouched. This is the only write path; matching never mutates entities.
func (s *Store) ReplaceList(_ context.Context, listID id.ListID, entities []screening.ReferenceEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]screening.ReferenceEntity, 0, len(s.order)+len(entities))
	for _, eid := range s.order {
		if e := s.entities[eid]; e.ListID != listID {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entities...)

	s.reindex(kept)
	return nil
}

// Add upserts a single entity. Intended for tests and small fixtures.
func (s *Store) Add(_ context.Context, e screening.ReferenceEntity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]screening.ReferenceEntity, 0, len(s.order)+1)
	for _, eid := range s.order {
		if eid != e.ID {
			kept = append(kept, s.entities[eid])
		}
	}
	kept = append(kept, e)

	s.reindex(kept)
	return nil
}

// Len returns the number of stored entities across all lists.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entities)
}

func (s *Store) collect(ids []id.EntityID, limit int) []screening.ReferenceEntity {
	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}
	out := make([]screening.ReferenceEntity, 0, limit)
	for _, eid := range ids[:limit] {
		out = append(out, s.entities[eid])
	}
	return out
}

func (s *Store) ExactLookup(_ context.Context, normalizedName string) ([]screening.ReferenceEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byNormalized[normalizedName], 0), nil
}

func (s *Store) AliasLookup(_ context.Context, rawName, normalizedName string) ([]screening.ReferenceEntity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[id.EntityID]struct{})
	var ids []id.EntityID
	for _, eid := range s.byAlias[rawName] {
		if _, ok := seen[eid]; !ok {
			seen[eid] = struct{}{}
			ids = append(ids, eid)
		}
	}
	// Defensive duplicate of the exact lookup: entities renamed between list
	// revisions may only be reachable by normalized name.
	for _, eid := range s.byNormalized[normalizedName] {
		if _, ok := seen[eid]; !ok {
			seen[eid] = struct{}{}
			ids = append(ids, eid)
		}
	}
	return s.collect(ids, 0), nil
}

// FuzzyCandidates prefilters on the first token: shared two-rune prefix,
// edit distance <= 2, or containment. The threshold is deliberately unused;
// retrieval must be a superset for the pipeline's threshold filtering to
// stay monotonic.
func (s *Store) FuzzyCandidates(_ context.Context, normalizedName string, _ float64) ([]screening.ReferenceEntity, error) {
	queryToken := firstToken(normalizedName)
	if queryToken == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var ids []id.EntityID
	for _, eid := range s.order {
		if len(ids) >= maxCandidates {
			break
		}
		if tokensPlausiblyClose(queryToken, firstToken(s.entities[eid].NormalizedName)) {
			ids = append(ids, eid)
		}
	}
	return s.collect(ids, maxCandidates), nil
}

func (s *Store) PhoneticCandidates(_ context.Context, normalizedName string) ([]screening.ReferenceEntity, error) {
	code := screening.Soundex(normalizedName)
	if code == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.bySoundex[code], maxCandidates), nil
}

func firstToken(normalized string) string {
	if i := strings.IndexByte(normalized, ' '); i >= 0 {
		return normalized[:i]
	}
	return normalized
}

func tokensPlausiblyClose(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	if pa, pb := prefix(a, 2), prefix(b, 2); pa == pb {
		return true
	}
	return levenshtein.ComputeDistance(a, b) <= 2
}

func prefix(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
