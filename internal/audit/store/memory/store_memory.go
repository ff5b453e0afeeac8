package memory

import (
	"context"
	"sync"

	"watchlist/internal/screening"
)

// InMemoryStore is the dev/test audit store. Append-only, keyed by the
// originating query string.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[string][]screening.MatchAuditRecord
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[string][]screening.MatchAuditRecord)}
}

func (s *InMemoryStore) Append(_ context.Context, rec screening.MatchAuditRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.QueryName] = append(s.records[rec.QueryName], rec)
	return nil
}

func (s *InMemoryStore) ListByQuery(_ context.Context, queryName string) ([]screening.MatchAuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]screening.MatchAuditRecord{}, s.records[queryName]...), nil
}

// ListAll returns all audit records across all queries.
func (s *InMemoryStore) ListAll(_ context.Context) ([]screening.MatchAuditRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []screening.MatchAuditRecord
	for _, recs := range s.records {
		all = append(all, recs...)
	}
	return all, nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string][]screening.MatchAuditRecord)
}
