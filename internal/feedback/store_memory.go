package feedback

import (
	"context"
	"sync"
)

// InMemoryStore keeps records in process memory. Used in development and
// tests; production deployments configure the Postgres store.
type InMemoryStore struct {
	mu      sync.RWMutex
	records []*Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Save(_ context.Context, record *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *record
	s.records = append(s.records, &copied)
	return nil
}

// All returns a snapshot of every saved record, oldest first.
func (s *InMemoryStore) All() []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Record, len(s.records))
	copy(out, s.records)
	return out
}
