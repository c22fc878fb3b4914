package wizard

import (
	"context"
	"encoding/json"
	"sync"
)

// InMemoryStore keeps sessions in process memory. Suitable for a single
// instance; multi-instance deployments use the Redis store.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string][]byte)}
}

// Save stores a deep copy so later mutations of the caller's session do not
// leak into the store.
func (s *InMemoryStore) Save(_ context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = raw
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	raw, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
