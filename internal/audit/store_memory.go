package audit

import (
	"context"
	"sync"

	id "vedo/pkg/domain"
)

// InMemoryStore keeps entries in memory for the demo environment and tests.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Append(_ context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *entry
	s.entries = append(s.entries, &copied)
	return nil
}

// ListRecent returns up to limit entries, newest first.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Entry, 0, min(limit, len(s.entries)))
	for i := len(s.entries) - 1; i >= 0 && len(out) < limit; i-- {
		copied := *s.entries[i]
		out = append(out, &copied)
	}
	return out, nil
}

// ListByCreator returns all entries for a creator, newest first.
func (s *InMemoryStore) ListByCreator(_ context.Context, creatorID id.CreatorID) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].CreatorID == creatorID {
			copied := *s.entries[i]
			out = append(out, &copied)
		}
	}
	return out, nil
}
