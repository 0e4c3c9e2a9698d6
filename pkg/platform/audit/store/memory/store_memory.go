// Package memory keeps a bounded in-process audit trail. Useful for tests
// and for deployments that only need recent-query visibility.
package memory

import (
	"context"
	"sync"

	audit "fundsight/pkg/platform/audit"
)

const defaultCapacity = 1024

// Store retains the most recent events up to a fixed capacity.
type Store struct {
	mu       sync.RWMutex
	events   []audit.Event
	capacity int
}

// NewStore creates a store with the default capacity.
func NewStore() *Store {
	return &Store{capacity: defaultCapacity}
}

// Append implements audit.Store, evicting the oldest event when full.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.events) == s.capacity {
		s.events = s.events[1:]
	}
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of the retained trail, oldest first.
func (s *Store) Events() []audit.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]audit.Event, len(s.events))
	copy(out, s.events)
	return out
}
