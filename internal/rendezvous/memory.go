package rendezvous

import (
	"context"
	"sync"

	"eduverse/pkg/interfaces"
)

// MemoryStore is the in-process implementation of the rendezvous slot, used
// by tests and by deployments that don't care about the slot surviving a
// restart.
type MemoryStore struct {
	mu     sync.Mutex
	roomID string
	set    bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Store overwrites the slot with roomID, unconditionally.
func (s *MemoryStore) Store(_ context.Context, roomID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roomID = roomID
	s.set = true
	return nil
}

// Fetch returns the current slot value without consuming it.
func (s *MemoryStore) Fetch(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return "", interfaces.ErrRoomIDNotFound
	}
	return s.roomID, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
