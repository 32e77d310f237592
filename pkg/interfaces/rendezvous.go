package interfaces

import "context"

// RendezvousStore holds the single transient room-ID slot used to pass a chat
// room identifier from the client that initiates a chat to the client joining
// it. The slot is process-wide: Store overwrites unconditionally (last writer
// wins) and Fetch reads without consuming. There is no locking
// between a concurrent Store and Fetch and no expiry; the application assumes
// one active rendezvous at a time.
type RendezvousStore interface {
	// Store overwrites the slot with roomID.
	Store(ctx context.Context, roomID string) error

	// Fetch returns the current slot value, or ErrRoomIDNotFound when
	// nothing has been stored yet.
	Fetch(ctx context.Context) (string, error)

	// Close releases any resources held by the store.
	Close() error
}
