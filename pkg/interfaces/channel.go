package interfaces

import (
	"context"

	"eduverse/pkg/types"
)

// Subscriber is a fan-out target registered with the channel layer. The
// channel layer treats subscribers as opaque: identity for membership
// bookkeeping, Deliver for handing over a published event.
type Subscriber interface {
	// ID uniquely identifies this subscriber across all groups.
	ID() string

	// Deliver hands a published event to the subscriber. Implementations
	// must not block the caller; a subscriber that cannot keep up drops
	// the event and returns an error.
	Deliver(event types.Event) error
}

// ChannelLayer maintains group membership and fans published events out to
// every current member of a group. Membership tables are owned exclusively
// by the layer; callers mutate only their own membership.
type ChannelLayer interface {
	// GroupAdd registers sub as a member of group. Registration is atomic:
	// the subscriber is a fan-out target immediately on return.
	GroupAdd(group string, sub Subscriber)

	// GroupDiscard removes sub from group. Discarding an unknown member is
	// a no-op. Publishes already in flight are not retracted.
	GroupDiscard(group string, sub Subscriber)

	// GroupSend publishes event to every current member of group. One call
	// is one delivery attempt per member; individual delivery failures do
	// not abort the fan-out.
	GroupSend(ctx context.Context, group string, event types.Event) error

	// Stats returns membership counters for monitoring.
	Stats() map[string]int
}
