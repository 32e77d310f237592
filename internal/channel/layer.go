package channel

import (
	"context"
	"log"
	"sync"

	"github.com/google/uuid"

	"eduverse/pkg/interfaces"
	"eduverse/pkg/types"
)

// InProcessLayer is the in-process implementation of the channel layer: a
// registry of named broadcast groups with RWMutex-guarded membership maps.
// Group names arrive pre-computed from pkg/types; the layer never interprets
// them.
type InProcessLayer struct {
	mu     sync.RWMutex
	groups map[string]map[string]interfaces.Subscriber // group -> subscriber ID -> subscriber
}

// NewInProcessLayer creates an empty channel layer.
func NewInProcessLayer() *InProcessLayer {
	return &InProcessLayer{
		groups: make(map[string]map[string]interfaces.Subscriber),
	}
}

// GroupAdd registers sub as a member of group. Re-adding an existing member
// replaces it, which keeps the operation idempotent for reconnecting clients.
func (l *InProcessLayer) GroupAdd(group string, sub interfaces.Subscriber) {
	if sub == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	members, ok := l.groups[group]
	if !ok {
		members = make(map[string]interfaces.Subscriber)
		l.groups[group] = members
	}
	members[sub.ID()] = sub
}

// GroupDiscard removes sub from group and drops the group's map once it is
// empty. Discarding a member that was never added is a no-op.
func (l *InProcessLayer) GroupDiscard(group string, sub interfaces.Subscriber) {
	if sub == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	members, ok := l.groups[group]
	if !ok {
		return
	}
	delete(members, sub.ID())
	if len(members) == 0 {
		delete(l.groups, group)
	}
}

// GroupSend publishes event to every current member of group. The member set
// is snapshotted under the read lock so delivery never runs while holding it.
// Delivery failures are logged and skipped; one publish is exactly one
// delivery attempt per member.
func (l *InProcessLayer) GroupSend(ctx context.Context, group string, event types.Event) error {
	if event == nil {
		return ErrNilEvent
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	l.mu.RLock()
	members := make([]interfaces.Subscriber, 0, len(l.groups[group]))
	for _, sub := range l.groups[group] {
		members = append(members, sub)
	}
	l.mu.RUnlock()

	// Publish ID ties the fan-out log lines of one publish together.
	publishID := uuid.New().String()
	for _, sub := range members {
		if err := sub.Deliver(event); err != nil {
			log.Printf("channel: delivery failed: publish=%s type=%s group=%s subscriber=%s: %v",
				publishID, event.EventType(), group, sub.ID(), err)
		}
	}
	log.Printf("channel: published: publish=%s type=%s group=%s members=%d",
		publishID, event.EventType(), group, len(members))

	return nil
}

// Stats returns membership counters for the health endpoint.
func (l *InProcessLayer) Stats() map[string]int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	memberships := 0
	for _, members := range l.groups {
		memberships += len(members)
	}
	return map[string]int{
		"active_groups":     len(l.groups),
		"group_memberships": memberships,
	}
}
