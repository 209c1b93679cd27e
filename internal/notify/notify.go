// Package notify turns lifecycle events into outbound notification requests.
// Dispatch is fire-and-forget: it never blocks a transition, and delivery
// failures are logged, never surfaced to the caller.
package notify

import "context"

type EventType string

const (
	EventApproval     EventType = "approval"
	EventRejection    EventType = "rejection"
	EventSuspension   EventType = "suspension"
	EventReactivation EventType = "reactivation"
	EventDeactivation EventType = "deactivation"
)

// Event is the payload handed to the external notifier. The tenant contact
// address rides in the payload so the sender needs no store access.
type Event struct {
	Type       EventType         `json:"event_type"`
	TenantID   string            `json:"tenant_id"`
	TenantName string            `json:"tenant_name"`
	Payload    map[string]string `json:"payload"`
}

type Dispatcher interface {
	Dispatch(ev Event)
	Close()
}

// Sender attempts one delivery of an event. The dispatcher does not retry on
// its behalf beyond the single enqueue attempt.
type Sender interface {
	Send(ctx context.Context, ev Event) error
}
