package notify

import (
	"context"
	"sync"
	"time"

	"bizdesk-backend/internal/logger"
	"bizdesk-backend/internal/metrics"
)

const sendTimeout = 15 * time.Second

type dispatcher struct {
	sender Sender
	events chan Event
	done   chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewDispatcher starts a single delivery worker reading from a buffered
// queue. When the queue is full, Dispatch drops the event rather than block
// the transition that produced it.
func NewDispatcher(sender Sender, queueSize int) Dispatcher {
	if queueSize <= 0 {
		queueSize = 256
	}
	d := &dispatcher{
		sender: sender,
		events: make(chan Event, queueSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Dispatch never blocks and never panics: the mutex orders every enqueue
// against Close, so a transition racing shutdown drops its event instead of
// sending on a closed channel.
func (d *dispatcher) Dispatch(ev Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		logger.Warn("dispatcher closed, dropping event",
			"event_type", ev.Type, "tenant_id", ev.TenantID)
		metrics.NotificationDropsTotal.Inc()
		return
	}
	select {
	case d.events <- ev:
	default:
		logger.Warn("notification queue full, dropping event",
			"event_type", ev.Type, "tenant_id", ev.TenantID)
		metrics.NotificationDropsTotal.Inc()
	}
}

func (d *dispatcher) run() {
	for ev := range d.events {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		if err := d.sender.Send(ctx, ev); err != nil {
			logger.Error("notification delivery failed",
				"event_type", ev.Type, "tenant_id", ev.TenantID, "error", err)
			metrics.NotificationFailuresTotal.Inc()
		}
		cancel()
	}
	close(d.done)
}

// Close stops accepting events and waits for the queue to drain.
func (d *dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.events)
	}
	d.mu.Unlock()
	<-d.done
}
