// Package bus is the in-process event bus connecting module event layers to
// their listeners. Delivery is asynchronous and at-most-once: a slow listener
// can drop events rather than stall the emitter, and listener failures never
// roll back the primary write that preceded the emit.
package bus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"rideshare/internal/utils"
)

// ListenerFailed is emitted when a listener panics while handling an event.
const ListenerFailed = "bus.listener_failed"

// Event is a named occurrence with an opaque payload. Listeners type-assert
// the payload to the emitting module's exported event type.
type Event struct {
	ID        string
	Name      string
	At        time.Time
	RequestID string
	Payload   any
}

// Failure is the payload of ListenerFailed events.
type Failure struct {
	Event  Event
	Reason string
}

// Handler reacts to one event. It must not block indefinitely; the per
// subscriber queue is bounded.
type Handler func(ctx context.Context, e Event)

type subscription struct {
	event string
	ch    chan Event
}

// Bus fans events out to subscribers. Each subscriber gets its own bounded
// queue and worker goroutine, so delivery order per subscriber follows emit
// order while subscribers never block each other.
type Bus struct {
	mu     sync.RWMutex
	subs   map[string][]*subscription
	wg     sync.WaitGroup
	closed bool

	// queueSize bounds each subscriber queue; events beyond it are dropped.
	queueSize int
}

func New() *Bus {
	return &Bus{
		subs:      map[string][]*subscription{},
		queueSize: 64,
	}
}

// Subscribe registers fn for the named event. Must be called during wire-up,
// before Close.
func (b *Bus) Subscribe(event string, fn Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}

	sub := &subscription{event: event, ch: make(chan Event, b.queueSize)}
	b.subs[event] = append(b.subs[event], sub)

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for e := range sub.ch {
			b.deliver(fn, e)
		}
	}()
}

func (b *Bus) deliver(fn Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			utils.LogEvent(e.RequestID, "bus", "listener_panic",
				fmt.Sprintf("event=%s id=%s reason=%v", e.Name, e.ID, r))
			// Failures inside ListenerFailed handlers only log; anything
			// else would let a broken handler feed itself forever.
			if e.Name != ListenerFailed {
				b.Emit(context.Background(), e.RequestID, ListenerFailed, Failure{Event: e, Reason: fmt.Sprint(r)})
			}
		}
	}()
	fn(context.Background(), e)
}

// Emit publishes the event to every subscriber of name. It never blocks: a
// full subscriber queue drops the event for that subscriber with a log line.
// Emitting on a closed bus is a no-op. The caller's ctx is deliberately not
// consulted: events announce writes that already happened, so a cancelled
// request context (client gone) must not swallow them.
func (b *Bus) Emit(ctx context.Context, requestID, name string, payload any) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}

	e := Event{
		ID:        uuid.NewString(),
		Name:      name,
		At:        time.Now().UTC(),
		RequestID: requestID,
		Payload:   payload,
	}

	for _, sub := range b.subs[name] {
		select {
		case sub.ch <- e:
		default:
			utils.LogEvent(requestID, "bus", "dropped", fmt.Sprintf("event=%s id=%s", name, e.ID))
		}
	}
}

// Close stops intake and drains in-flight deliveries until ctx expires.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	for _, subs := range b.subs {
		for _, sub := range subs {
			close(sub.ch)
		}
	}
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("bus close: %w", ctx.Err())
	}
}
