package events

import (
	"sync"

	"github.com/diwise/water-monitoring/pkg/types"
)

const DefaultBufferSize = 500

// subscriber channels are buffered so that a burst does not immediately
// disconnect a reader that is catching up
const subscriberBuffer = 64

// EventBus keeps a bounded replay buffer per scope and fans incoming events
// out to subscribers. Pushing to a tenant scope also pushes to the global
// scope. The bus is process local; cross process distribution goes over the
// message broker instead.
type EventBus struct {
	mu sync.Mutex

	size        int
	buffers     map[string][]types.Event
	subscribers map[string][]*Subscriber
}

type Subscriber struct {
	scope string
	ch    chan types.Event
}

// Events returns the channel the subscriber receives on. The channel is
// closed when the subscriber is dropped or unsubscribed.
func (s *Subscriber) Events() <-chan types.Event {
	return s.ch
}

func New(size int) *EventBus {
	if size <= 0 {
		size = DefaultBufferSize
	}

	return &EventBus{
		size:        size,
		buffers:     map[string][]types.Event{},
		subscribers: map[string][]*Subscriber{},
	}
}

// Push appends the event to the scope's replay buffer and to the global one,
// then delivers it to subscribers of both. A subscriber that cannot keep up
// is dropped silently.
func (b *EventBus) Push(scope string, event types.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.append(scope, event)
	if scope != types.EventScopeGlobal {
		b.append(types.EventScopeGlobal, event)
	}

	b.deliver(scope, event)
	if scope != types.EventScopeGlobal {
		b.deliver(types.EventScopeGlobal, event)
	}
}

func (b *EventBus) append(scope string, event types.Event) {
	buffer := append(b.buffers[scope], event)
	if len(buffer) > b.size {
		buffer = buffer[len(buffer)-b.size:]
	}
	b.buffers[scope] = buffer
}

func (b *EventBus) deliver(scope string, event types.Event) {
	kept := b.subscribers[scope][:0]

	for _, sub := range b.subscribers[scope] {
		select {
		case sub.ch <- event:
			kept = append(kept, sub)
		default:
			close(sub.ch)
		}
	}

	b.subscribers[scope] = kept
}

// Recent returns up to limit buffered events for the scope, newest first.
// A non positive limit returns everything that is buffered.
func (b *EventBus) Recent(scope string, limit int) []types.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	buffer := b.buffers[scope]

	if limit <= 0 || limit > len(buffer) {
		limit = len(buffer)
	}

	recent := make([]types.Event, 0, limit)
	for i := len(buffer) - 1; i >= len(buffer)-limit; i-- {
		recent = append(recent, buffer[i])
	}

	return recent
}

func (b *EventBus) Subscribe(scope string) *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscriber{
		scope: scope,
		ch:    make(chan types.Event, subscriberBuffer),
	}

	b.subscribers[scope] = append(b.subscribers[scope], sub)

	return sub
}

func (b *EventBus) Unsubscribe(sub *Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[sub.scope]
	for i, s := range subs {
		if s == sub {
			b.subscribers[sub.scope] = append(subs[:i], subs[i+1:]...)
			close(s.ch)
			return
		}
	}
}
