// Package event provides the one-directional notification channel carrying
// session lifecycle events from disclosure sessions to the requesting layer.
// The disclosure session is the sole producer; any number of listeners may
// attach. Delivery is asynchronous relative to the producer and
// order-preserving per subscriber.
package event

import (
	"sync"

	disclosureDomain "github.com/allisson/cardvault/internal/disclosure/domain"
)

// Handler consumes lifecycle events. Handlers run on a per-subscription
// goroutine, never on the publisher's goroutine.
type Handler func(disclosureDomain.Event)

// Bus is a typed publish/subscribe channel for disclosure lifecycle events.
type Bus struct {
	mu     sync.Mutex
	subs   map[uint64]*Subscription
	nextID uint64
	closed bool
}

// Subscription is the handle returned from Subscribe. Unsubscribe stops
// delivery and releases the subscription's goroutine.
type Subscription struct {
	id   uint64
	bus  *Bus
	ch   chan disclosureDomain.Event
	done chan struct{}
	once sync.Once
}

// NewBus creates an empty event bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[uint64]*Subscription)}
}

// Subscribe attaches a listener and returns its subscription handle. Events
// published after Subscribe returns are delivered to the handler in
// publication order until Unsubscribe is called.
func (b *Bus) Subscribe(handler Handler) *Subscription {
	sub := &Subscription{
		bus:  b,
		ch:   make(chan disclosureDomain.Event, 64),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.done)
		return sub
	}
	b.nextID++
	sub.id = b.nextID
	b.subs[sub.id] = sub
	b.mu.Unlock()

	go sub.run(handler)

	return sub
}

// Publish delivers an event to every current subscriber. Each occurrence is
// delivered exactly as published, with no batching or coalescing, and per
// subscriber the delivery order matches the publication order.
func (b *Bus) Publish(e disclosureDomain.Event) {
	b.mu.Lock()
	targets := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		targets = append(targets, sub)
	}
	b.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.ch <- e:
		case <-sub.done:
		}
	}
}

// Close detaches all subscribers and stops delivery. Publishing on a closed
// bus is a no-op.
func (b *Bus) Close() {
	b.mu.Lock()
	subs := make([]*Subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		subs = append(subs, sub)
	}
	b.closed = true
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Unsubscribe()
	}
}

// Unsubscribe detaches the listener. Idempotent; events still queued for the
// subscription may be dropped, events published afterwards never reach it.
func (s *Subscription) Unsubscribe() {
	s.once.Do(func() {
		if s.bus != nil {
			s.bus.mu.Lock()
			delete(s.bus.subs, s.id)
			s.bus.mu.Unlock()
		}
		close(s.done)
	})
}

// run delivers queued events to the handler until the subscription ends.
func (s *Subscription) run(handler Handler) {
	for {
		select {
		case e := <-s.ch:
			handler(e)
		case <-s.done:
			return
		}
	}
}
