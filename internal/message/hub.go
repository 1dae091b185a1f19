package message

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

const subscriberBuffer = 64

// ErrLagged closes a subscription that fell too far behind the feed. The
// consumer must re-fetch history before subscribing again.
var ErrLagged = errors.New("subscriber lagged behind the message feed")

// Subscription is a live feed of messages of one negotiation.
type Subscription struct {
	negotiationID uuid.UUID
	ch            chan *Message
	hub           *Hub

	once sync.Once
	mu   sync.Mutex
	err  error
}

// C delivers messages until the subscription is closed.
func (s *Subscription) C() <-chan *Message {
	return s.ch
}

// Err reports why the feed ended: nil after Close, ErrLagged after an overflow.
func (s *Subscription) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

// Close detaches the subscription. It is safe to call more than once.
func (s *Subscription) Close() {
	s.hub.remove(s, nil)
}

func (s *Subscription) shut(cause error) {
	s.once.Do(func() {
		s.mu.Lock()
		s.err = cause
		s.mu.Unlock()
		close(s.ch)
	})
}

// Hub fans published messages out to in-process subscribers.
type Hub struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]map[*Subscription]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: map[uuid.UUID]map[*Subscription]struct{}{}}
}

func (h *Hub) Subscribe(negotiationID uuid.UUID) *Subscription {
	s := &Subscription{
		negotiationID: negotiationID,
		ch:            make(chan *Message, subscriberBuffer),
		hub:           h,
	}

	h.mu.Lock()
	if h.subs[negotiationID] == nil {
		h.subs[negotiationID] = map[*Subscription]struct{}{}
	}
	h.subs[negotiationID][s] = struct{}{}
	h.mu.Unlock()

	return s
}

// Publish delivers m to every subscriber of its negotiation without
// blocking. A subscriber with a full buffer is closed with ErrLagged.
func (h *Hub) Publish(_ context.Context, m *Message) error {
	var lagged []*Subscription

	h.mu.RLock()
	for s := range h.subs[m.NegotiationID] {
		select {
		case s.ch <- m:
		default:
			lagged = append(lagged, s)
		}
	}
	h.mu.RUnlock()

	for _, s := range lagged {
		h.remove(s, ErrLagged)
	}

	return nil
}

// CloseAll ends every open feed with cause. Consumers treat it like an
// overflow and re-fetch history.
func (h *Hub) CloseAll(cause error) {
	h.mu.Lock()
	subs := h.subs
	h.subs = map[uuid.UUID]map[*Subscription]struct{}{}
	h.mu.Unlock()

	for _, set := range subs {
		for s := range set {
			s.shut(cause)
		}
	}
}

// Drop ends a single feed with cause.
func (h *Hub) Drop(s *Subscription, cause error) {
	h.remove(s, cause)
}

// Subscribers returns how many feeds are open for a negotiation.
func (h *Hub) Subscribers(negotiationID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.subs[negotiationID])
}

// remove unregisters s under the write lock, so no Publish can be sending
// on s.ch when it is closed.
func (h *Hub) remove(s *Subscription, cause error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[s.negotiationID]; ok {
		delete(set, s)

		if len(set) == 0 {
			delete(h.subs, s.negotiationID)
		}
	}

	s.shut(cause)
}
