// Package event provides typed publish/subscribe hubs with explicit
// subscription handles.
//
// Every change event in the panel (camera selected, auto mode feedback,
// preset list changed, codec ready, mode changed) is delivered through a Hub.
// Subscribers receive the payload only; state they need is reached through
// the owner that holds the returned Subscription.
package event

import "sync"

// Hub fans a payload out to its subscribers in subscription order.
type Hub[T any] struct {
	mu     sync.Mutex
	nextID uint64
	subs   []*Subscription
	funcs  map[uint64]func(T)
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	id     uint64
	cancel func(id uint64)
	once   sync.Once
}

// Cancel removes the subscriber. Safe to call more than once and on nil.
func (s *Subscription) Cancel() {
	if s == nil {
		return
	}
	s.once.Do(func() { s.cancel(s.id) })
}

// Subscribe registers fn and returns its handle.
func (h *Hub[T]) Subscribe(fn func(T)) *Subscription {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.funcs == nil {
		h.funcs = make(map[uint64]func(T))
	}
	h.nextID++
	sub := &Subscription{id: h.nextID, cancel: h.remove}
	h.subs = append(h.subs, sub)
	h.funcs[sub.id] = fn
	return sub
}

// Publish delivers v to every current subscriber.
// Handlers run outside the hub lock and may cancel subscriptions.
func (h *Hub[T]) Publish(v T) {
	h.mu.Lock()
	ids := make([]uint64, len(h.subs))
	for i, s := range h.subs {
		ids[i] = s.id
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.mu.Lock()
		fn, ok := h.funcs[id]
		h.mu.Unlock()
		if ok {
			fn(v)
		}
	}
}

// Len returns the number of live subscribers.
func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub[T]) remove(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.funcs, id)
	for i, s := range h.subs {
		if s.id == id {
			h.subs = append(h.subs[:i], h.subs[i+1:]...)
			return
		}
	}
}
