package store

import (
	"sync"
	"sync/atomic"
)

type subscriber[T any] struct {
	id      uint64
	fn      func(T)
	removed atomic.Bool
}

type delivery[T any] struct {
	subs  []*subscriber[T]
	value T
}

// Writable is an observable value. Subscribers are called with every new value,
// in the order the values were set. A value set from inside a subscriber is
// delivered once the current round of callbacks returns.
type Writable[T any] struct {
	mu       sync.Mutex
	value    T
	nextID   uint64
	subs     []*subscriber[T]
	queue    []delivery[T]
	draining bool
}

// NewWritable creates a Writable holding initial
func NewWritable[T any](initial T) *Writable[T] {
	return &Writable[T]{value: initial}
}

// Get returns the current value
func (w *Writable[T]) Get() T {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.value
}

// Set replaces the value and notifies subscribers
func (w *Writable[T]) Set(v T) {
	w.mu.Lock()
	w.value = v
	w.publishLocked(delivery[T]{subs: w.subs, value: v})
}

// Update replaces the value with fn(current) and notifies subscribers.
// fn must not modify slices or maps of the value it receives in place.
func (w *Writable[T]) Update(fn func(T) T) {
	w.mu.Lock()
	v := fn(w.value)
	w.value = v
	w.publishLocked(delivery[T]{subs: w.subs, value: v})
}

// Subscribe calls fn with the current value, then with every later value,
// until the returned function is called
func (w *Writable[T]) Subscribe(fn func(T)) func() {
	w.mu.Lock()
	w.nextID++
	sub := &subscriber[T]{id: w.nextID, fn: fn}
	w.subs = append(w.subs[:len(w.subs):len(w.subs)], sub)
	w.publishLocked(delivery[T]{subs: []*subscriber[T]{sub}, value: w.value})

	var once sync.Once
	return func() {
		once.Do(func() { w.unsubscribe(sub) })
	}
}

func (w *Writable[T]) unsubscribe(sub *subscriber[T]) {
	sub.removed.Store(true)

	w.mu.Lock()
	defer w.mu.Unlock()

	next := make([]*subscriber[T], 0, len(w.subs))
	for _, s := range w.subs {
		if s.id != sub.id {
			next = append(next, s)
		}
	}
	w.subs = next
}

// publishLocked queues d and, unless another caller is already delivering,
// delivers the queue in order. w.mu must be held; it is released on return.
func (w *Writable[T]) publishLocked(d delivery[T]) {
	w.queue = append(w.queue, d)
	if w.draining {
		w.mu.Unlock()
		return
	}

	w.draining = true
	for len(w.queue) > 0 {
		next := w.queue[0]
		w.queue[0] = delivery[T]{}
		w.queue = w.queue[1:]
		w.mu.Unlock()

		for _, s := range next.subs {
			if !s.removed.Load() {
				s.fn(next.value)
			}
		}

		w.mu.Lock()
	}
	w.draining = false
	w.queue = nil
	w.mu.Unlock()
}
