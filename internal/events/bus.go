// Package events is a small in-process publish/subscribe bus used by the
// yt-dlp bridge to stream download output to its listeners.
package events

import "sync"

// Topics published by the bridge
const (
	TopicDownloadOutput = "download-output"
	TopicDownloadError  = "download-error"
)

// Handler receives the payload of an event
type Handler func(payload string)

// Unlisten removes a previously registered handler. Calling it more than once is a no-op.
type Unlisten func()

type listener struct {
	id uint64
	fn Handler
}

// Bus delivers events synchronously, in emit order, to the listeners of a topic
type Bus struct {
	mu        sync.RWMutex
	nextID    uint64
	listeners map[string][]listener
}

// NewBus creates an empty bus
func NewBus() *Bus {
	return &Bus{listeners: make(map[string][]listener)}
}

// Listen registers fn for topic and returns a function that removes it
func (b *Bus) Listen(topic string, fn Handler) Unlisten {
	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.listeners[topic] = append(b.listeners[topic], listener{id: id, fn: fn})
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, id) })
	}
}

// Emit calls every listener of topic with payload. Listeners registered or removed
// during delivery take effect from the next Emit.
func (b *Bus) Emit(topic, payload string) {
	b.mu.RLock()
	current := b.listeners[topic]
	b.mu.RUnlock()

	for _, l := range current {
		l.fn(payload)
	}
}

// ListenerCount returns the number of listeners registered for topic
func (b *Bus) ListenerCount(topic string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[topic])
}

func (b *Bus) remove(topic string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	current := b.listeners[topic]
	next := make([]listener, 0, len(current))
	for _, l := range current {
		if l.id != id {
			next = append(next, l)
		}
	}
	if len(next) == 0 {
		delete(b.listeners, topic)
		return
	}
	b.listeners[topic] = next
}
