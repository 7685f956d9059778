package events

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInEmitOrder(t *testing.T) {
	bus := NewBus()

	var got []string
	bus.Listen(TopicDownloadOutput, func(payload string) {
		got = append(got, payload)
	})

	bus.Emit(TopicDownloadOutput, "one")
	bus.Emit(TopicDownloadOutput, "two")
	bus.Emit(TopicDownloadError, "ignored")
	bus.Emit(TopicDownloadOutput, "three")

	assert.Equal(t, []string{"one", "two", "three"}, got)
}

func TestBus_Unlisten(t *testing.T) {
	bus := NewBus()

	var first, second int
	unlisten := bus.Listen(TopicDownloadOutput, func(string) { first++ })
	bus.Listen(TopicDownloadOutput, func(string) { second++ })

	bus.Emit(TopicDownloadOutput, "a")
	unlisten()
	unlisten()
	bus.Emit(TopicDownloadOutput, "b")

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
	assert.Equal(t, 1, bus.ListenerCount(TopicDownloadOutput))
}

func TestBus_UnlistenDuringDelivery(t *testing.T) {
	bus := NewBus()

	var calls int
	var unlisten Unlisten
	unlisten = bus.Listen(TopicDownloadError, func(string) {
		calls++
		unlisten()
	})

	bus.Emit(TopicDownloadError, "x")
	bus.Emit(TopicDownloadError, "y")

	assert.Equal(t, 1, calls)
	assert.Zero(t, bus.ListenerCount(TopicDownloadError))
}

func TestBus_ConcurrentListenAndEmit(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	total := 0

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlisten := bus.Listen(TopicDownloadOutput, func(string) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			bus.Emit(TopicDownloadOutput, "line")
			unlisten()
		}()
	}
	wg.Wait()

	assert.Zero(t, bus.ListenerCount(TopicDownloadOutput))
	assert.GreaterOrEqual(t, total, 20)
}

func TestBus_SeparateInstances(t *testing.T) {
	a, b := NewBus(), NewBus()

	var hits int
	a.Listen(TopicDownloadOutput, func(string) { hits++ })
	b.Emit(TopicDownloadOutput, "other bus")

	assert.Zero(t, hits)
}
