// Package event dispatches named tree events to subscribers without a direct
// dependency between the publisher and its listeners.
package event

import (
	"slices"
	"sync"

	"go.uber.org/zap"
)

type Event struct {
	Name string
	Data any
}

type Handler func(Event)

// Bus delivers events asynchronously but in publish order: a single
// goroutine drains the queue and runs the handlers of one event after the
// other.
type Bus struct {
	subscribers map[string][]Handler
	mu          sync.RWMutex

	qmu      sync.Mutex
	queue    []Event
	draining bool
	wg       sync.WaitGroup
}

func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string][]Handler),
	}
}

func (b *Bus) Subscribe(name string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[name] = append(b.subscribers[name], h)
}

// Publish queues e and returns without waiting for its handlers. Handlers
// may publish in turn; those events are delivered after the current one.
func (b *Bus) Publish(e Event) {
	b.qmu.Lock()
	defer b.qmu.Unlock()
	b.queue = append(b.queue, e)
	if b.draining {
		return
	}
	b.draining = true
	b.wg.Add(1)
	go b.drain()
}

// Wait blocks until every event published so far has been delivered.
func (b *Bus) Wait() {
	b.wg.Wait()
}

func (b *Bus) drain() {
	defer b.wg.Done()
	for {
		b.qmu.Lock()
		if len(b.queue) == 0 {
			b.draining = false
			b.qmu.Unlock()
			return
		}
		e := b.queue[0]
		b.queue = b.queue[1:]
		b.qmu.Unlock()

		b.dispatch(e)
	}
}

func (b *Bus) dispatch(e Event) {
	b.mu.RLock()
	handlers := slices.Clone(b.subscribers[e.Name])
	b.mu.RUnlock()

	for _, h := range handlers {
		call(h, e)
	}
}

func call(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			zap.S().Named("event_bus").Errorw("event handler panicked", "event", e.Name, "panic", r)
		}
	}()
	h(e)
}
