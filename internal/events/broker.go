// Package events fans chat state changes out to live subscribers.
package events

import (
	"log/slog"
	"sync"

	"uf-ai/backend/internal/model"
)

// Broker delivers each published event to every current subscriber.
// Publishing never blocks; a subscriber whose buffer is full misses the event.
type Broker struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan model.StreamEvent
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan model.StreamEvent)}
}

// Subscribe registers a subscriber. The returned cancel func closes the channel and is idempotent.
func (b *Broker) Subscribe(buffer int) (<-chan model.StreamEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan model.StreamEvent, buffer)
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
}

func (b *Broker) Publish(evt model.StreamEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for id, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			slog.Debug("Dropping event for slow subscriber", "subscriber", id, "type", evt.Type)
		}
	}
}

// Subscribers returns the number of live subscribers.
func (b *Broker) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
