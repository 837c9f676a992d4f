package events

import (
	"context"
	"sync"

	"github.com/meetspot/backend/internal/domain/entities"
	"github.com/meetspot/backend/internal/domain/providers"
)

// MemoryEventBus is an in-process EventBus used when Redis is unavailable
// and in tests. Same broadcast semantics as the Redis bus, minus the wire.
type MemoryEventBus struct {
	subscribers map[string]map[chan *entities.ReviewEvent]struct{}
	mu          sync.RWMutex
	closed      bool
}

// NewMemoryEventBus creates a new in-memory event bus.
func NewMemoryEventBus() providers.EventBus {
	return &MemoryEventBus{
		subscribers: make(map[string]map[chan *entities.ReviewEvent]struct{}),
	}
}

// Publish delivers the event to all current subscribers of the channel.
func (b *MemoryEventBus) Publish(ctx context.Context, channel string, event *entities.ReviewEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil
	}
	for subscriber := range b.subscribers[channel] {
		select {
		case subscriber <- event:
		default:
			// Subscriber channel full, skip event
		}
	}
	return nil
}

// Subscribe registers a new subscriber on the channel.
func (b *MemoryEventBus) Subscribe(ctx context.Context, channel string) (<-chan *entities.ReviewEvent, error) {
	b.mu.Lock()
	if b.subscribers[channel] == nil {
		b.subscribers[channel] = make(map[chan *entities.ReviewEvent]struct{})
	}
	eventChan := make(chan *entities.ReviewEvent, 100)
	b.subscribers[channel][eventChan] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.removeSubscriber(channel, eventChan)
	}()

	return eventChan, nil
}

// Unsubscribe drops all subscribers on the channel.
func (b *MemoryEventBus) Unsubscribe(ctx context.Context, channel string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for subscriber := range b.subscribers[channel] {
		close(subscriber)
	}
	delete(b.subscribers, channel)
	return nil
}

// Close closes all subscriptions.
func (b *MemoryEventBus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	for channel, subscribers := range b.subscribers {
		for subscriber := range subscribers {
			close(subscriber)
		}
		delete(b.subscribers, channel)
	}
	return nil
}

func (b *MemoryEventBus) removeSubscriber(channel string, eventChan chan *entities.ReviewEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	subscribers, exists := b.subscribers[channel]
	if !exists {
		return
	}
	if _, ok := subscribers[eventChan]; !ok {
		return
	}
	delete(subscribers, eventChan)
	close(eventChan)
	if len(subscribers) == 0 {
		delete(b.subscribers, channel)
	}
}
