package events

import "sync"

// DefaultBuffer is the capacity of a subscriber channel.
const DefaultBuffer = 100

// Event is a generic type placeholder for any event type
type Event any

// Subscriber is a channel that transports events of type T
type Subscriber[T Event] chan T

// EventBus fans events out to every subscriber without blocking the publisher.
type EventBus[T Event] struct {
	subscribers map[Subscriber[T]]struct{}
	mutex       sync.RWMutex
}

func NewEventBus[T Event]() *EventBus[T] {
	return &EventBus[T]{
		subscribers: make(map[Subscriber[T]]struct{}),
	}
}

func (bus *EventBus[T]) Subscribe() Subscriber[T] {
	ch := make(Subscriber[T], DefaultBuffer)
	bus.mutex.Lock()
	bus.subscribers[ch] = struct{}{}
	bus.mutex.Unlock()
	return ch
}

// Unsubscribe removes and closes ch. Unknown channels are ignored.
func (bus *EventBus[T]) Unsubscribe(ch Subscriber[T]) {
	bus.mutex.Lock()
	defer bus.mutex.Unlock()
	if _, ok := bus.subscribers[ch]; !ok {
		return
	}
	delete(bus.subscribers, ch)
	close(ch)
}

// Publish broadcasts an event to all registered subscribers and returns how
// many received it. Subscribers with a full buffer miss the event.
func (bus *EventBus[T]) Publish(event T) int {
	bus.mutex.RLock()
	defer bus.mutex.RUnlock()
	delivered := 0
	for subscriber := range bus.subscribers {
		select {
		case subscriber <- event:
			delivered++
		default:
		}
	}
	return delivered
}
