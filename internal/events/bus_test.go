package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBusPublish(t *testing.T) {
	bus := NewEventBus[any]()
	a := bus.Subscribe()
	b := bus.Subscribe()

	assert.Equal(t, 2, bus.Publish(FieldAdded{FieldID: "f-1"}))
	assert.Equal(t, FieldAdded{FieldID: "f-1"}, <-a)
	assert.Equal(t, FieldAdded{FieldID: "f-1"}, <-b)

	bus.Unsubscribe(b)
	bus.Unsubscribe(b)
	_, open := <-b
	assert.False(t, open)

	assert.Equal(t, 1, bus.Publish(EditorReset{}))
}

func TestEventBusDropsWhenFull(t *testing.T) {
	bus := NewEventBus[int]()
	sub := bus.Subscribe()

	for i := 0; i < DefaultBuffer; i++ {
		bus.Publish(i)
	}
	assert.Equal(t, 0, bus.Publish(-1))
	assert.Len(t, sub, DefaultBuffer)
}
