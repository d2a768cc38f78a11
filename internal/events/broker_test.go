package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uf-ai/backend/internal/model"
)

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker()
	ch1, cancel1 := b.Subscribe(4)
	ch2, cancel2 := b.Subscribe(4)
	defer cancel2()

	b.Publish(model.StreamEvent{Type: model.EventLoading, SessionID: "s1"})

	assert.Equal(t, "s1", (<-ch1).SessionID)
	assert.Equal(t, "s1", (<-ch2).SessionID)

	cancel1()
	cancel1()
	_, open := <-ch1
	assert.False(t, open)
	assert.Equal(t, 1, b.Subscribers())
}

func TestBroker_SlowSubscriberDoesNotBlock(t *testing.T) {
	b := NewBroker()
	ch, cancel := b.Subscribe(1)
	defer cancel()

	b.Publish(model.StreamEvent{Type: "a"})
	b.Publish(model.StreamEvent{Type: "b"})

	require.Len(t, ch, 1)
	assert.Equal(t, "a", (<-ch).Type)
}
