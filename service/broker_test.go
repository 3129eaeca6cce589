package service

import (
	"testing"

	"github.com/beka-birhanu/vinom-pathfinding/driver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_FanOut(t *testing.T) {
	b := NewBroker()
	first, unsubscribeFirst := b.Subscribe()
	second, unsubscribeSecond := b.Subscribe()
	defer unsubscribeSecond()
	assert.Equal(t, 2, b.Subscribers())

	b.Publish(driver.Event{Kind: driver.Progress, Current: 1})
	assert.Equal(t, 1, (<-first).Current)
	assert.Equal(t, 1, (<-second).Current)

	unsubscribeFirst()
	unsubscribeFirst()
	_, open := <-first
	assert.False(t, open)
	assert.Equal(t, 1, b.Subscribers())
}

func TestBroker_SlowSubscriberDrops(t *testing.T) {
	b := NewBroker()
	events, unsubscribe := b.Subscribe()
	defer unsubscribe()

	for n := range subscriberBuffer + 10 {
		b.Publish(driver.Event{Kind: driver.Progress, Current: n})
	}
	assert.Equal(t, 10, b.Dropped())
	assert.Len(t, events, subscriberBuffer)
	assert.Equal(t, 0, (<-events).Current)
}

func TestBroker_Close(t *testing.T) {
	b := NewBroker()
	events, unsubscribe := b.Subscribe()
	b.Close()
	unsubscribe()

	_, open := <-events
	assert.False(t, open)

	late, _ := b.Subscribe()
	_, open = <-late
	require.False(t, open)
	b.Publish(driver.Event{})
}
