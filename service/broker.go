package service

import (
	"sync"

	"github.com/beka-birhanu/vinom-pathfinding/driver"
)

const subscriberBuffer = 256

// Broker fans run events out to subscribers. A subscriber that falls behind
// loses events instead of stalling the run.
type Broker struct {
	subscribers map[int]chan driver.Event
	next        int
	closed      bool
	dropped     int
	sync.Mutex
}

// NewBroker returns a broker without subscribers.
func NewBroker() *Broker {
	return &Broker{subscribers: make(map[int]chan driver.Event)}
}

// Publish implements driver.Sink.
func (b *Broker) Publish(e driver.Event) {
	b.Lock()
	defer b.Unlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- e:
		default:
			b.dropped++
		}
	}
}

// Subscribe registers a new subscriber. The returned function unsubscribes
// and closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan driver.Event, func()) {
	b.Lock()
	defer b.Unlock()

	ch := make(chan driver.Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.next
	b.next++
	b.subscribers[id] = ch
	return ch, func() { b.unsubscribe(id) }
}

func (b *Broker) unsubscribe(id int) {
	b.Lock()
	defer b.Unlock()
	if ch, ok := b.subscribers[id]; ok {
		delete(b.subscribers, id)
		close(ch)
	}
}

// Subscribers returns the number of active subscribers.
func (b *Broker) Subscribers() int {
	b.Lock()
	defer b.Unlock()
	return len(b.subscribers)
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (b *Broker) Dropped() int {
	b.Lock()
	defer b.Unlock()
	return b.dropped
}

// Close ends every subscription. Later subscribers get a closed channel.
func (b *Broker) Close() {
	b.Lock()
	defer b.Unlock()
	for id, ch := range b.subscribers {
		delete(b.subscribers, id)
		close(ch)
	}
	b.closed = true
}
