package events

import "sync"

// DefaultBuffer is the per-subscriber channel capacity used when Subscribe is
// given a non-positive size.
const DefaultBuffer = 64

// Bus fans published messages out to every subscriber. Publishing never
// blocks: a subscriber whose buffer is full misses the message. Bus is safe
// for concurrent use and is passed explicitly to whoever needs to publish or
// listen.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Msg
	nextID int
	closed bool
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Msg)}
}

// Subscribe registers a listener. The returned cancel func unregisters it and
// closes the channel; it is safe to call more than once.
func (b *Bus) Subscribe(buffer int) (<-chan Msg, func()) {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	ch := make(chan Msg, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	if b.subs == nil {
		b.subs = make(map[int]chan Msg)
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
}

// Publish delivers msg to every subscriber with room for it. It returns the
// number of subscribers that received it. A nil bus drops everything.
func (b *Bus) Publish(msg Msg) int {
	if b == nil || msg == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- msg:
			delivered++
		default:
		}
	}
	return delivered
}

// Close unregisters and closes every subscriber channel. Later subscriptions
// receive an already-closed channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
