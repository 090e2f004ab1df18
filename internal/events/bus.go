// Package events carries "the inventory changed" notifications from the
// components that mutate the store to the inventory watcher.
package events

import "sync"

// Publisher announces that the stored objects changed.
type Publisher interface {
	Publish()
}

// Bus is a payload-free broadcast. Each subscriber has a one-slot mailbox:
// events published while a notification is still pending collapse into it,
// so a slow subscriber sees at least one notification after the last
// Publish but never a backlog.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan struct{}
}

// NewBus returns a bus without subscribers.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan struct{})}
}

// Publish notifies every subscriber without blocking.
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

// Subscribe registers a subscriber. The returned cancel removes it and closes
// the channel; it is safe to call more than once.
func (b *Bus) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers reports how many subscribers are registered.
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
