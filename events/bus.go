package events

import "sync"

// Bus broadcasts "cart changed" signals per shopper email. A signal carries no
// payload; subscribers refetch. Each subscriber holds at most one pending
// signal, so a burst of mutations coalesces and Publish never blocks.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[string]map[int]chan struct{}
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]chan struct{})}
}

// Subscribe registers interest in email's cart. cancel must be called to release the subscription.
func (b *Bus) Subscribe(email string) (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++

	ch := make(chan struct{}, 1)
	if b.subs[email] == nil {
		b.subs[email] = make(map[int]chan struct{})
	}
	b.subs[email][id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[email], id)
			if len(b.subs[email]) == 0 {
				delete(b.subs, email)
			}
		})
	}
	return ch, cancel
}

// Publish signals every subscriber of email. It returns how many received a
// fresh signal; subscribers that already had one pending are skipped.
func (b *Bus) Publish(email string) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, ch := range b.subs[email] {
		select {
		case ch <- struct{}{}:
			delivered++
		default:
		}
	}
	return delivered
}

// Subscribers reports how many subscriptions are open for email
func (b *Bus) Subscribers(email string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[email])
}
