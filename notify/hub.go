package notify

import (
	"sync"

	"github.com/ZaguanLabs/framelai"
)

// DefaultHistory is the number of notifications a Hub keeps by default.
const DefaultHistory = 50

// subscriberBuffer is how many notifications a slow subscriber may lag
// behind before further ones are dropped for it.
const subscriberBuffer = 16

// Hub broadcasts notifications to subscribers and keeps a bounded history
// for clients that connect late. Notify never blocks.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan Notification]struct{}
	history     []Notification
	limit       int
	dropped     uint64
}

// NewHub creates a hub that keeps the last historyLimit notifications.
// A non-positive limit uses DefaultHistory.
func NewHub(historyLimit int) *Hub {
	if historyLimit <= 0 {
		historyLimit = DefaultHistory
	}
	return &Hub{
		subscribers: make(map[chan Notification]struct{}),
		limit:       historyLimit,
	}
}

// Notify implements framelai.Notifier.
func (h *Hub) Notify(n Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.history = append(h.history, n)
	if len(h.history) > h.limit {
		h.history = append([]Notification(nil), h.history[len(h.history)-h.limit:]...)
	}

	for ch := range h.subscribers {
		select {
		case ch <- n:
		default:
			h.dropped++
		}
	}
}

// Subscribe registers a new subscriber. The returned cancel function
// unregisters it and closes the channel; it is safe to call more than once.
func (h *Hub) Subscribe() (<-chan Notification, func()) {
	_, ch, cancel := h.SubscribeWithHistory()
	return ch, cancel
}

// SubscribeWithHistory registers a subscriber and returns the history as of
// the moment of registration. Every notification is either in the returned
// history or delivered on the channel, never both.
func (h *Hub) SubscribeWithHistory() ([]Notification, <-chan Notification, func()) {
	ch := make(chan Notification, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	history := append([]Notification(nil), h.history...)
	h.mu.Unlock()

	var once sync.Once
	return history, ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// History returns the retained notifications, oldest first.
func (h *Hub) History() []Notification {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Notification(nil), h.history...)
}

// Subscribers returns the number of active subscribers.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Dropped returns how many deliveries were skipped because a subscriber was full.
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

var _ framelai.Notifier = (*Hub)(nil)
