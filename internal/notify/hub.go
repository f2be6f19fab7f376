// Package notify implements the fan-out broadcaster that tells connected
// admin dashboards to re-fetch booking state. Events are advisory hints, not
// authoritative payloads: observers must re-query on receipt, which makes a
// dropped or duplicated event harmless.
package notify

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Event is the payload pushed to every connected observer.
type Event struct {
	Type      string    `json:"type"`
	Reason    string    `json:"reason"`
	BookingID string    `json:"booking_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BookingsUpdated builds the standard "something changed, re-fetch" event.
func BookingsUpdated(reason, bookingID string) Event {
	return Event{
		Type:      "bookings-updated",
		Reason:    reason,
		BookingID: bookingID,
		Timestamp: time.Now().UTC(),
	}
}

// subscriberBuffer absorbs short bursts so a briefly busy dashboard does not
// lose its hint; beyond that, events for that subscriber are dropped.
const subscriberBuffer = 8

// Hub is a concurrency-safe registry of observer channels. Delivery is
// best-effort: a slow or gone subscriber never blocks the broadcast or the
// lifecycle operation that triggered it.
type Hub struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new observer and returns its channel. The caller
// must Unsubscribe when done.
func (h *Hub) Subscribe() chan Event {
	ch := make(chan Event, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the observer and closes its channel. Safe to call for
// a channel that was already removed.
func (h *Hub) Unsubscribe(ch chan Event) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// Broadcast pushes the event to every subscriber without blocking. Channels
// whose buffer is full are skipped; the observer will catch up on its next
// poll or event.
func (h *Hub) Broadcast(ev Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
			logrus.WithFields(logrus.Fields{
				"reason":     ev.Reason,
				"booking_id": ev.BookingID,
			}).Debug("dropping event for slow subscriber")
		}
	}
}

// Subscribers returns the current observer count.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
