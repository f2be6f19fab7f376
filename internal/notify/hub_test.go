package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubSubscribeAndBroadcast(t *testing.T) {
	hub := NewHub()

	a := hub.Subscribe()
	b := hub.Subscribe()
	assert.Equal(t, 2, hub.Subscribers())

	ev := BookingsUpdated("created", "booking-1")
	hub.Broadcast(ev)

	for _, ch := range []chan Event{a, b} {
		got := <-ch
		assert.Equal(t, "bookings-updated", got.Type)
		assert.Equal(t, "created", got.Reason)
		assert.Equal(t, "booking-1", got.BookingID)
		assert.False(t, got.Timestamp.IsZero())
	}
}

func TestHubUnsubscribeClosesChannel(t *testing.T) {
	hub := NewHub()
	ch := hub.Subscribe()

	hub.Unsubscribe(ch)
	assert.Equal(t, 0, hub.Subscribers())

	_, open := <-ch
	assert.False(t, open, "unsubscribed channel must be closed")

	// A second unsubscribe of the same channel is a no-op.
	hub.Unsubscribe(ch)
}

func TestHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewHub()
	slow := hub.Subscribe()
	defer hub.Unsubscribe(slow)

	// Nobody drains the slow subscriber; broadcasts beyond its buffer must be
	// dropped rather than stall the caller.
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*3; i++ {
			hub.Broadcast(BookingsUpdated("created", "x"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast blocked on a slow subscriber")
	}

	assert.Len(t, slow, subscriberBuffer, "buffer should be full, the rest dropped")
}

func TestHubConcurrentUse(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := hub.Subscribe()
			hub.Broadcast(BookingsUpdated("status-updated", "y"))
			hub.Unsubscribe(ch)
		}()
	}
	wg.Wait()

	require.Equal(t, 0, hub.Subscribers())
}
