package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	statuses := []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled}

	allowed := map[Status]map[Status]bool{
		StatusPending:   {StatusApproved: true, StatusRejected: true, StatusCancelled: true},
		StatusCancelled: {StatusPending: true},
	}

	for _, from := range statuses {
		for _, to := range statuses {
			want := allowed[from][to]
			assert.Equal(t, want, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition(Status("bogus"), StatusApproved))
	assert.False(t, CanTransition(StatusPending, Status("bogus")))
}

func TestStatusValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusApproved, StatusRejected, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("archived").Valid())
	assert.False(t, Status("").Valid())
}
