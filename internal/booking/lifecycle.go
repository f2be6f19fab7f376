package booking

// transitions is the full status state machine. A freshly created booking is
// always pending; cancelled bookings can only be rolled back to pending.
// Approved and rejected are terminal.
var transitions = map[Status][]Status{
	StatusPending:   {StatusApproved, StatusRejected, StatusCancelled},
	StatusCancelled: {StatusPending},
}

// CanTransition reports whether the state machine permits moving a booking
// from one status to another. It says nothing about who may do it; that is
// the access policy's concern.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
