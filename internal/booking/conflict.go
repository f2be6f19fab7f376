package booking

import "time"

// Conflict identifies the booking that blocks a candidate slot, so callers
// can report which reservation is in the way.
type Conflict struct {
	BookingID string
	StartAt   time.Time
	EndAt     time.Time
}

// FindConflict is the pure overlap decision: given a candidate half-open
// interval [startAt, endAt) and the bookings currently holding the same
// resource, it returns the first active booking whose interval overlaps, or
// nil when the slot is free.
//
// Two intervals [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1, so a
// booking ending at 10:00 never conflicts with one starting at 10:00.
// Pending bookings reserve their slot just like approved ones; cancelled
// bookings release it.
func FindConflict(startAt, endAt time.Time, active []*Booking) *Conflict {
	for _, b := range active {
		if b.Status == StatusCancelled {
			continue
		}
		if b.StartAt.Before(endAt) && startAt.Before(b.EndAt) {
			return &Conflict{
				BookingID: b.ID,
				StartAt:   b.StartAt,
				EndAt:     b.EndAt,
			}
		}
	}
	return nil
}
