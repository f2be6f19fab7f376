package booking

// Actor is the authenticated identity performing an operation, as supplied by
// the auth layer. The admin flag comes from the user record at login; the
// core never compares against a particular identity.
type Actor struct {
	Email   string
	IsAdmin bool
}

// Allowed is the pure authorization predicate: may this actor move this
// booking to the target status? Administrators may perform any transition the
// state machine knows; a faculty member may only cancel their own booking.
//
// Allowed is checked before state-machine legality, so an unauthorized caller
// always sees Forbidden regardless of the booking's current status.
func Allowed(actor Actor, b *Booking, target Status) bool {
	if actor.IsAdmin {
		return true
	}
	return target == StatusCancelled && actor.Email == b.RequesterEmail
}
