package booking

import (
	"net/http"
	"time"

	"github.com/campusconnect/venue-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotUnavailable   = apperror.New(http.StatusConflict, "this time slot is already booked")
	ErrForbidden         = apperror.New(http.StatusForbidden, "not authorized to perform this action")
	ErrInvalidTransition = apperror.New(http.StatusBadRequest, "status change not allowed from the current state")
	ErrStatusConflict    = apperror.New(http.StatusConflict, "booking was modified by another request, please retry")
	ErrUnknownVenue      = apperror.New(http.StatusBadRequest, "unknown venue")
	ErrInvalidDate       = apperror.New(http.StatusBadRequest, "invalid date format, expected YYYY-MM-DD")
	ErrInvalidTime       = apperror.New(http.StatusBadRequest, "invalid time format, expected HH:MM")
	ErrInvalidTimeRange  = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInvalidStay       = apperror.New(http.StatusBadRequest, "check-out date must be after check-in date")
	ErrCapacityExceeded  = apperror.New(http.StatusBadRequest, "attendee count exceeds venue capacity")
	ErrGuestLimit        = apperror.New(http.StatusBadRequest, "maximum 2 guests per room allowed")
	ErrStorage           = apperror.New(http.StatusServiceUnavailable, "storage unavailable, please retry")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

// Booking is the central reservation record. Status is only ever written
// through the lifecycle methods on Service; everything except status and the
// decision fields is immutable after creation.
type Booking struct {
	ID             string
	ResourceID     string
	RequesterEmail string

	// Date is the day of the slot (the check-in day for residence stays).
	// StartAt/EndAt carry the half-open occupied interval for both hourly
	// and multi-day venues; for stays they are midnight-aligned.
	Date    time.Time
	StartAt time.Time
	EndAt   time.Time

	// CheckIn/CheckOut are set only for multi-day residence bookings.
	CheckIn  *time.Time
	CheckOut *time.Time

	Status     Status
	Attributes map[string]any

	AdminNotes *string
	DecidedBy  *string
	DecidedAt  *time.Time

	CreatedAt   time.Time
	UpdatedAt   time.Time
	CancelledAt *time.Time
}

// Filter narrows the admin listing.
type Filter struct {
	ResourceID string
	Status     string
}

// StatusFields carries the auxiliary columns written together with a status
// change. The whole set is applied as a single atomic UPDATE.
type StatusFields struct {
	AdminNotes       *string
	DecidedBy        *string
	DecidedAt        *time.Time
	CancelledAt      *time.Time
	ClearCancelledAt bool
}

// ResourceBreakdown is one row of the per-venue statistics rollup.
type ResourceBreakdown struct {
	ResourceID string
	Status     Status
	Count      int
}

// Statistics is the admin overview of the whole booking table.
type Statistics struct {
	TotalBookings    int
	PendingApprovals int
	ByStatus         map[Status]int
	ByResource       []ResourceBreakdown
}

// Dashboard is the per-faculty summary: recent bookings plus status counts.
type Dashboard struct {
	Bookings []*Booking
	Counts   map[Status]int
}
