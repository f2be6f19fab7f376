package booking

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/campusconnect/venue-booking-backend/internal/notify"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// dashboardRecentLimit caps the booking list on the faculty dashboard.
const dashboardRecentLimit = 10

// CreateRequest is a fully client-supplied booking candidate. Hourly venues
// use Date/StartTime/EndTime; the delegate residence uses the check-in and
// check-out dates instead.
type CreateRequest struct {
	ResourceID     string
	RequesterEmail string

	Date      string // YYYY-MM-DD
	StartTime string // HH:MM
	EndTime   string // HH:MM

	CheckInDate  string // YYYY-MM-DD
	CheckOutDate string // YYYY-MM-DD

	NumAttendees int
	NumRooms     int
	NumGuests    int

	// Attributes is the resource-specific payload (equipment, guest details,
	// purpose); opaque to the lifecycle and conflict logic.
	Attributes map[string]any
}

// DecisionMailer delivers approval/rejection notifications to the requester.
// Implementations must be safe for concurrent use.
type DecisionMailer interface {
	SendDecision(ctx context.Context, b *Booking, status Status, notes *string) error
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	CheckAvailability(ctx context.Context, resourceID, date, startTime, endTime string) (bool, error)
	GetByID(ctx context.Context, id string, actor Actor) (*Booking, error)
	ListMine(ctx context.Context, email string) ([]*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, error)
	Decide(ctx context.Context, id string, actor Actor, target Status, notes *string) (*Booking, error)
	Cancel(ctx context.Context, id string, actor Actor) (*Booking, error)
	Rollback(ctx context.Context, id string, actor Actor) (*Booking, error)
	Statistics(ctx context.Context) (*Statistics, error)
	Dashboard(ctx context.Context, email string) (*Dashboard, error)
}

type service struct {
	repo   Repository
	hub    *notify.Hub
	mailer DecisionMailer

	// slotLocks serializes check-then-insert per (resource, day); idLocks
	// serializes status transitions per booking.
	slotLocks *keyedMutex
	idLocks   *keyedMutex
}

func NewService(repo Repository, hub *notify.Hub, mailer DecisionMailer) Service {
	return &service{
		repo:      repo,
		hub:       hub,
		mailer:    mailer,
		slotLocks: newKeyedMutex(),
		idLocks:   newKeyedMutex(),
	}
}

// slot is a validated, normalized occupancy interval.
type slot struct {
	date     time.Time
	startAt  time.Time
	endAt    time.Time
	checkIn  *time.Time
	checkOut *time.Time
}

// lockKey picks the mutual-exclusion granularity: one day per hourly venue,
// the whole venue for multi-day stays (a stay may span any number of days).
func (s slot) lockKey(resourceID string) string {
	if s.checkIn != nil {
		return resourceID
	}
	return resourceID + "|" + s.date.Format(dateLayout)
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	venue, ok := VenueByID(req.ResourceID)
	if !ok {
		return nil, ErrUnknownVenue
	}

	sl, err := buildSlot(venue, req)
	if err != nil {
		return nil, err
	}
	if err := checkCapacity(venue, req); err != nil {
		return nil, err
	}

	b := &Booking{
		ResourceID:     venue.ID,
		RequesterEmail: req.RequesterEmail,
		Date:           sl.date,
		StartAt:        sl.startAt,
		EndAt:          sl.endAt,
		CheckIn:        sl.checkIn,
		CheckOut:       sl.checkOut,
		Status:         StatusPending,
		Attributes:     buildAttributes(venue, req),
	}

	// The conflict check and the insert must act as one atomic step, or two
	// concurrent requests for the same slot could both pass the check.
	unlock := s.slotLocks.Lock(sl.lockKey(venue.ID))
	defer unlock()

	active, err := s.repo.ListActive(ctx, venue.ID, sl.startAt, sl.endAt)
	if err != nil {
		return nil, err
	}
	if c := FindConflict(sl.startAt, sl.endAt, active); c != nil {
		logrus.WithFields(logrus.Fields{
			"resource":    venue.ID,
			"conflict_id": c.BookingID,
		}).Info("booking request rejected, slot taken")
		return nil, ErrSlotUnavailable
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.hub.Broadcast(notify.BookingsUpdated("created", b.ID))
	return b, nil
}

func (s *service) CheckAvailability(ctx context.Context, resourceID, date, startTime, endTime string) (bool, error) {
	venue, ok := VenueByID(resourceID)
	if !ok {
		return false, ErrUnknownVenue
	}

	var req CreateRequest
	if venue.MultiDay {
		// A residence availability probe treats the date as a one-night stay.
		req = CreateRequest{CheckInDate: date, CheckOutDate: ""}
		day, err := time.ParseInLocation(dateLayout, date, time.UTC)
		if err != nil {
			return false, ErrInvalidDate
		}
		next := day.AddDate(0, 0, 1)
		req.CheckOutDate = next.Format(dateLayout)
	} else {
		req = CreateRequest{Date: date, StartTime: startTime, EndTime: endTime}
	}

	sl, err := buildSlot(venue, req)
	if err != nil {
		return false, err
	}

	active, err := s.repo.ListActive(ctx, venue.ID, sl.startAt, sl.endAt)
	if err != nil {
		return false, err
	}
	return FindConflict(sl.startAt, sl.endAt, active) == nil, nil
}

func (s *service) GetByID(ctx context.Context, id string, actor Actor) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin && actor.Email != b.RequesterEmail {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *service) ListMine(ctx context.Context, email string) ([]*Booking, error) {
	return s.repo.ListByRequester(ctx, email)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Decide(ctx context.Context, id string, actor Actor, target Status, notes *string) (*Booking, error) {
	// Deciding is admin-only whatever the target, so the policy denial comes
	// before target validation: a faculty caller always sees Forbidden, never
	// a hint about valid decision targets.
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	if target != StatusApproved && target != StatusRejected {
		return nil, ErrInvalidTransition
	}

	now := time.Now().UTC()
	fields := StatusFields{
		AdminNotes: notes,
		DecidedBy:  &actor.Email,
		DecidedAt:  &now,
	}

	b, err := s.transition(ctx, id, actor, target, fields)
	if err != nil {
		return nil, err
	}

	// Fire-and-forget: the decision stands whether or not the email lands.
	go func(b Booking) {
		mailCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := s.mailer.SendDecision(mailCtx, &b, target, notes); err != nil {
			logrus.WithFields(logrus.Fields{
				"booking_id": b.ID,
				"to":         b.RequesterEmail,
				"error":      err,
			}).Warn("decision email delivery failed")
		}
	}(*b)

	s.hub.Broadcast(notify.BookingsUpdated("status-updated", id))
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id string, actor Actor) (*Booking, error) {
	now := time.Now().UTC()
	b, err := s.transition(ctx, id, actor, StatusCancelled, StatusFields{CancelledAt: &now})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(notify.BookingsUpdated("cancelled", id))
	return b, nil
}

func (s *service) Rollback(ctx context.Context, id string, actor Actor) (*Booking, error) {
	b, err := s.transition(ctx, id, actor, StatusPending, StatusFields{ClearCancelledAt: true})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(notify.BookingsUpdated("rolled-back", id))
	return b, nil
}

// transition runs the common compare-and-set path: authorization first, then
// state-machine legality, then the conditional write. Holding the per-id
// lock means a precondition failure at the store can only come from another
// process, so it surfaces as ErrStatusConflict for the caller to retry.
func (s *service) transition(ctx context.Context, id string, actor Actor, target Status, fields StatusFields) (*Booking, error) {
	unlock := s.idLocks.Lock(id)
	defer unlock()

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !Allowed(actor, b, target) {
		return nil, ErrForbidden
	}
	if !CanTransition(b.Status, target) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, b.Status, target, fields); err != nil {
		return nil, err
	}

	b.Status = target
	b.UpdatedAt = time.Now().UTC()
	if fields.AdminNotes != nil {
		b.AdminNotes = fields.AdminNotes
	}
	b.DecidedBy = firstNonNil(fields.DecidedBy, b.DecidedBy)
	b.DecidedAt = firstNonNil(fields.DecidedAt, b.DecidedAt)
	if fields.CancelledAt != nil {
		b.CancelledAt = fields.CancelledAt
	}
	if fields.ClearCancelledAt {
		b.CancelledAt = nil
	}
	return b, nil
}

func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	byStatus, err := s.repo.CountByStatus(ctx, "")
	if err != nil {
		return nil, err
	}
	byResource, err := s.repo.CountByResourceStatus(ctx)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range byStatus {
		total += n
	}

	return &Statistics{
		TotalBookings:    total,
		PendingApprovals: byStatus[StatusPending],
		ByStatus:         byStatus,
		ByResource:       byResource,
	}, nil
}

func (s *service) Dashboard(ctx context.Context, email string) (*Dashboard, error) {
	bookings, err := s.repo.ListByRequester(ctx, email)
	if err != nil {
		return nil, err
	}
	counts, err := s.repo.CountByStatus(ctx, email)
	if err != nil {
		return nil, err
	}

	if len(bookings) > dashboardRecentLimit {
		bookings = bookings[:dashboardRecentLimit]
	}

	return &Dashboard{
		Bookings: bookings,
		Counts:   counts,
	}, nil
}

// buildSlot validates the request's time shape against the venue type and
// normalizes it into a half-open interval.
func buildSlot(venue Venue, req CreateRequest) (slot, error) {
	if venue.MultiDay {
		checkIn, err := time.ParseInLocation(dateLayout, req.CheckInDate, time.UTC)
		if err != nil {
			return slot{}, ErrInvalidDate
		}
		checkOut, err := time.ParseInLocation(dateLayout, req.CheckOutDate, time.UTC)
		if err != nil {
			return slot{}, ErrInvalidDate
		}
		if !checkOut.After(checkIn) {
			return slot{}, ErrInvalidStay
		}
		return slot{
			date:     checkIn,
			startAt:  checkIn,
			endAt:    checkOut,
			checkIn:  &checkIn,
			checkOut: &checkOut,
		}, nil
	}

	day, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return slot{}, ErrInvalidDate
	}
	start, err := time.Parse(timeLayout, req.StartTime)
	if err != nil {
		return slot{}, ErrInvalidTime
	}
	end, err := time.Parse(timeLayout, req.EndTime)
	if err != nil {
		return slot{}, ErrInvalidTime
	}

	startAt := day.Add(time.Duration(start.Hour())*time.Hour + time.Duration(start.Minute())*time.Minute)
	endAt := day.Add(time.Duration(end.Hour())*time.Hour + time.Duration(end.Minute())*time.Minute)
	if !endAt.After(startAt) {
		return slot{}, ErrInvalidTimeRange
	}

	return slot{date: day, startAt: startAt, endAt: endAt}, nil
}

// checkCapacity enforces the only attribute rule the core owns: occupancy
// bounds per venue.
func checkCapacity(venue Venue, req CreateRequest) error {
	if venue.MultiDay {
		if req.NumRooms < 1 || req.NumGuests < 1 {
			return ErrGuestLimit
		}
		if req.NumGuests > req.NumRooms*MaxGuestsPerRoom {
			return ErrGuestLimit
		}
		return nil
	}
	if req.NumAttendees > venue.Capacity {
		return ErrCapacityExceeded
	}
	return nil
}

func buildAttributes(venue Venue, req CreateRequest) map[string]any {
	attrs := make(map[string]any, len(req.Attributes)+2)
	for k, v := range req.Attributes {
		attrs[k] = v
	}
	if venue.MultiDay {
		attrs["num_rooms"] = req.NumRooms
		attrs["num_guests"] = req.NumGuests
	} else if req.NumAttendees > 0 {
		attrs["num_attendees"] = req.NumAttendees
	}
	return attrs
}

func firstNonNil[T any](a, b *T) *T {
	if a != nil {
		return a
	}
	return b
}
