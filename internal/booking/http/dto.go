package http

import (
	"time"

	"github.com/campusconnect/venue-booking-backend/internal/booking"
)

// CreateBookingRequest is the booking form payload. Hourly venues fill
// date/start_time/end_time; the delegate residence fills the check-in and
// check-out dates plus room/guest counts.
type CreateBookingRequest struct {
	ResourceID   string         `json:"resource_id" binding:"required"`
	Date         string         `json:"date"`
	StartTime    string         `json:"start_time"`
	EndTime      string         `json:"end_time"`
	CheckInDate  string         `json:"check_in_date"`
	CheckOutDate string         `json:"check_out_date"`
	NumAttendees int            `json:"num_attendees"`
	NumRooms     int            `json:"num_rooms"`
	NumGuests    int            `json:"num_guests"`
	Attributes   map[string]any `json:"attributes"`
}

// DecideBookingRequest approves or rejects a pending booking.
type DecideBookingRequest struct {
	Status     string  `json:"status" binding:"required,oneof=approved rejected"`
	AdminNotes *string `json:"admin_notes"`
}

type ListBookingsRequest struct {
	ResourceID string `form:"resource_id"`
	Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected cancelled"`
}

type AvailabilityRequest struct {
	ResourceID string `form:"resource_id" binding:"required"`
	Date       string `form:"date" binding:"required"`
	StartTime  string `form:"start_time"`
	EndTime    string `form:"end_time"`
}

type AvailabilityResponse struct {
	Available bool `json:"available"`
}

type BookingResponse struct {
	ID             string         `json:"id"`
	ResourceID     string         `json:"resource_id"`
	ResourceName   string         `json:"resource_name"`
	RequesterEmail string         `json:"requester_email"`
	Date           string         `json:"date"`
	StartTime      string         `json:"start_time,omitempty"`
	EndTime        string         `json:"end_time,omitempty"`
	CheckInDate    string         `json:"check_in_date,omitempty"`
	CheckOutDate   string         `json:"check_out_date,omitempty"`
	Status         string         `json:"status"`
	Attributes     map[string]any `json:"attributes,omitempty"`
	AdminNotes     *string        `json:"admin_notes,omitempty"`
	DecidedBy      *string        `json:"decided_by,omitempty"`
	DecidedAt      *time.Time     `json:"decided_at,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	CancelledAt    *time.Time     `json:"cancelled_at,omitempty"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	resp := BookingResponse{
		ID:             b.ID,
		ResourceID:     b.ResourceID,
		ResourceName:   b.ResourceID,
		RequesterEmail: b.RequesterEmail,
		Date:           b.Date.Format("2006-01-02"),
		Status:         string(b.Status),
		Attributes:     b.Attributes,
		AdminNotes:     b.AdminNotes,
		DecidedBy:      b.DecidedBy,
		DecidedAt:      b.DecidedAt,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		CancelledAt:    b.CancelledAt,
	}
	if v, ok := booking.VenueByID(b.ResourceID); ok {
		resp.ResourceName = v.Name
	}
	if b.CheckIn != nil && b.CheckOut != nil {
		resp.CheckInDate = b.CheckIn.Format("2006-01-02")
		resp.CheckOutDate = b.CheckOut.Format("2006-01-02")
	} else {
		resp.StartTime = b.StartAt.Format("15:04")
		resp.EndTime = b.EndAt.Format("15:04")
	}
	return resp
}

type StatisticsResponse struct {
	TotalBookings    int                     `json:"total_bookings"`
	PendingApprovals int                     `json:"pending_approvals"`
	ByStatus         map[string]int          `json:"by_status"`
	ByResource       []ResourceBreakdownItem `json:"by_resource"`
}

type ResourceBreakdownItem struct {
	ResourceID string `json:"resource_id"`
	Status     string `json:"status"`
	Count      int    `json:"count"`
}

func NewStatisticsResponse(s *booking.Statistics) StatisticsResponse {
	byStatus := make(map[string]int, len(s.ByStatus))
	for k, v := range s.ByStatus {
		byStatus[string(k)] = v
	}
	byResource := make([]ResourceBreakdownItem, len(s.ByResource))
	for i, row := range s.ByResource {
		byResource[i] = ResourceBreakdownItem{
			ResourceID: row.ResourceID,
			Status:     string(row.Status),
			Count:      row.Count,
		}
	}
	return StatisticsResponse{
		TotalBookings:    s.TotalBookings,
		PendingApprovals: s.PendingApprovals,
		ByStatus:         byStatus,
		ByResource:       byResource,
	}
}

type DashboardResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Statistics map[string]int    `json:"statistics"`
}

type VenueResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity,omitempty"`
	MultiDay bool   `json:"multi_day"`
}
