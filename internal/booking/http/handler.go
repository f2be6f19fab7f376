package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/venue-booking-backend/internal/auth"
	"github.com/campusconnect/venue-booking-backend/internal/booking"
	"github.com/campusconnect/venue-booking-backend/internal/pkg/request"
	"github.com/campusconnect/venue-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func bookingID(c *gin.Context) (string, bool) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking ID"})
		return "", false
	}
	return req.ID, true
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := booking.CreateRequest{
		ResourceID:     body.ResourceID,
		RequesterEmail: auth.GetUserEmail(c),
		Date:           body.Date,
		StartTime:      body.StartTime,
		EndTime:        body.EndTime,
		CheckInDate:    body.CheckInDate,
		CheckOutDate:   body.CheckOutDate,
		NumAttendees:   body.NumAttendees,
		NumRooms:       body.NumRooms,
		NumGuests:      body.NumGuests,
		Attributes:     body.Attributes,
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) CheckAvailability(c *gin.Context) {
	var q AvailabilityRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required parameters"})
		return
	}

	available, err := h.service.CheckAvailability(c.Request.Context(), q.ResourceID, q.Date, q.StartTime, q.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, AvailabilityResponse{Available: available})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) ListMine(c *gin.Context) {
	bookings, err := h.service.ListMine(c.Request.Context(), auth.GetUserEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) List(c *gin.Context) {
	var q ListBookingsRequest
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters"})
		return
	}

	bookings, err := h.service.List(c.Request.Context(), booking.Filter{
		ResourceID: q.ResourceID,
		Status:     q.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Decide(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var body DecideBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Decide(c.Request.Context(), id, auth.GetActor(c), booking.Status(body.Status), body.AdminNotes)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), id, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Rollback(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	b, err := h.service.Rollback(c.Request.Context(), id, auth.GetActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewStatisticsResponse(stats))
}

func (h *Handler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context(), auth.GetUserEmail(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(d.Bookings))
	for i, b := range d.Bookings {
		items[i] = NewBookingResponse(b)
	}
	counts := make(map[string]int, len(d.Counts))
	for k, v := range d.Counts {
		counts[string(k)] = v
	}

	c.JSON(http.StatusOK, DashboardResponse{Bookings: items, Statistics: counts})
}

func (h *Handler) ListVenues(c *gin.Context) {
	venues := booking.Venues()
	items := make([]VenueResponse, len(venues))
	for i, v := range venues {
		items[i] = VenueResponse{ID: v.ID, Name: v.Name, Capacity: v.Capacity, MultiDay: v.MultiDay}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}
