package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusconnect/venue-booking-backend/internal/auth"
	"github.com/campusconnect/venue-booking-backend/internal/faculty"
	"github.com/campusconnect/venue-booking-backend/internal/pkg/response"
)

type Handler struct {
	service faculty.Service
}

func NewHandler(service faculty.Service) *Handler {
	return &Handler{service: service}
}

// Get returns the caller's faculty profile.
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), auth.GetUserEmail(c))
	if err != nil {
		if errors.Is(err, faculty.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewProfileResponse(p))
}

// Save creates or replaces the caller's faculty profile. Responds 201 when a
// profile is first created, 200 on update.
func (h *Handler) Save(c *gin.Context) {
	var body SaveProfileRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, created, err := h.service.Save(c.Request.Context(), &faculty.Profile{
		Email:       auth.GetUserEmail(c),
		Name:        body.Name,
		Department:  body.Department,
		Designation: body.Designation,
		Phone:       body.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, faculty.ErrInvalidName),
			errors.Is(err, faculty.ErrInvalidDepartment),
			errors.Is(err, faculty.ErrInvalidDesignation),
			errors.Is(err, faculty.ErrInvalidPhone):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			response.Error(c, err)
		}
		return
	}

	code := http.StatusOK
	if created {
		code = http.StatusCreated
	}
	c.JSON(code, NewProfileResponse(p))
}
