package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/campusconnect/venue-booking-backend/internal/booking"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserEmail returns the authenticated user's email or empty string.
func GetUserEmail(c *gin.Context) string {
	if v, ok := c.Get("userEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// IsAdmin reports whether the authenticated user carries the admin claim.
func IsAdmin(c *gin.Context) bool {
	if v, ok := c.Get("isAdmin"); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// GetActor builds the policy actor for the authenticated user.
func GetActor(c *gin.Context) booking.Actor {
	return booking.Actor{
		Email:   GetUserEmail(c),
		IsAdmin: IsAdmin(c),
	}
}
