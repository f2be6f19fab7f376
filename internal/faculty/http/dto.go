package http

import (
	"time"

	"github.com/campusconnect/venue-booking-backend/internal/faculty"
)

// SaveProfileRequest defines the payload for creating or updating the
// caller's faculty profile.
type SaveProfileRequest struct {
	Name        string  `json:"name" binding:"required"`
	Department  string  `json:"department" binding:"required"`
	Designation string  `json:"designation" binding:"required"`
	Phone       *string `json:"phone"`
}

// ProfileResponse is the shape of profile data returned in API responses.
type ProfileResponse struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Department     string    `json:"department"`
	DepartmentName string    `json:"department_name"`
	Designation    string    `json:"designation"`
	Phone          *string   `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewProfileResponse converts a domain faculty.Profile to ProfileResponse.
func NewProfileResponse(p *faculty.Profile) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID,
		Email:          p.Email,
		Name:           p.Name,
		Department:     p.Department,
		DepartmentName: faculty.Departments[p.Department],
		Designation:    p.Designation,
		Phone:          p.Phone,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
