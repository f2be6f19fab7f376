package faculty

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("faculty profile not found")
	ErrInvalidName        = errors.New("name must be between 2 and 100 characters")
	ErrInvalidDepartment  = errors.New("unknown department")
	ErrInvalidDesignation = errors.New("unknown designation")
	ErrInvalidPhone       = errors.New("phone number must be 10 digits")
)

// Profile holds the faculty details shown alongside booking requests.
type Profile struct {
	ID          string // UUID
	Email       string
	Name        string
	Department  string
	Designation string
	Phone       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Departments recognised by the institution, keyed by short code.
var Departments = map[string]string{
	"cse":   "Computer Science and Engineering",
	"it":    "Information Technology",
	"aids":  "Artificial Intelligence and Data Science",
	"ece":   "Electronics and Communication Engineering",
	"eee":   "Electrical and Electronics Engineering",
	"civil": "Civil Engineering",
	"mech":  "Mechanical Engineering",
}

// Designations a faculty member may hold.
var Designations = []string{
	"Professor",
	"Associate Professor",
	"Assistant Professor",
	"Head of Department",
	"Lab Instructor",
}
