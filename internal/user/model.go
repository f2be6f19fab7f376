package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailNotAllowed    = errors.New("email domain is not allowed")
)

// User represents a faculty or admin account.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}
