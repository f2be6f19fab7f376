// Package apperror defines the error type shared by all domain packages:
// an HTTP status code plus a user-facing message, optionally wrapping an
// internal cause that is never exposed to clients.
package apperror

// AppError is a domain error with an HTTP status code.
type AppError struct {
	Code    int    // HTTP status code (e.g. 400, 404)
	Message string // user-facing error message
	Err     error  // underlying cause, if any (not exposed to clients)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches AppErrors by code and message, so errors.Is still recognizes a
// sentinel after WithCause attached an underlying error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code && t.Message == e.Message
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithCause returns a copy of the error carrying err as its cause. The
// original sentinel is left untouched.
func (e *AppError) WithCause(err error) *AppError {
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     err,
	}
}
