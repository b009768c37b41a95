package domain

import "errors"

// Common domain errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrNotFound           = errors.New("resource not found")
	ErrTransport          = errors.New("service unreachable")
)

// Validation errors (client side, never reach the network)
var (
	ErrMissingCredentials = errors.New("username/email and password are required")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrNoRoomSelected     = errors.New("no room selected")
	ErrSubmitInFlight     = errors.New("a submission is already in progress")
)

// ServiceError carries a non-2xx server response whose message must be
// surfaced verbatim
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return e.Message
}

// AsServiceError unwraps err into a ServiceError when it is one
func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// UserMessage converts any controller error into UI-displayable text.
// Server messages pass through verbatim; everything else collapses to the
// generic fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if se, ok := AsServiceError(err); ok && se.Message != "" {
		return se.Message
	}
	switch {
	case errors.Is(err, ErrMissingCredentials),
		errors.Is(err, ErrPasswordMismatch),
		errors.Is(err, ErrNoRoomSelected):
		return err.Error()
	}
	return fallback
}
