package yoga

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request payload failed validation.
	ErrValidation = errors.New("validation error")

	// ErrUnauthorized indicates the backend rejected the caller's credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNotFound indicates the requested user or resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a registration collided with an existing account.
	ErrAlreadyExists = errors.New("already exists")

	// ErrSessionExpired indicates the saved session can no longer be
	// refreshed and the operator has to log in again.
	ErrSessionExpired = errors.New("session expired")

	// ErrPlaybackClosed indicates an operation on a released playback.
	ErrPlaybackClosed = errors.New("playback closed")
)

// Error is a non-2xx response from the attendance backend.
type Error struct {
	Status  int    // HTTP status code
	Message string // "error" field of the response body, or the raw body
	Body    Reply  // decoded response body
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// Is maps backend errors onto the package sentinels. The backend answers most
// failures with 400 and a free-form message, so the message is inspected too.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound || strings.Contains(strings.ToLower(e.Message), "not found")
	case ErrAlreadyExists:
		return e.Status == http.StatusConflict || strings.Contains(strings.ToLower(e.Message), "already exists")
	}
	return false
}
