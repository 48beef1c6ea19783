package ordering

import (
	"errors"
	"fmt"
)

// ErrAuthRequired marks a call the platform rejected with 401/403. The outer
// application treats it as session-invalid; here it only needs to become a
// "please log in" message instead of a generic failure.
var ErrAuthRequired = errors.New("ordering: authentication required")

// TransportError is any non-2xx platform response (or a network failure).
// It carries the server-provided message when one was present so the user
// sees the platform's own explanation rather than a generic fallback.
type TransportError struct {
	StatusCode int
	// Message is the platform's error message, empty when the body had none.
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("ordering: platform returned %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("ordering: platform call failed: %v", e.Err)
	}
	return fmt.Sprintf("ordering: platform returned %d", e.StatusCode)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UserMessage is what gets surfaced to the user: the server message when
// present, else a generic fallback.
func (e *TransportError) UserMessage() string {
	if e.Message != "" {
		return e.Message
	}
	return "Something went wrong. Please try again."
}
