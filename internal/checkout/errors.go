package checkout

import (
	"errors"
	"fmt"
)

// ValidationError is a locally-detected precondition failure: the operation
// does not proceed, no network call is made, and the triggering state is
// unchanged. Always recoverable by the user.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("checkout: validation: %s", e.Reason)
}

func validationErr(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrPaymentFailed marks a payment attempt the platform declined. The order
// stays at PLACED; the user can retry with another method.
var ErrPaymentFailed = errors.New("checkout: payment failed")
