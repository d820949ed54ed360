package mail

import (
	"errors"
	"fmt"
)

// Validation failures.
var (
	ErrNoRecipient = errors.New("this mail has no recipient")
	ErrNoContent   = errors.New("this mail is empty, you should add a content")
	ErrNoSender    = errors.New("this mail has no sender")
)

// ValidationError is returned when a Mail cannot be sent as given. Field names
// the address field at fault, if any.
type ValidationError struct {
	Field string
	Err   error
}

// Error describes the failure.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
