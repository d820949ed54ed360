package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionUsed is returned when Deliver is called on a Session that has
	// already left Idle.
	ErrSessionUsed = errors.New("transport session already used")

	// ErrNoRecipients is returned when the envelope has no recipients.
	ErrNoRecipients = errors.New("envelope has no recipients")

	// ErrStartTLSUnsupported is returned when STARTTLS is required and the
	// server does not offer it.
	ErrStartTLSUnsupported = errors.New("server does not support STARTTLS")
)

// ConfigurationError reports transport settings that cannot be used. It points
// at a deployment mistake rather than a delivery problem.
type ConfigurationError struct {
	Key string
	Err error
}

// Error describes the bad setting.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("transport setting %s: %v", e.Key, e.Err)
}

// Unwrap returns the cause.
func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// DeliveryError reports a failure while connecting or sending.
type DeliveryError struct {
	// State is where the session was when it failed.
	State State
	Err   error
}

// Error describes the failure.
func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery failed while %s: %v", e.State, e.Err)
}

// Unwrap returns the cause.
func (e *DeliveryError) Unwrap() error {
	return e.Err
}
