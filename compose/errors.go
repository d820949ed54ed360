package compose

import (
	"errors"
	"fmt"
)

var errUnsupportedCharset = errors.New("charset has no encoder")

// StagingError records an attachment that could not be staged and was replaced
// by an empty part.
type StagingError struct {
	Filename string
	Err      error
}

// Error describes the failure.
func (e *StagingError) Error() string {
	return fmt.Sprintf("staging attachment %q: %v", e.Filename, e.Err)
}

// Unwrap returns the cause.
func (e *StagingError) Unwrap() error {
	return e.Err
}

// CharsetError records a text part that was sent as UTF-8 because it could not
// be encoded in the configured charset.
type CharsetError struct {
	Charset string
	Err     error
}

// Error describes the failure.
func (e *CharsetError) Error() string {
	return fmt.Sprintf("encoding text as %s: %v", e.Charset, e.Err)
}

// Unwrap returns the cause.
func (e *CharsetError) Unwrap() error {
	return e.Err
}
