package tmpl

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthorized is returned when the caller may not send from
	// templates, or may not view the referenced one.
	ErrNotAuthorized = errors.New("not authorized to use mail template")

	// ErrInvalidReference is returned for a reference without both a space
	// and a page.
	ErrInvalidReference = errors.New("invalid template reference")

	// ErrTemplateNotFound is returned when neither the requested language nor
	// the default language has a variant.
	ErrTemplateNotFound = errors.New("mail template not found")
)

// ResolutionError wraps every failure to turn a template into a mail.
type ResolutionError struct {
	Reference string
	Err       error
}

// Error describes the failure.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("mail template %q: %v", e.Reference, e.Err)
}

// Unwrap returns the cause.
func (e *ResolutionError) Unwrap() error {
	return e.Err
}
