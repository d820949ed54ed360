package sender

import (
	"errors"

	"github.com/zostay/go-mailsend/transport"
)

// Result is the outcome of a send.
type Result struct {
	// Sent is true when the transport accepted the message.
	Sent bool

	// Err is the reason for failure.
	Err error

	// Warnings are problems that did not stop the send, such as an
	// attachment that could not be staged.
	Warnings []error
}

// OK reports success.
func (r Result) OK() bool {
	return r.Sent && r.Err == nil
}

// Misconfigured reports whether the failure came from the transport settings
// rather than from the message or the server.
func (r Result) Misconfigured() bool {
	var cerr *transport.ConfigurationError
	return errors.As(r.Err, &cerr)
}
