// Package transport delivers assembled messages to a mail server.
//
// Delivery goes through a Session, which is used once per message:
//
//	Idle -> Connecting -> Connected -> Sending -> Closed
//	             |                        |
//	             +--------> Failed <------+
//
// Settings are computed from a config.Transport and then extended by an
// optional properties payload. The payload can add keys but never replaces a
// computed one. The Dialer opens the connection. SMTPDialer speaks SMTP and the
// ses sub-package hands raw messages to Amazon SES.
package transport
