package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Envelope is the SMTP envelope: the return path and every recipient,
// including blind copies.
type Envelope struct {
	From       string
	Recipients []string
}

// Conn is an open, authenticated connection to a mail server.
type Conn interface {
	// Send transmits one message to the envelope recipients.
	Send(ctx context.Context, env Envelope, msg io.WriterTo) error

	// Close ends the conversation and releases the connection.
	Close() error
}

// Dialer opens connections.
type Dialer interface {
	Dial(ctx context.Context, s *Settings) (Conn, error)
}

// DialerFunc adapts a function to a Dialer.
type DialerFunc func(ctx context.Context, s *Settings) (Conn, error)

// Dial calls f.
func (f DialerFunc) Dial(ctx context.Context, s *Settings) (Conn, error) {
	return f(ctx, s)
}

// Session delivers one message. It dials its own connection and never shares
// or reuses it.
type Session struct {
	settings *Settings
	dialer   Dialer
	logger   *slog.Logger

	mu      sync.Mutex
	state   State
	history []State
}

// SessionOption configures a Session.
type SessionOption func(s *Session)

// WithSessionLogger sets the logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

// NewSession returns an Idle session.
func NewSession(settings *Settings, d Dialer, opts ...SessionOption) *Session {
	s := &Session{
		settings: settings,
		dialer:   d,
		logger:   slog.Default(),
		state:    Idle,
		history:  []State{Idle},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// History returns every state the session has been in, oldest first.
func (s *Session) History() []State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]State(nil), s.history...)
}

func (s *Session) moveTo(to State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !CanTransition(s.state, to) {
		panic(fmt.Sprintf("transport: illegal transition %s -> %s", s.state, to))
	}

	s.logger.Debug("transport state", "from", s.state, "to", to)
	s.state = to
	s.history = append(s.history, to)
}

// Deliver connects, sends msg to the envelope recipients and closes. The
// envelope sender is replaced by the mail.smtp.from setting when present.
//
// Any failure leaves the session Failed and is returned as a *DeliveryError.
// The connection is still closed, and a failure to close is only logged. A
// close failure after a successful send is likewise only logged.
func (s *Session) Deliver(ctx context.Context, env Envelope, msg io.WriterTo) error {
	s.mu.Lock()
	if s.state != Idle {
		s.mu.Unlock()
		return ErrSessionUsed
	}
	s.state = Connecting
	s.history = append(s.history, Connecting)
	s.mu.Unlock()

	if from := s.settings.From(); from != "" {
		env.From = from
	}

	if len(env.Recipients) == 0 {
		return s.fail(Connecting, ErrNoRecipients)
	}

	s.logger.Info("connecting to mail server",
		"addr", s.settings.Addr(),
		"auth", s.settings.Auth())

	conn, err := s.dialer.Dial(ctx, s.settings)
	if err != nil {
		return s.fail(Connecting, err)
	}
	s.moveTo(Connected)

	s.moveTo(Sending)
	if err := conn.Send(ctx, env, msg); err != nil {
		s.closeQuietly(conn)
		return s.fail(Sending, err)
	}

	s.closeQuietly(conn)
	s.moveTo(Closed)

	s.logger.Info("message delivered",
		"from", env.From,
		"recipients", len(env.Recipients))

	return nil
}

func (s *Session) fail(at State, err error) error {
	s.moveTo(Failed)
	s.logger.Error("message delivery failed", "state", at, "error", err)
	return &DeliveryError{State: at, Err: err}
}

func (s *Session) closeQuietly(conn Conn) {
	if err := conn.Close(); err != nil {
		s.logger.Warn("closing mail server connection", "error", err)
	}
}
