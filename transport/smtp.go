package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// SMTPDialer connects to an SMTP server.
type SMTPDialer struct {
	// TLSConfig is cloned for implicit TLS and STARTTLS. ServerName is
	// filled in from the settings when empty.
	TLSConfig *tls.Config

	// DebugWriter receives the protocol trace when mail.debug is true. It
	// defaults to os.Stderr.
	DebugWriter io.Writer

	Logger *slog.Logger
}

func (d *SMTPDialer) logger() *slog.Logger {
	if d.Logger == nil {
		return slog.Default()
	}
	return d.Logger
}

func (d *SMTPDialer) tlsConfig(s *Settings) *tls.Config {
	cfg := &tls.Config{}
	if d.TLSConfig != nil {
		cfg = d.TLSConfig.Clone()
	}
	if cfg.ServerName == "" {
		cfg.ServerName = s.Host()
	}
	if !s.CheckServerIdentity() {
		cfg.InsecureSkipVerify = true
	}
	return cfg
}

// noStartTLS is the message go-smtp fails with when the server does not
// advertise STARTTLS.
const noStartTLS = "smtp: server doesn't support STARTTLS"

var errNoStartTLS = errors.New("server does not offer STARTTLS")

// Dial opens the connection, upgrades to TLS when configured, says EHLO and
// authenticates with SASL PLAIN when credentials were given. When STARTTLS is
// wanted but not offered and not required, it redials and continues in clear
// text.
func (d *SMTPDialer) Dial(ctx context.Context, s *Settings) (Conn, error) {
	upgrade := s.StartTLS() && !s.SSL()
	c, err := d.connect(ctx, s, upgrade)
	if errors.Is(err, errNoStartTLS) {
		if s.StartTLSRequired() {
			return nil, ErrStartTLSUnsupported
		}
		d.logger().Warn("server does not offer STARTTLS, continuing in clear text", "addr", s.Addr())
		c, err = d.connect(ctx, s, false)
	}
	if err != nil {
		return nil, err
	}

	if err := d.handshake(c, s); err != nil {
		_ = c.Close()
		return nil, err
	}

	return &smtpConn{c: c, logger: d.logger()}, nil
}

func (d *SMTPDialer) dial(ctx context.Context, s *Settings) (net.Conn, error) {
	nd := &net.Dialer{Timeout: s.ConnectionTimeout()}

	var (
		conn net.Conn
		err  error
	)
	if s.SSL() {
		td := &tls.Dialer{NetDialer: nd, Config: d.tlsConfig(s)}
		conn, err = td.DialContext(ctx, "tcp", s.Addr())
	} else {
		conn, err = nd.DialContext(ctx, "tcp", s.Addr())
	}
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", s.Addr(), err)
	}
	return conn, nil
}

// connect dials and builds the client. With upgrade set the greeting, the
// first EHLO and STARTTLS happen here.
func (d *SMTPDialer) connect(ctx context.Context, s *Settings, upgrade bool) (*smtp.Client, error) {
	conn, err := d.dial(ctx, s)
	if err != nil {
		return nil, err
	}

	// a server that stops answering must not outlive the caller's context
	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	var c *smtp.Client
	if upgrade {
		c, err = smtp.NewClientStartTLS(conn, d.tlsConfig(s))
		if err != nil {
			if err.Error() == noStartTLS {
				return nil, errNoStartTLS
			}
			return nil, fmt.Errorf("starttls: %w", err)
		}
	} else {
		c = smtp.NewClient(conn)
	}

	if t := s.Timeout(); t > 0 {
		c.CommandTimeout = t
	}
	if t := s.WriteTimeout(); t > 0 {
		c.SubmissionTimeout = t
	}
	if s.Debug() {
		c.DebugWriter = d.DebugWriter
		if c.DebugWriter == nil {
			c.DebugWriter = os.Stderr
		}
	}

	return c, nil
}

func (d *SMTPDialer) handshake(c *smtp.Client, s *Settings) error {
	if err := c.Hello(s.LocalName()); err != nil {
		return fmt.Errorf("hello: %w", err)
	}

	if !s.Auth() {
		return nil
	}

	user, pass := s.Credentials()
	if err := c.Auth(sasl.NewPlainClient("", user, pass)); err != nil {
		return fmt.Errorf("auth: %w", err)
	}

	return nil
}

type smtpConn struct {
	c      *smtp.Client
	logger *slog.Logger
}

// Send runs MAIL, RCPT for each recipient and DATA, streaming the message
// straight from msg.
func (sc *smtpConn) Send(_ context.Context, env Envelope, msg io.WriterTo) error {
	if err := sc.c.Mail(env.From, nil); err != nil {
		return fmt.Errorf("mail from %q: %w", env.From, err)
	}

	for _, rcpt := range env.Recipients {
		if err := sc.c.Rcpt(rcpt, nil); err != nil {
			return fmt.Errorf("rcpt to %q: %w", rcpt, err)
		}
	}

	w, err := sc.c.Data()
	if err != nil {
		return fmt.Errorf("data: %w", err)
	}

	if _, err := msg.WriteTo(w); err != nil {
		_ = w.Close()
		return fmt.Errorf("writing message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("data: %w", err)
	}

	return nil
}

// Close says QUIT and then drops the connection.
func (sc *smtpConn) Close() error {
	if err := sc.c.Quit(); err != nil {
		_ = sc.c.Close()
		return err
	}
	return nil
}
