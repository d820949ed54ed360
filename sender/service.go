package sender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/zostay/go-mailsend/address"
	"github.com/zostay/go-mailsend/calendar"
	"github.com/zostay/go-mailsend/compose"
	"github.com/zostay/go-mailsend/config"
	"github.com/zostay/go-mailsend/htmltext"
	"github.com/zostay/go-mailsend/mail"
	"github.com/zostay/go-mailsend/message"
	"github.com/zostay/go-mailsend/message/header"
	"github.com/zostay/go-mailsend/message/header/field"
	"github.com/zostay/go-mailsend/tmpl"
	"github.com/zostay/go-mailsend/transport"
)

// ErrNoTemplates is returned by SendFromTemplate when the Service has no
// template builder.
var ErrNoTemplates = errors.New("no mail template builder configured")

// Service sends mail. It is safe for concurrent use. Each send reads the
// configuration afresh and opens its own connection.
type Service struct {
	src       config.Source
	dialer    transport.Dialer
	assembler *compose.Assembler
	templates *tmpl.Builder
	text      htmltext.Renderer
	calendar  calendar.Renderer
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// Option configures a Service.
type Option func(s *Service)

// WithDialer replaces the SMTP dialer.
func WithDialer(d transport.Dialer) Option {
	return func(s *Service) { s.dialer = d }
}

// WithAssembler replaces the default assembler.
func WithAssembler(a *compose.Assembler) Option {
	return func(s *Service) { s.assembler = a }
}

// WithTemplates enables SendFromTemplate.
func WithTemplates(b *tmpl.Builder) Option {
	return func(s *Service) { s.templates = b }
}

// WithTextRenderer sets the HTML to text renderer used by PlainText and by the
// default assembler.
func WithTextRenderer(r htmltext.Renderer) Option {
	return func(s *Service) { s.text = r }
}

// WithCalendar sets the renderer used by Calendar.
func WithCalendar(r calendar.Renderer) Option {
	return func(s *Service) { s.calendar = r }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock sets the source of the Date header.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithMessageIDs sets the generator of the local part of Message-id values.
func WithMessageIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// New returns a Service reading transport settings from src.
func New(src config.Source, opts ...Option) *Service {
	s := &Service{
		src:    src,
		text:   htmltext.Default,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.dialer == nil {
		s.dialer = &transport.SMTPDialer{Logger: s.logger}
	}
	if s.assembler == nil {
		s.assembler = compose.New(
			compose.WithTextRenderer(s.text),
			compose.WithLogger(s.logger),
		)
	}

	return s
}

// NewMail returns an empty mail.
func (s *Service) NewMail(from, to, cc, bcc, subject string) *mail.Mail {
	return mail.New(from, to, cc, bcc, subject)
}

// PlainText renders HTML as plain text. The second value is false when
// nothing useful came out.
func (s *Service) PlainText(html string) (string, bool) {
	return s.text.PlainText(html)
}

// Calendar renders an iCalendar block for one event.
func (s *Service) Calendar(location, summary string, start, end time.Time) string {
	return s.calendar.Render(location, summary, start, end)
}

// Send validates, assembles and delivers m.
func (s *Service) Send(ctx context.Context, m *mail.Mail) (res Result) {
	defer s.recoverInto(&res)

	if err := m.Validate(); err != nil {
		s.logger.Error("mail not sent", "error", err, "mail", m.String())
		return Result{Err: err}
	}

	settings, err := s.settings(ctx)
	if err != nil {
		s.logger.Error("mail transport misconfigured", "error", err)
		return Result{Err: err}
	}

	msg, err := s.build(m, settings)
	if err != nil {
		s.logger.Error("mail not sent", "error", err, "mail", m.String())
		return Result{Err: err}
	}
	defer s.release(msg)

	res.Warnings = msg.Warnings

	sess := transport.NewSession(settings, s.dialer, transport.WithSessionLogger(s.logger))
	if err := sess.Deliver(ctx, msg.Envelope, msg.Body); err != nil {
		res.Err = err
		return res
	}

	res.Sent = true
	return res
}

// SendHTML sends an HTML mail. A non-empty alternative is added as the plain
// text part in front of the HTML.
func (s *Service) SendHTML(ctx context.Context, from, to, subject, html, alternative string) Result {
	m := s.NewMail(from, to, "", "", subject)
	if alternative != "" {
		m.AddTextContent(alternative)
	}
	m.AddHTMLContent(html)
	return s.Send(ctx, m)
}

// SendFromTemplate builds a mail from a template and sends it. Nothing is sent
// when the template cannot be resolved.
func (s *Service) SendFromTemplate(ctx context.Context, req tmpl.Request) (res Result) {
	defer s.recoverInto(&res)

	if s.templates == nil {
		return Result{Err: ErrNoTemplates}
	}

	m, err := s.templates.Build(ctx, req)
	if err != nil {
		return Result{Err: err}
	}

	return s.Send(ctx, m)
}

func (s *Service) settings(ctx context.Context) (*transport.Settings, error) {
	cfg, err := s.src.Transport(ctx)
	if err != nil {
		return nil, &transport.ConfigurationError{Key: "source", Err: err}
	}
	return transport.NewSettings(cfg)
}

func (s *Service) recoverInto(res *Result) {
	if r := recover(); r != nil {
		s.logger.Error("panic while sending mail", "panic", r)
		*res = Result{Err: fmt.Errorf("panic while sending mail: %v", r)}
	}
}

func (s *Service) release(msg *Message) {
	if err := msg.Close(); err != nil {
		s.logger.Warn("releasing staged attachments", "error", err)
	}
}

// Message is an assembled mail ready for the wire.
type Message struct {
	// Body is the whole message, top level header included.
	Body message.Part

	// Envelope carries the return path and every recipient, blind copies
	// included.
	Envelope transport.Envelope

	Warnings []error

	assembly *compose.Assembly
}

// Close releases staged attachments.
func (msg *Message) Close() error {
	return msg.assembly.Close()
}

// Build assembles m without sending it. The caller must Close the result.
// Settings are consulted only for the envelope sender, so Build can be used
// for previews without a working configuration.
func (s *Service) Build(m *mail.Mail) (*Message, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	settings, err := transport.NewSettings(config.Transport{})
	if err != nil {
		return nil, err
	}

	return s.build(m, settings)
}

// structural names header fields that belong to the MIME structure and may
// not be set as custom headers.
var structural = map[string]bool{
	strings.ToLower(header.ContentType):             true,
	strings.ToLower(header.ContentTransferEncoding): true,
	strings.ToLower(header.ContentDisposition):      true,
	strings.ToLower(header.ContentID):               true,
	strings.ToLower(header.MIMEVersion):             true,
	strings.ToLower(header.Bcc):                     true,
}

func (s *Service) build(m *mail.Mail, settings *transport.Settings) (*Message, error) {
	as, err := m.ParseAddresses()
	if err != nil {
		return nil, err
	}

	envFrom := settings.From()
	if len(as.From) == 0 && envFrom == "" {
		return nil, &mail.ValidationError{Field: "From", Err: mail.ErrNoSender}
	}

	from := address.Bare(as.From)
	if envFrom == "" {
		envFrom = from[0]
	}

	asm, err := s.assembler.Assemble(m)
	if err != nil {
		return nil, err
	}

	top := asm.Body.GetHeader()
	h := &header.Header{}
	h.SetBreak(top.Break())

	if len(as.From) > 0 {
		h.SetFrom(as.From)
	}
	h.SetTo(as.To)
	h.SetCc(as.Cc)
	h.SetReplyTo(as.ReplyTo)
	h.SetSubject(m.Subject)
	h.SetDate(s.now())
	h.SetMessageID(s.newID() + "@" + messageIDDomain(envFrom))
	h.Set(header.MIMEVersion, "1.0")

	for _, name := range m.HeaderNames() {
		if !field.ValidName(name) {
			s.logger.Warn("ignoring custom header with an invalid name", "header", name)
			continue
		}
		if structural[strings.ToLower(name)] {
			s.logger.Warn("ignoring custom header that would change the MIME structure", "header", name)
			continue
		}
		v, _ := m.Header(name)
		h.Set(name, v)
	}

	for _, f := range top.ListFields() {
		h.AddField(f.Name(), f.Body())
	}
	*top = *h

	return &Message{
		Body: asm.Body,
		Envelope: transport.Envelope{
			From:       envFrom,
			Recipients: address.Bare(as.Recipients()),
		},
		Warnings: asm.Warnings,
		assembly: asm,
	}, nil
}

func messageIDDomain(from string) string {
	if _, domain, ok := strings.Cut(from, "@"); ok && domain != "" {
		return domain
	}
	return "localhost"
}
