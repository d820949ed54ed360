// Package mail holds the in-memory model of an outgoing message: sender,
// recipients, subject, ordered content parts, attachments and custom header
// fields. A Mail is filled in by the caller and then only read by the
// assembler and the transport.
package mail

import (
	"sort"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailsend/address"
)

// Media types of the content parts added by the helpers.
const (
	TypePlain = "text/plain"
	TypeHTML  = "text/html"
)

// Content is one alternative rendering of the message body.
type Content struct {
	Type string
	Body string
}

// Attachment is a named payload. The filename is also the key that HTML
// content uses to reference the attachment as an inline image.
type Attachment struct {
	Filename string
	Content  []byte
}

// Mail is an outgoing message. The address fields hold comma-separated lists
// exactly as given by the caller. They are parsed when the mail is validated.
type Mail struct {
	From    string
	To      string
	Cc      string
	Bcc     string
	ReplyTo string
	Subject string

	contents    []Content
	attachments []Attachment
	headers     map[string]string
}

// New returns a Mail with no content parts.
func New(from, to, cc, bcc, subject string) *Mail {
	return &Mail{
		From:    from,
		To:      to,
		Cc:      cc,
		Bcc:     bcc,
		Subject: subject,
	}
}

// AddContent appends a content part. The first part added decides how a
// single-part message is rendered.
func (m *Mail) AddContent(mediaType, body string) {
	m.contents = append(m.contents, Content{Type: mediaType, Body: body})
}

// AddHTMLContent appends a text/html part.
func (m *Mail) AddHTMLContent(html string) {
	m.AddContent(TypeHTML, html)
}

// AddTextContent appends a text/plain part.
func (m *Mail) AddTextContent(text string) {
	m.AddContent(TypePlain, text)
}

// Attach appends an attachment. Filenames need not be unique.
func (m *Mail) Attach(filename string, content []byte) {
	m.attachments = append(m.attachments, Attachment{Filename: filename, Content: content})
}

// SetHeader sets a custom header field, replacing any earlier value for the
// same name.
func (m *Mail) SetHeader(name, value string) {
	if m.headers == nil {
		m.headers = make(map[string]string)
	}
	m.headers[name] = value
}

// Header returns a custom header field value.
func (m *Mail) Header(name string) (string, bool) {
	v, ok := m.headers[name]
	return v, ok
}

// HeaderNames returns the custom header names in sorted order.
func (m *Mail) HeaderNames() []string {
	names := make([]string, 0, len(m.headers))
	for n := range m.headers {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Headers returns a copy of the custom header fields.
func (m *Mail) Headers() map[string]string {
	out := make(map[string]string, len(m.headers))
	for k, v := range m.headers {
		out[k] = v
	}
	return out
}

// Contents returns a copy of the content parts in insertion order.
func (m *Mail) Contents() []Content {
	return append([]Content(nil), m.contents...)
}

// Attachments returns a copy of the attachments in insertion order.
func (m *Mail) Attachments() []Attachment {
	return append([]Attachment(nil), m.attachments...)
}

// HasRecipient reports whether any of To, Cc or Bcc is non-blank.
func (m *Mail) HasRecipient() bool {
	return strings.TrimSpace(m.To) != "" ||
		strings.TrimSpace(m.Cc) != "" ||
		strings.TrimSpace(m.Bcc) != ""
}

// Addresses is the parsed form of the address fields of a Mail.
type Addresses struct {
	From    addr.AddressList
	To      addr.AddressList
	Cc      addr.AddressList
	Bcc     addr.AddressList
	ReplyTo addr.AddressList
}

// Recipients returns To, Cc and Bcc together.
func (a *Addresses) Recipients() addr.AddressList {
	return address.Concat(a.To, a.Cc, a.Bcc)
}

// ParseAddresses parses every address field. The first failure is returned
// as a *ValidationError naming the field.
func (m *Mail) ParseAddresses() (*Addresses, error) {
	var (
		as  Addresses
		err error
	)

	fields := []struct {
		name string
		in   string
		out  *addr.AddressList
	}{
		{"From", m.From, &as.From},
		{"To", m.To, &as.To},
		{"Cc", m.Cc, &as.Cc},
		{"Bcc", m.Bcc, &as.Bcc},
		{"Reply-To", m.ReplyTo, &as.ReplyTo},
	}

	for _, f := range fields {
		*f.out, err = address.Parse(f.in)
		if err != nil {
			return nil, &ValidationError{Field: f.name, Err: err}
		}
	}

	return &as, nil
}

// Validate checks that the mail can be sent: it needs a recipient, at least
// one content part and well-formed addresses. Checks run in that order.
func (m *Mail) Validate() error {
	if !m.HasRecipient() {
		return &ValidationError{Err: ErrNoRecipient}
	}

	if len(m.contents) == 0 {
		return &ValidationError{Err: ErrNoContent}
	}

	_, err := m.ParseAddresses()
	return err
}

// String summarizes the mail for logs.
func (m *Mail) String() string {
	var sb strings.Builder

	if m.From != "" {
		sb.WriteString("From [" + m.From + "]")
	}

	section := func(name, v string) {
		if v != "" {
			sb.WriteString(", " + name + " [" + v + "]")
		}
	}

	section("To", m.To)
	section("Cc", m.Cc)
	section("Bcc", m.Bcc)
	section("Reply-To", m.ReplyTo)
	section("Subject", m.Subject)

	sb.WriteString(", Contents [")
	for _, c := range m.contents {
		sb.WriteString(c.Type + ":" + c.Body + " \n ")
	}
	sb.WriteString("]")

	if len(m.headers) > 0 {
		sb.WriteString(", Headers [")
		for _, n := range m.HeaderNames() {
			sb.WriteString("[" + n + "] = [" + m.headers[n] + "]")
		}
		sb.WriteString("]")
	}

	if len(m.attachments) > 0 {
		names := make([]string, len(m.attachments))
		for i, a := range m.attachments {
			names[i] = a.Filename
		}
		sb.WriteString(", Attachments [" + strings.Join(names, ", ") + "]")
	}

	return sb.String()
}
