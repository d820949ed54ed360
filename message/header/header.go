package header

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailsend/message/header/param"
)

// Errors returned by the Header getters and setters.
var (
	// ErrNoSuchField is returned when the named field is not set.
	ErrNoSuchField = errors.New("no such header field")

	// ErrNoSuchFieldParameter is returned when a parameterized field is set but
	// the requested parameter is not.
	ErrNoSuchFieldParameter = errors.New("no such header field parameter")

	// ErrManyFields is returned by single-value getters when the field is set
	// more than once. The first value is still returned.
	ErrManyFields = errors.New("many header fields found")
)

// Field names used when composing messages. Names are written with only the
// first letter capitalized.
const (
	Bcc                     = "Bcc"
	Cc                      = "Cc"
	ContentDisposition      = "Content-disposition"
	ContentID               = "Content-id"
	ContentTransferEncoding = "Content-transfer-encoding"
	ContentType             = "Content-type"
	Date                    = "Date"
	From                    = "From"
	InReplyTo               = "In-reply-to"
	MessageID               = "Message-id"
	MIMEVersion             = "Mime-version"
	References              = "References"
	ReplyTo                 = "Reply-to"
	Sender                  = "Sender"
	Subject                 = "Subject"
	To                      = "To"
)

// UnixDateWithEarlyYear is a date layout seen in the wild that the other
// parsers reject.
const UnixDateWithEarlyYear = "Mon Jan 02 15:04:05 2006 MST"

// Header is a message or part header. The getters return ErrNoSuchField when
// the field is missing.
type Header struct {
	Base
}

// Clone returns a deep copy of the header.
func (h *Header) Clone() *Header {
	return &Header{Base: *h.Base.Clone()}
}

// Get returns the body of the named field. When the field appears more than
// once the first body is returned with ErrManyFields.
func (h *Header) Get(name string) (string, error) {
	fs := h.GetAllFieldsNamed(name)
	switch len(fs) {
	case 0:
		return "", ErrNoSuchField
	case 1:
		return fs[0].Body(), nil
	default:
		return fs[0].Body(), ErrManyFields
	}
}

// GetAll returns the bodies of every field with the given name.
func (h *Header) GetAll(name string) ([]string, error) {
	fs := h.GetAllFieldsNamed(name)
	if len(fs) == 0 {
		return nil, ErrNoSuchField
	}

	bs := make([]string, len(fs))
	for i, f := range fs {
		bs[i] = f.Body()
	}
	return bs, nil
}

// Set replaces the named field with a single field holding body. The new field
// takes the place of the first existing one, or is appended when there is
// none.
func (h *Header) Set(name, body string) {
	h.SetAll(name, body)
}

// SetAll replaces every field with the given name by one field per body. The
// new fields go where the first old one was.
func (h *Header) SetAll(name string, bodies ...string) {
	ixs := h.GetIndexesNamed(name)
	at := h.Len()
	if len(ixs) > 0 {
		at = ixs[0]
	}

	for i := len(ixs) - 1; i >= 0; i-- {
		_ = h.DeleteField(ixs[i])
	}

	for i, b := range bodies {
		h.InsertBeforeField(at+i, name, b)
	}
}

// Add appends another field with the given name, keeping any existing ones.
func (h *Header) Add(name, body string) {
	h.AddField(name, body)
}

// Delete removes every field with the given name.
func (h *Header) Delete(name string) {
	h.SetAll(name)
}

// Has reports whether at least one field with the name is present.
func (h *Header) Has(name string) bool {
	return len(h.GetIndexesNamed(name)) > 0
}

// ParseTime reads a date in RFC 5322 form, falling back to the lenient
// dateparse formats and then to a handful of layouts seen in the wild.
func ParseTime(body string) (time.Time, error) {
	if t, err := mail.ParseDate(body); err == nil {
		return t, nil
	}

	if t, err := dateparse.ParseAny(body); err == nil {
		return t, nil
	}

	if t, err := time.Parse(UnixDateWithEarlyYear, body); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("time string %q cannot be parsed", body)
}

// GetTime parses the named field as a date.
func (h *Header) GetTime(name string) (time.Time, error) {
	body, err := h.Get(name)
	if err != nil && !errors.Is(err, ErrManyFields) {
		return time.Time{}, err
	}

	t, perr := ParseTime(body)
	if perr != nil {
		return t, perr
	}
	return t, err
}

// SetTime writes a date in RFC 5322 form.
func (h *Header) SetTime(name string, t time.Time) {
	h.Set(name, t.Format(time.RFC1123Z))
}

// GetAddressList strictly parses the named field as an address list.
func (h *Header) GetAddressList(name string) (addr.AddressList, error) {
	body, err := h.Get(name)
	if err != nil && !errors.Is(err, ErrManyFields) {
		return nil, err
	}

	al, perr := addr.ParseEmailAddressList(body)
	if perr != nil {
		return nil, fmt.Errorf("%s: %w", name, perr)
	}
	return al, err
}

// SetAddressList writes the addresses as a single comma-separated field. An
// empty list removes the field.
func (h *Header) SetAddressList(name string, al addr.AddressList) {
	if len(al) == 0 {
		h.Delete(name)
		return
	}
	h.Set(name, al.String())
}

// GetParamValue parses the named field as a parameterized value.
func (h *Header) GetParamValue(name string) (*param.Value, error) {
	body, err := h.Get(name)
	if err != nil && !errors.Is(err, ErrManyFields) {
		return nil, err
	}

	pv, perr := param.Parse(body)
	if perr != nil {
		return nil, perr
	}
	return pv, err
}

// SetParamValue writes the parameterized value to the named field.
func (h *Header) SetParamValue(name string, pv *param.Value) {
	h.Set(name, pv.String())
}

func (h *Header) getParam(name, p string) (string, error) {
	pv, err := h.GetParamValue(name)
	if err != nil && !errors.Is(err, ErrManyFields) {
		return "", err
	}

	if !pv.HasParameter(p) {
		return "", ErrNoSuchFieldParameter
	}
	return pv.Parameter(p), err
}

func (h *Header) setParam(name, p, v string) error {
	pv, err := h.GetParamValue(name)
	if err != nil && !errors.Is(err, ErrManyFields) {
		return err
	}

	h.SetParamValue(name, param.Modify(pv, param.Set(p, v)))
	return nil
}

// setPrimary changes the primary value of a parameterized field, keeping its
// parameters, or creates the field when it is missing or unreadable.
func (h *Header) setPrimary(name, v string) {
	pv, err := h.GetParamValue(name)
	if err != nil && !errors.Is(err, ErrManyFields) {
		h.SetParamValue(name, param.New(v))
		return
	}
	h.SetParamValue(name, param.Modify(pv, param.Change(v)))
}

// GetContentType returns the Content-type field.
func (h *Header) GetContentType() (*param.Value, error) {
	return h.GetParamValue(ContentType)
}

// SetContentType replaces the Content-type field.
func (h *Header) SetContentType(pv *param.Value) {
	h.SetParamValue(ContentType, pv)
}

// GetMediaType returns the media type of the Content-type field.
func (h *Header) GetMediaType() (string, error) {
	pv, err := h.GetContentType()
	if pv == nil {
		return "", err
	}
	return pv.MediaType(), err
}

// SetMediaType sets the media type of the Content-type field, keeping any
// parameters already present.
func (h *Header) SetMediaType(mt string) {
	h.setPrimary(ContentType, mt)
}

// GetCharset returns the charset parameter of the Content-type field.
func (h *Header) GetCharset() (string, error) {
	return h.getParam(ContentType, param.Charset)
}

// SetCharset sets the charset parameter. The Content-type field must already
// be set.
func (h *Header) SetCharset(cs string) error {
	return h.setParam(ContentType, param.Charset, cs)
}

// GetBoundary returns the boundary parameter of the Content-type field.
func (h *Header) GetBoundary() (string, error) {
	return h.getParam(ContentType, param.Boundary)
}

// SetBoundary sets the boundary parameter. The Content-type field must already
// be set.
func (h *Header) SetBoundary(b string) error {
	return h.setParam(ContentType, param.Boundary, b)
}

// GetContentDisposition returns the Content-disposition field.
func (h *Header) GetContentDisposition() (*param.Value, error) {
	return h.GetParamValue(ContentDisposition)
}

// SetContentDisposition replaces the Content-disposition field.
func (h *Header) SetContentDisposition(pv *param.Value) {
	h.SetParamValue(ContentDisposition, pv)
}

// GetPresentation returns the disposition, such as "inline" or "attachment".
func (h *Header) GetPresentation() (string, error) {
	pv, err := h.GetContentDisposition()
	if pv == nil {
		return "", err
	}
	return pv.Presentation(), err
}

// SetPresentation sets the disposition, keeping any parameters.
func (h *Header) SetPresentation(d string) {
	h.setPrimary(ContentDisposition, d)
}

// GetFilename returns the filename parameter of the Content-disposition field.
func (h *Header) GetFilename() (string, error) {
	return h.getParam(ContentDisposition, param.Filename)
}

// SetFilename sets the filename parameter. The Content-disposition field must
// already be set.
func (h *Header) SetFilename(f string) error {
	return h.setParam(ContentDisposition, param.Filename, f)
}

// GetTransferEncoding returns the Content-transfer-encoding field.
func (h *Header) GetTransferEncoding() (string, error) {
	return h.Get(ContentTransferEncoding)
}

// SetTransferEncoding replaces the Content-transfer-encoding field.
func (h *Header) SetTransferEncoding(enc string) {
	h.Set(ContentTransferEncoding, enc)
}

// GetContentID returns the Content-id without its angle brackets.
func (h *Header) GetContentID() (string, error) {
	id, err := h.Get(ContentID)
	return strings.TrimSuffix(strings.TrimPrefix(id, "<"), ">"), err
}

// SetContentID sets the Content-id, adding angle brackets when missing.
func (h *Header) SetContentID(id string) {
	h.Set(ContentID, angle(id))
}

// GetMessageID returns the Message-id without its angle brackets.
func (h *Header) GetMessageID() (string, error) {
	id, err := h.Get(MessageID)
	return strings.TrimSuffix(strings.TrimPrefix(id, "<"), ">"), err
}

// SetMessageID sets the Message-id, adding angle brackets when missing.
func (h *Header) SetMessageID(id string) {
	h.Set(MessageID, angle(id))
}

func angle(id string) string {
	if strings.HasPrefix(id, "<") && strings.HasSuffix(id, ">") {
		return id
	}
	return "<" + id + ">"
}

// GetDate returns the Date field as a time.
func (h *Header) GetDate() (time.Time, error) {
	return h.GetTime(Date)
}

// SetDate sets the Date field.
func (h *Header) SetDate(d time.Time) {
	h.SetTime(Date, d)
}

// GetSubject returns the Subject field.
func (h *Header) GetSubject() (string, error) {
	return h.Get(Subject)
}

// SetSubject sets the Subject field.
func (h *Header) SetSubject(s string) {
	h.Set(Subject, s)
}

// GetFrom returns the From field as an address list.
func (h *Header) GetFrom() (addr.AddressList, error) { return h.GetAddressList(From) }

// SetFrom sets the From field.
func (h *Header) SetFrom(al addr.AddressList) { h.SetAddressList(From, al) }

// GetTo returns the To field as an address list.
func (h *Header) GetTo() (addr.AddressList, error) { return h.GetAddressList(To) }

// SetTo sets the To field.
func (h *Header) SetTo(al addr.AddressList) { h.SetAddressList(To, al) }

// GetCc returns the Cc field as an address list.
func (h *Header) GetCc() (addr.AddressList, error) { return h.GetAddressList(Cc) }

// SetCc sets the Cc field.
func (h *Header) SetCc(al addr.AddressList) { h.SetAddressList(Cc, al) }

// GetBcc returns the Bcc field as an address list.
func (h *Header) GetBcc() (addr.AddressList, error) { return h.GetAddressList(Bcc) }

// SetBcc sets the Bcc field.
func (h *Header) SetBcc(al addr.AddressList) { h.SetAddressList(Bcc, al) }

// GetReplyTo returns the Reply-to field as an address list.
func (h *Header) GetReplyTo() (addr.AddressList, error) { return h.GetAddressList(ReplyTo) }

// SetReplyTo sets the Reply-to field.
func (h *Header) SetReplyTo(al addr.AddressList) { h.SetAddressList(ReplyTo, al) }
