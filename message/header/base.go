package header

import (
	"bytes"
	"errors"
	"io"
	"strings"

	"github.com/zostay/go-mailsend/message/header/field"
)

// ErrIndexOutOfRange is returned when a field index is not in the header.
var ErrIndexOutOfRange = errors.New("header field index is out of range")

// Base is the low-level field store behind Header. The zero value is ready to
// use and renders with CRLF breaks and default folding.
type Base struct {
	lbr    Break
	vf     *field.FoldEncoding
	fields []*field.Field
}

// Clone returns a copy of the header whose fields can be changed without
// touching the original.
func (h *Base) Clone() *Base {
	fs := make([]*field.Field, len(h.fields))
	for i, f := range h.fields {
		fs[i] = field.New(f.Name(), f.Body())
	}
	return &Base{lbr: h.lbr, vf: h.vf, fields: fs}
}

// Break returns the line break used when rendering.
func (h *Base) Break() Break {
	if h.lbr == Meh {
		return CRLF
	}
	return h.lbr
}

// SetBreak changes the line break used when rendering.
func (h *Base) SetBreak(lbr Break) {
	h.lbr = lbr
}

// FoldEncoding returns the folding rules used when rendering.
func (h *Base) FoldEncoding() *field.FoldEncoding {
	if h.vf == nil {
		return field.DefaultFoldEncoding
	}
	return h.vf
}

// SetFoldEncoding changes the folding rules used when rendering.
func (h *Base) SetFoldEncoding(vf *field.FoldEncoding) {
	h.vf = vf
}

// Len is the number of fields.
func (h *Base) Len() int {
	return len(h.fields)
}

// GetField returns the nth field or nil.
func (h *Base) GetField(n int) *field.Field {
	if n < 0 || n >= len(h.fields) {
		return nil
	}
	return h.fields[n]
}

// GetIndexesNamed returns the positions of every field with the given name.
// Names compare case-insensitively.
func (h *Base) GetIndexesNamed(name string) []int {
	var ixs []int
	for i, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			ixs = append(ixs, i)
		}
	}
	return ixs
}

// GetAllFieldsNamed returns every field with the given name.
func (h *Base) GetAllFieldsNamed(name string) []*field.Field {
	var fs []*field.Field
	for _, f := range h.fields {
		if strings.EqualFold(f.Name(), name) {
			fs = append(fs, f)
		}
	}
	return fs
}

// ListFields returns the fields in order. The slice is a copy but the fields
// are shared.
func (h *Base) ListFields() []*field.Field {
	fs := make([]*field.Field, len(h.fields))
	copy(fs, h.fields)
	return fs
}

// InsertBeforeField inserts a new field at position n. Values of n past either
// end are clamped.
func (h *Base) InsertBeforeField(n int, name, body string) {
	if n < 0 {
		n = 0
	}
	if n > len(h.fields) {
		n = len(h.fields)
	}

	h.fields = append(h.fields, nil)
	copy(h.fields[n+1:], h.fields[n:])
	h.fields[n] = field.New(name, body)
}

// AddField appends a new field to the end of the header.
func (h *Base) AddField(name, body string) {
	h.fields = append(h.fields, field.New(name, body))
}

// DeleteField removes the nth field.
func (h *Base) DeleteField(n int) error {
	if n < 0 || n >= len(h.fields) {
		return ErrIndexOutOfRange
	}
	h.fields = append(h.fields[:n], h.fields[n+1:]...)
	return nil
}

// ClearFields removes every field.
func (h *Base) ClearFields() {
	h.fields = h.fields[:0]
}

// WriteTo renders every field, folded and encoded, followed by the blank line
// that ends a header.
func (h *Base) WriteTo(w io.Writer) (int64, error) {
	lb := h.Break().Bytes()
	vf := h.FoldEncoding()

	var total int64
	for _, f := range h.fields {
		n, err := w.Write(vf.Fold(f.Encoded(), lb))
		total += int64(n)
		if err != nil {
			return total, err
		}

		n, err = w.Write(lb)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}

	n, err := w.Write(lb)
	total += int64(n)
	return total, err
}

// Bytes renders the header as WriteTo does.
func (h *Base) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = h.WriteTo(&buf)
	return buf.Bytes()
}

// String renders the header as WriteTo does.
func (h *Base) String() string {
	return string(h.Bytes())
}
