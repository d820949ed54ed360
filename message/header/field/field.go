package field

import "strings"

// Field is a single header field. The name and body are held unfolded and
// unencoded. Folding and encoding happen when the header is rendered.
type Field struct {
	name string
	body string
}

// New returns a field with the given name and body. Any line breaks in the body
// are collapsed to single spaces so that a caller cannot inject extra header
// lines.
func New(name, body string) *Field {
	return &Field{name: name, body: flatten(body)}
}

func flatten(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}

// ValidName reports whether name is a legal field name: one or more
// printable US-ASCII characters other than colon.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if c := name[i]; c < 33 || c > 126 || c == ':' {
			return false
		}
	}
	return true
}

// Name returns the field name.
func (f *Field) Name() string { return f.name }

// SetName renames the field.
func (f *Field) SetName(name string) { f.name = name }

// Body returns the unencoded field body.
func (f *Field) Body() string { return f.body }

// SetBody replaces the field body.
func (f *Field) SetBody(body string) { f.body = flatten(body) }

// String returns "Name: body" without encoding or folding.
func (f *Field) String() string {
	return f.name + ": " + f.body
}

// Bytes is String as a byte slice.
func (f *Field) Bytes() []byte {
	return []byte(f.String())
}

// Encoded returns "Name: body" with any non-ASCII words of the body turned
// into MIME encoded words.
func (f *Field) Encoded() []byte {
	return []byte(f.name + ": " + Encode(f.body))
}
