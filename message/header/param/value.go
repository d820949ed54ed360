package param

import (
	"mime"
	"sort"
	"strings"
)

// Parameter names used by the Content-type and Content-disposition fields.
const (
	Charset  = "charset"
	Boundary = "boundary"
	Filename = "filename"
)

// Value is a parsed parameterized field body, such as the body of a
// Content-type or Content-disposition field. A Value is treated as immutable.
// Use Modify to derive a changed copy.
type Value struct {
	v  string
	ps map[string]string
}

// Parse reads a parameterized field body. It fails if the body is not a
// syntactically valid media type or disposition.
func Parse(body string) (*Value, error) {
	v, ps, err := mime.ParseMediaType(body)
	if err != nil {
		return nil, err
	}

	return &Value{v: v, ps: ps}, nil
}

// New builds a Value from a primary value and zero or more parameter maps. Later
// maps win when the same parameter is named more than once.
func New(v string, ps ...map[string]string) *Value {
	pv := &Value{v: v, ps: make(map[string]string)}
	for _, m := range ps {
		for k, pval := range m {
			pv.ps[strings.ToLower(k)] = pval
		}
	}
	return pv
}

// Modifier changes a Value during Modify.
type Modifier func(*Value)

// Change replaces the primary value.
func Change(v string) Modifier {
	return func(pv *Value) { pv.v = v }
}

// Set adds or replaces the named parameter.
func Set(name, value string) Modifier {
	return func(pv *Value) { pv.ps[strings.ToLower(name)] = value }
}

// Delete drops the named parameter.
func Delete(name string) Modifier {
	return func(pv *Value) { delete(pv.ps, strings.ToLower(name)) }
}

// Modify returns a copy of pv with every modifier applied in order. The
// original is left untouched.
func Modify(pv *Value, mods ...Modifier) *Value {
	c := pv.Clone()
	for _, m := range mods {
		m(c)
	}
	return c
}

// Clone returns a deep copy.
func (pv *Value) Clone() *Value {
	ps := make(map[string]string, len(pv.ps))
	for k, v := range pv.ps {
		ps[k] = v
	}
	return &Value{v: pv.v, ps: ps}
}

// Value is the primary value, without parameters.
func (pv *Value) Value() string { return pv.v }

// MediaType is an alias for Value used with Content-type.
func (pv *Value) MediaType() string { return pv.v }

// Presentation is an alias for Value used with Content-disposition.
func (pv *Value) Presentation() string { return pv.v }

// Type returns the part before the slash of a media type, or an empty string
// when the value has no slash.
func (pv *Value) Type() string {
	if t, _, ok := strings.Cut(pv.v, "/"); ok {
		return t
	}
	return ""
}

// Subtype returns the part after the slash of a media type, or an empty string
// when the value has no slash.
func (pv *Value) Subtype() string {
	if _, s, ok := strings.Cut(pv.v, "/"); ok {
		return s
	}
	return ""
}

// Parameters returns a copy of the parameter map.
func (pv *Value) Parameters() map[string]string {
	return pv.Clone().ps
}

// Parameter returns the named parameter or an empty string.
func (pv *Value) Parameter(name string) string {
	return pv.ps[strings.ToLower(name)]
}

// HasParameter reports whether the named parameter is set.
func (pv *Value) HasParameter(name string) bool {
	_, ok := pv.ps[strings.ToLower(name)]
	return ok
}

// Charset returns the charset parameter.
func (pv *Value) Charset() string { return pv.Parameter(Charset) }

// Boundary returns the boundary parameter.
func (pv *Value) Boundary() string { return pv.Parameter(Boundary) }

// Filename returns the filename parameter.
func (pv *Value) Filename() string { return pv.Parameter(Filename) }

// String renders the field body with parameters sorted by name. Values that
// need it are quoted or RFC 2231 encoded.
func (pv *Value) String() string {
	if s := mime.FormatMediaType(pv.v, pv.ps); s != "" {
		return s
	}

	// FormatMediaType refuses some values that show up in the wild. Fall back to
	// a plain rendering rather than dropping the field body.
	keys := make([]string, 0, len(pv.ps))
	for k := range pv.ps {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(pv.v)
	for _, k := range keys {
		sb.WriteString("; ")
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(pv.ps[k])
	}
	return sb.String()
}

// Bytes is String as a byte slice.
func (pv *Value) Bytes() []byte {
	return []byte(pv.String())
}
