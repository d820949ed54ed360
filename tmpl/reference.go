package tmpl

import "strings"

// Reference names a template.
type Reference struct {
	Space string
	Page  string
}

// ParseReference reads "Space.Page". Segments after the page are ignored.
func ParseReference(s string) (Reference, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) < 2 {
		return Reference{}, ErrInvalidReference
	}

	ref := Reference{Space: parts[0], Page: parts[1]}
	if ref.Space == "" || ref.Page == "" {
		return Reference{}, ErrInvalidReference
	}

	return ref, nil
}

// String returns "Space.Page".
func (r Reference) String() string {
	return r.Space + "." + r.Page
}
