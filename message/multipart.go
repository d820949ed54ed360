package message

import (
	"errors"
	"io"

	"github.com/zostay/go-mailsend/message/header"
)

// Multipart media types produced when composing.
const (
	MediaTypeAlternative = "multipart/alternative"
	MediaTypeMixed       = "multipart/mixed"
	MediaTypeRelated     = "multipart/related"
)

// ErrNoBoundary is returned by Multipart.WriteTo when the Content-type has no
// boundary parameter.
var ErrNoBoundary = errors.New("multipart message has no boundary")

// Multipart is a branch part. Its Content-type must be a multipart/* type with
// a boundary.
type Multipart struct {
	header.Header

	parts []Part
}

// NewMultipart returns a branch of the given multipart media type holding
// parts, with a freshly generated boundary.
func NewMultipart(mediaType string, parts ...Part) *Multipart {
	mm := &Multipart{parts: parts}
	mm.SetMediaType(mediaType)
	_ = mm.SetBoundary(GenerateBoundary())
	return mm
}

// MultipartAlternative returns a multipart/alternative branch. Parts go from
// least to most preferred.
func MultipartAlternative(parts ...Part) *Multipart {
	return NewMultipart(MediaTypeAlternative, parts...)
}

// MultipartMixed returns a multipart/mixed branch.
func MultipartMixed(parts ...Part) *Multipart {
	return NewMultipart(MediaTypeMixed, parts...)
}

// MultipartRelated returns a multipart/related branch. The first part is the
// root and the rest are resources it refers to by Content-id.
func MultipartRelated(parts ...Part) *Multipart {
	return NewMultipart(MediaTypeRelated, parts...)
}

// Add appends parts.
func (mm *Multipart) Add(parts ...Part) {
	mm.parts = append(mm.parts, parts...)
}

// WriteTo writes the header, each part preceded by a delimiter line, and the
// closing delimiter. Every reader in the tree is consumed.
func (mm *Multipart) WriteTo(w io.Writer) (int64, error) {
	if _, err := mm.GetBoundary(); err != nil {
		return 0, ErrNoBoundary
	}

	cw := &countWriter{w: w}
	if _, err := mm.Header.WriteTo(cw); err != nil {
		return cw.n, err
	}

	err := mm.writeBody(cw)
	return cw.n, err
}

// writeBody writes everything after the header.
func (mm *Multipart) writeBody(w io.Writer) error {
	boundary, err := mm.GetBoundary()
	if err != nil {
		return ErrNoBoundary
	}

	br := mm.Break().String()
	for i, part := range mm.parts {
		delim := "--" + boundary + br
		if i > 0 {
			delim = br + delim
		}
		if _, err := io.WriteString(w, delim); err != nil {
			return err
		}

		if _, err := part.WriteTo(w); err != nil {
			return err
		}
	}

	closing := "--" + boundary + "--" + br
	if len(mm.parts) > 0 {
		closing = br + closing
	}
	_, err = io.WriteString(w, closing)
	return err
}

// IsMultipart always returns true.
func (mm *Multipart) IsMultipart() bool {
	return true
}

// IsEncoded always returns false.
func (mm *Multipart) IsEncoded() bool {
	return false
}

// GetHeader returns the header.
func (mm *Multipart) GetHeader() *header.Header {
	return &mm.Header
}

// GetReader always returns nil.
func (mm *Multipart) GetReader() io.Reader {
	return nil
}

// GetParts returns the sub-parts.
func (mm *Multipart) GetParts() []Part {
	return mm.parts
}
