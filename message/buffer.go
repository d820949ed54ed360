package message

import (
	"bytes"
	"errors"

	"github.com/zostay/go-mailsend/message/header"
)

// DefaultMultipartContentType is used by Buffer.Multipart when no Content-type
// has been set.
const DefaultMultipartContentType = MediaTypeMixed

// BufferMode tells which way a Buffer is being used.
type BufferMode int

const (
	// ModeUnset means nothing has been written or added yet.
	ModeUnset BufferMode = iota

	// ModeSingle means the Buffer has been used as an io.Writer.
	ModeSingle

	// ModeMultipart means parts have been added.
	ModeMultipart
)

var (
	// ErrPartsBuffer is the panic value when Write follows Add.
	ErrPartsBuffer = errors.New("message buffer is in parts mode")

	// ErrSingleBuffer is the panic value when Add follows Write.
	ErrSingleBuffer = errors.New("message buffer is in single mode")

	// ErrModeUnset is returned when a message is requested from an empty
	// Buffer.
	ErrModeUnset = errors.New("no message has been built")

	// ErrNotMultipart is returned by Multipart when the Buffer was written to
	// as a single part.
	ErrNotMultipart = errors.New("single part buffer cannot become a multipart message")
)

// Buffer builds a part. Set header fields on it, then either write the decoded
// body to it or Add sub-parts, never both. Finish with Opaque or Multipart.
type Buffer struct {
	header.Header
	parts []Part
	buf   *bytes.Buffer
}

// Mode returns the current BufferMode.
func (b *Buffer) Mode() BufferMode {
	switch {
	case b.parts != nil:
		return ModeMultipart
	case b.buf != nil:
		return ModeSingle
	default:
		return ModeUnset
	}
}

// SetSingle puts the Buffer in ModeSingle, so an empty body can be built. It
// panics if parts were already added.
func (b *Buffer) SetSingle() {
	if b.parts != nil {
		panic(ErrPartsBuffer)
	}
	if b.buf == nil {
		b.buf = &bytes.Buffer{}
	}
}

// Add appends sub-parts. It panics if the Buffer has been written to.
func (b *Buffer) Add(parts ...Part) {
	if b.buf != nil {
		panic(ErrSingleBuffer)
	}
	if b.parts == nil {
		b.parts = make([]Part, 0, len(parts))
	}
	b.parts = append(b.parts, parts...)
}

// Write appends decoded body bytes. It panics if parts have been added.
func (b *Buffer) Write(p []byte) (int, error) {
	b.SetSingle()
	return b.buf.Write(p)
}

// Opaque returns the built leaf. The body is the decoded bytes written so far
// and is transfer encoded when the leaf is written. A Buffer in ModeMultipart
// is serialized into the body first.
func (b *Buffer) Opaque() (*Opaque, error) {
	switch b.Mode() {
	case ModeSingle:
		return &Opaque{Header: b.Header, Reader: b.buf}, nil
	case ModeMultipart:
		mm, err := b.Multipart()
		if err != nil {
			return nil, err
		}

		body := &bytes.Buffer{}
		if err := mm.writeBody(body); err != nil {
			return nil, err
		}

		return &Opaque{Header: mm.Header, Reader: body, encoded: true}, nil
	default:
		return nil, ErrModeUnset
	}
}

// Multipart returns the built branch. A missing Content-type becomes
// DefaultMultipartContentType and a missing boundary is generated.
func (b *Buffer) Multipart() (*Multipart, error) {
	switch b.Mode() {
	case ModeMultipart:
		if _, err := b.GetMediaType(); err != nil {
			b.SetMediaType(DefaultMultipartContentType)
		}
		if _, err := b.GetBoundary(); err != nil {
			_ = b.SetBoundary(GenerateBoundary())
		}
		return &Multipart{Header: b.Header, parts: b.parts}, nil
	case ModeSingle:
		return nil, ErrNotMultipart
	default:
		return nil, ErrModeUnset
	}
}
