package message

import (
	"io"

	"github.com/zostay/go-mailsend/message/header"
	"github.com/zostay/go-mailsend/message/transfer"
)

// Opaque is a leaf part: a header and a body.
type Opaque struct {
	header.Header

	// Reader holds the body. A nil Reader is an empty body.
	io.Reader

	// encoded is true when Reader already yields transfer-encoded bytes, in
	// which case WriteTo copies them unchanged.
	encoded bool
}

// NewOpaque returns a leaf whose decoded body is read from r. The transfer
// encoding named by h is applied when the leaf is written.
func NewOpaque(h *header.Header, r io.Reader) *Opaque {
	m := &Opaque{Reader: r}
	if h != nil {
		m.Header = *h
	}
	return m
}

// WriteTo writes the header and then the body, applying the
// Content-transfer-encoding unless the body is already encoded. The reader is
// consumed, so a leaf can only be written once.
func (m *Opaque) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}

	if _, err := m.Header.WriteTo(cw); err != nil {
		return cw.n, err
	}

	if m.Reader == nil {
		return cw.n, nil
	}

	if m.encoded {
		_, err := io.Copy(cw, m.Reader)
		return cw.n, err
	}

	tw := transfer.ApplyTransferEncoding(&m.Header, cw)
	if _, err := io.Copy(tw, m.Reader); err != nil {
		_ = tw.Close()
		return cw.n, err
	}

	err := tw.Close()
	return cw.n, err
}

// IsMultipart always returns false.
func (m *Opaque) IsMultipart() bool {
	return false
}

// IsEncoded reports whether the reader yields already encoded bytes.
func (m *Opaque) IsEncoded() bool {
	return m.encoded
}

// GetHeader returns the header.
func (m *Opaque) GetHeader() *header.Header {
	return &m.Header
}

// GetReader returns the body reader.
func (m *Opaque) GetReader() io.Reader {
	return m.Reader
}

// GetParts always returns nil.
func (m *Opaque) GetParts() []Part {
	return nil
}
