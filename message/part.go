package message

import (
	"io"

	"github.com/zostay/go-mailsend/message/header"
)

// Part is a node in a MIME tree. A branch is a *Multipart, with sub-parts and
// no content. A leaf is an *Opaque, with content and no sub-parts.
type Part interface {
	io.WriterTo

	// IsMultipart reports whether this is a branch. GetParts may only be
	// used when it is true and GetReader only when it is false.
	IsMultipart() bool

	// IsEncoded reports whether the bytes from GetReader are already in the
	// transfer encoding named by the header. It is always false for a branch.
	IsEncoded() bool

	// GetHeader returns the part header.
	GetHeader() *header.Header

	// GetReader returns the leaf content, or nil for a branch.
	GetReader() io.Reader

	// GetParts returns the sub-parts of a branch, or nil for a leaf.
	GetParts() []Part
}

// Generic is a Part that is guaranteed to be either an *Opaque or a
// *Multipart, so it is safe to type switch on those two.
type Generic = Part

// countWriter tallies the bytes passed to the destination.
type countWriter struct {
	w io.Writer
	n int64
}

func (cw *countWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
