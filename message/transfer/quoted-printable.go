package transfer

import (
	"io"
	"mime/quotedprintable"
)

// NewQuotedPrintableEncoder encodes everything written to the returned writer
// as quoted-printable text with CRLF line breaks.
func NewQuotedPrintableEncoder(w io.Writer) io.WriteCloser {
	qpw := quotedprintable.NewWriter(w)
	return &writer{Writer: qpw, close: qpw.Close}
}

// NewQuotedPrintableDecoder decodes quoted-printable text read from r.
func NewQuotedPrintableDecoder(r io.Reader) io.Reader {
	return quotedprintable.NewReader(r)
}
