package transfer

import (
	"encoding/base64"
	"io"

	"github.com/zostay/go-mailsend/message/header"
)

// Base64LineLength is the longest base64 line written, per RFC 2045.
const Base64LineLength = 76

// lineWriter breaks the stream into lines of at most every bytes. The break is
// written lazily, before the next line starts, so the output never ends in a
// break.
type lineWriter struct {
	w     io.Writer
	lb    []byte
	every int
	col   int
}

func (lw *lineWriter) Write(b []byte) (int, error) {
	written := 0
	for len(b) > 0 {
		if lw.col == lw.every {
			if _, err := lw.w.Write(lw.lb); err != nil {
				return written, err
			}
			lw.col = 0
		}

		n := lw.every - lw.col
		if n > len(b) {
			n = len(b)
		}

		m, err := lw.w.Write(b[:n])
		written += m
		lw.col += m
		if err != nil {
			return written, err
		}
		b = b[n:]
	}
	return written, nil
}

func newBase64Encoder(w io.Writer, lb header.Break) io.WriteCloser {
	if lb == header.Meh {
		lb = header.CRLF
	}

	enc := base64.NewEncoder(base64.StdEncoding, &lineWriter{
		w:     w,
		lb:    lb.Bytes(),
		every: Base64LineLength,
	})
	return &writer{Writer: enc, close: enc.Close}
}

// NewBase64Encoder encodes everything written to the returned writer as base64
// in lines of Base64LineLength separated by CRLF.
func NewBase64Encoder(w io.Writer) io.WriteCloser {
	return newBase64Encoder(w, header.CRLF)
}

// NewBase64Decoder decodes base64 read from r. Line breaks in the input are
// ignored.
func NewBase64Decoder(r io.Reader) io.Reader {
	return base64.NewDecoder(base64.StdEncoding, r)
}
