package transfer

import (
	"io"

	"github.com/zostay/go-mailsend/message/header"
)

// Content-transfer-encoding values. Only quoted-printable and base64 change the
// bytes. The rest are passed through as-is.
const (
	None            = ""
	Bit7            = "7bit"
	Bit8            = "8bit"
	Binary          = "binary"
	QuotedPrintable = "quoted-printable"
	Base64          = "base64"
)

// writer pairs an io.Writer with an optional close step.
type writer struct {
	io.Writer
	close func() error
}

// Close runs the close step, if any. It never closes the destination writer.
func (w *writer) Close() error {
	if w.close != nil {
		return w.close()
	}
	return nil
}

// Transcoding is an encoder and decoder for one Content-transfer-encoding. The
// encoder receives the line break the enclosing header uses.
type Transcoding struct {
	Encoder func(w io.Writer, lb header.Break) io.WriteCloser
	Decoder func(r io.Reader) io.Reader
}

func asIs(w io.Writer, _ header.Break) io.WriteCloser { return NewAsIsEncoder(w) }

func qp(w io.Writer, _ header.Break) io.WriteCloser { return NewQuotedPrintableEncoder(w) }

// AsIsTranscoder leaves bytes alone in both directions.
var AsIsTranscoder = Transcoding{asIs, NewAsIsDecoder}

// Transcodings maps each supported Content-transfer-encoding to its
// Transcoding. Unknown encodings are treated as as-is.
var Transcodings = map[string]Transcoding{
	None:            AsIsTranscoder,
	Bit7:            AsIsTranscoder,
	Bit8:            AsIsTranscoder,
	Binary:          AsIsTranscoder,
	QuotedPrintable: {qp, NewQuotedPrintableDecoder},
	Base64:          {newBase64Encoder, NewBase64Decoder},
}

// ApplyTransferEncoding wraps w so that bytes written are encoded according to
// the Content-transfer-encoding of h. Close must be called to flush the
// encoder. It does not close w.
func ApplyTransferEncoding(h *header.Header, w io.Writer) io.WriteCloser {
	cte, err := h.GetTransferEncoding()
	if err != nil {
		return NewAsIsEncoder(w)
	}

	if tc, ok := Transcodings[cte]; ok {
		return tc.Encoder(w, h.Break())
	}
	return NewAsIsEncoder(w)
}

// ApplyTransferDecoding wraps r so that reads are decoded according to the
// Content-transfer-encoding of h. Multipart bodies are never decoded.
func ApplyTransferDecoding(h *header.Header, r io.Reader) io.Reader {
	if ct, err := h.GetContentType(); err == nil && ct.Type() == "multipart" {
		return r
	}

	cte, err := h.GetTransferEncoding()
	if err != nil {
		return r
	}

	if tc, ok := Transcodings[cte]; ok {
		return tc.Decoder(r)
	}
	return r
}
