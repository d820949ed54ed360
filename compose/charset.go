package compose

import (
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// encodeText converts body to the named charset and returns the bytes with the
// canonical charset name. On failure the UTF-8 bytes are returned along with
// a *CharsetError.
func encodeText(body, charset string) ([]byte, string, error) {
	if charset == "" || strings.EqualFold(charset, DefaultCharset) || strings.EqualFold(charset, "utf8") {
		return []byte(body), DefaultCharset, nil
	}

	enc, err := ianaindex.MIME.Encoding(charset)
	if err == nil && enc == nil {
		err = errUnsupportedCharset
	}
	if err != nil {
		return []byte(body), DefaultCharset, &CharsetError{Charset: charset, Err: err}
	}

	out, err := enc.NewEncoder().Bytes([]byte(body))
	if err != nil {
		return []byte(body), DefaultCharset, &CharsetError{Charset: charset, Err: err}
	}

	name, err := ianaindex.MIME.Name(enc)
	if err != nil {
		name = charset
	}
	return out, name, nil
}
