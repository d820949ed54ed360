package field

import (
	"mime"
	"strings"
	"unicode/utf8"
)

// Encode turns the non-ASCII runs of a field body into UTF-8 B encoded words.
// Runs of adjacent words that need encoding become a single encoded word so
// that the spaces between them survive decoding. Bodies that are plain ASCII
// are returned unchanged.
func Encode(body string) string {
	if isASCII(body) {
		return body
	}

	words := strings.Split(body, " ")
	out := make([]string, 0, len(words))
	run := make([]string, 0, len(words))
	flush := func() {
		if len(run) > 0 {
			out = append(out, mime.BEncoding.Encode("utf-8", strings.Join(run, " ")))
			run = run[:0]
		}
	}

	for _, w := range words {
		if isASCII(w) {
			flush()
			out = append(out, w)
			continue
		}
		run = append(run, w)
	}
	flush()

	return strings.Join(out, " ")
}

// Decode reverses Encode, and any other encoded words found in a body.
func Decode(body string) (string, error) {
	var dec mime.WordDecoder
	return dec.DecodeHeader(body)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
