package header

// Break is the line break placed between header fields and after the header.
type Break string

// Line breaks. Outgoing mail uses CRLF unless told otherwise.
const (
	Meh  Break = ""
	CRLF Break = "\x0d\x0a"
	LF   Break = "\x0a"
	CR   Break = "\x0d"
	LFCR Break = "\x0a\x0d"
)

// String returns the break as a string.
func (b Break) String() string {
	return string(b)
}

// Bytes returns the break as a slice of bytes.
func (b Break) Bytes() []byte {
	return []byte(b)
}
