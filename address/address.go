// Package address turns the comma-separated address strings callers hand to
// the mail service into validated mailbox lists.
//
// The split is deliberately simple: entries are separated by every comma, with
// no understanding of quoted display names. Each entry is then checked with the
// strict RFC 5322 parser from go-addr.
package address

import (
	"fmt"
	"strings"

	"github.com/zostay/go-addr/pkg/addr"
)

// Error reports the entry that failed to parse.
type Error struct {
	Entry string
	Err   error
}

// Error returns a message naming the bad entry.
func (e *Error) Error() string {
	return fmt.Sprintf("invalid address %q: %v", e.Entry, e.Err)
}

// Unwrap returns the parse error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Parse splits s on commas and validates every non-blank entry. Blank input
// gives an empty list and no error. A single invalid entry fails the whole
// parse.
func Parse(s string) (addr.AddressList, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	entries := strings.Split(s, ",")
	al := make(addr.AddressList, 0, len(entries))
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		a, err := addr.ParseEmailAddress(entry)
		if err != nil {
			return nil, &Error{Entry: entry, Err: err}
		}
		al = append(al, a)
	}

	return al, nil
}

// Strings is Parse returning only the bare addr-spec of each entry.
func Strings(s string) ([]string, error) {
	al, err := Parse(s)
	if err != nil {
		return nil, err
	}
	return Bare(al), nil
}

// Bare returns the addr-spec of every address in the list.
func Bare(al addr.AddressList) []string {
	out := make([]string, 0, len(al))
	for _, a := range al {
		out = append(out, a.Address())
	}
	return out
}

// Join renders the list for use as a header field body.
func Join(al addr.AddressList) string {
	if len(al) == 0 {
		return ""
	}
	return al.String()
}

// Concat joins several lists into one, keeping order.
func Concat(lists ...addr.AddressList) addr.AddressList {
	n := 0
	for _, l := range lists {
		n += len(l)
	}

	out := make(addr.AddressList, 0, n)
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
