package field

import (
	"bytes"
	"errors"
	"strings"
)

// Folding limits. Lines longer than the preferred length are folded at
// whitespace where possible. Lines with no whitespace are only broken once they
// pass the forced length, which is the RFC 5322 hard limit.
const (
	DefaultFoldIndent          = " "
	DefaultPreferredFoldLength = 78
	DefaultForcedFoldLength    = 998

	DoNotFold = -1
)

var (
	// DefaultFoldEncoding folds at the RFC 5322 recommended line length.
	DefaultFoldEncoding = &FoldEncoding{
		indent:    DefaultFoldIndent,
		preferred: DefaultPreferredFoldLength,
		forced:    DefaultForcedFoldLength,
	}

	// DoNotFoldEncoding leaves every field on one line.
	DoNotFoldEncoding = &FoldEncoding{
		indent:    DefaultFoldIndent,
		preferred: DoNotFold,
		forced:    DoNotFold,
	}
)

var (
	ErrFoldIndentSpace    = errors.New("fold indent may only contain spaces and tabs")
	ErrFoldIndentTooShort = errors.New("fold indent must contain at least one space or tab")
	ErrFoldLengthTooShort = errors.New("fold lengths must be longer than the fold indent")
	ErrFoldLengthTooLong  = errors.New("preferred fold length must be no longer than the forced fold length")
)

// FoldEncoding describes how header fields are folded on output.
type FoldEncoding struct {
	indent    string
	preferred int
	forced    int
}

// NewFoldEncoding checks the settings and returns a FoldEncoding. Pass
// DoNotFold for both lengths to disable folding.
func NewFoldEncoding(indent string, preferred, forced int) (*FoldEncoding, error) {
	if indent == "" {
		return nil, ErrFoldIndentTooShort
	}
	if strings.Trim(indent, " \t") != "" {
		return nil, ErrFoldIndentSpace
	}

	if preferred == DoNotFold || forced == DoNotFold {
		return &FoldEncoding{indent: indent, preferred: DoNotFold, forced: DoNotFold}, nil
	}

	if preferred <= len(indent) || forced <= len(indent) {
		return nil, ErrFoldLengthTooShort
	}
	if preferred > forced {
		return nil, ErrFoldLengthTooLong
	}

	return &FoldEncoding{indent: indent, preferred: preferred, forced: forced}, nil
}

// Fold breaks a rendered "Name: body" line into folded lines separated by lb.
// The returned value does not end in lb. Whitespace at a fold point is kept as
// the start of the continuation line, so unfolding by deleting each lb
// restores the input exactly, except where a forced break had to insert the
// indent.
func (vf *FoldEncoding) Fold(line, lb []byte) []byte {
	if vf.preferred == DoNotFold || len(line) <= vf.preferred {
		return line
	}

	var out bytes.Buffer
	rest := line

	// the earliest fold point is the space after the colon
	minCut := bytes.IndexByte(line, ':') + 1
	if minCut < 1 {
		minCut = 1
	}

	for len(rest) > vf.preferred && minCut < len(rest) {
		cut := -1
		if minCut <= vf.preferred {
			if ix := bytes.LastIndexAny(rest[minCut:vf.preferred+1], " \t"); ix >= 0 {
				cut = ix + minCut
			}
		}
		if cut < 0 {
			if ix := bytes.IndexAny(rest[minCut:], " \t"); ix >= 0 && ix+minCut <= vf.forced {
				cut = ix + minCut
			}
		}

		if cut < 0 {
			if len(rest) <= vf.forced {
				break
			}
			out.Write(rest[:vf.forced])
			out.Write(lb)
			rest = append([]byte(vf.indent), rest[vf.forced:]...)
			minCut = len(vf.indent)
			continue
		}

		out.Write(rest[:cut])
		out.Write(lb)
		rest = rest[cut:]
		minCut = 1
	}

	out.Write(rest)
	return out.Bytes()
}
