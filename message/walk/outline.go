package walk

import (
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-mailsend/message"
	"github.com/zostay/go-mailsend/message/header"
)

// Outline writes an indented summary of the tree, one line per part, giving
// the media type and, where set, the disposition, filename and Content-id.
// Bodies are not read.
func Outline(w io.Writer, msg message.Part) error {
	return AndProcess(func(part message.Part, parents []message.Part) error {
		_, err := fmt.Fprintf(w, "%s%s\n", strings.Repeat("  ", len(parents)), describe(part.GetHeader()))
		return err
	}, msg)
}

func describe(h *header.Header) string {
	mt, err := h.GetMediaType()
	if err != nil {
		mt = "(no content type)"
	}

	desc := []string{mt}
	if p, err := h.GetPresentation(); err == nil {
		desc = append(desc, p)
	}
	if fn, err := h.GetFilename(); err == nil {
		desc = append(desc, "filename="+fn)
	}
	if id, err := h.GetContentID(); err == nil {
		desc = append(desc, "cid="+id)
	}

	return strings.Join(desc, " ")
}
