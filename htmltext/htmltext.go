// Package htmltext renders HTML mail bodies as plain text for use as the
// text/plain alternative.
package htmltext

import (
	"strings"

	"github.com/jaytaylor/html2text"
)

// Renderer converts HTML to plain text. It reports false when no text could
// be produced.
type Renderer interface {
	PlainText(html string) (string, bool)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(html string) (string, bool)

// PlainText calls f.
func (f RendererFunc) PlainText(html string) (string, bool) {
	return f(html)
}

// HTML2Text renders with html2text.
type HTML2Text struct {
	// Links keeps link targets in the output, after the link text.
	Links bool

	// PrettyTables draws tables as ASCII grids.
	PrettyTables bool
}

// Default is the renderer used when none is configured.
var Default Renderer = HTML2Text{Links: true}

// PlainText renders html. Blank input or output, and parse failures, give
// false.
func (r HTML2Text) PlainText(html string) (string, bool) {
	if strings.TrimSpace(html) == "" {
		return "", false
	}

	txt, err := html2text.FromString(html, html2text.Options{
		OmitLinks:    !r.Links,
		PrettyTables: r.PrettyTables,
	})
	if err != nil || strings.TrimSpace(txt) == "" {
		return "", false
	}

	return txt, true
}
