package compose

import (
	"bytes"
	"log/slog"
	"strings"

	"github.com/zostay/go-mailsend/htmltext"
	"github.com/zostay/go-mailsend/mail"
	"github.com/zostay/go-mailsend/message"
	"github.com/zostay/go-mailsend/message/header"
	"github.com/zostay/go-mailsend/message/header/param"
	"github.com/zostay/go-mailsend/message/transfer"
)

// DefaultCharset is the charset declared on text leaves.
const DefaultCharset = "UTF-8"

// Assembler builds MIME trees from mails. It holds no per-mail state and may
// be shared.
type Assembler struct {
	charset string
	text    htmltext.Renderer
	stager  Stager
	logger  *slog.Logger
	lbr     header.Break
}

// Option configures an Assembler.
type Option func(a *Assembler)

// WithCharset sets the charset text bodies are encoded in. Bodies that cannot
// be represented in it are sent as UTF-8 instead.
func WithCharset(cs string) Option {
	return func(a *Assembler) { a.charset = cs }
}

// WithTextRenderer sets the renderer that produces the plain text alternative
// of a lone HTML part.
func WithTextRenderer(r htmltext.Renderer) Option {
	return func(a *Assembler) { a.text = r }
}

// WithStager sets where attachment payloads are held while the message is
// written. The default keeps them in memory.
func WithStager(s Stager) Option {
	return func(a *Assembler) { a.stager = s }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *Assembler) { a.logger = l }
}

// WithBreak sets the line break used by every header in the tree.
func WithBreak(lbr header.Break) Option {
	return func(a *Assembler) { a.lbr = lbr }
}

// New returns an Assembler.
func New(opts ...Option) *Assembler {
	a := &Assembler{
		charset: DefaultCharset,
		text:    htmltext.Default,
		stager:  MemoryStager{},
		logger:  slog.Default(),
		lbr:     header.CRLF,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assembly is the result of assembling one mail.
type Assembly struct {
	// Body is the root of the tree. Top level header fields such as From and
	// Subject are added to its header by the caller.
	Body message.Part

	// Embedded lists the attachments that were placed next to the HTML that
	// refers to them, in the order they were resolved.
	Embedded []string

	// Warnings holds the problems that degraded the message without stopping
	// it, such as a *StagingError or a *CharsetError.
	Warnings []error

	staging Staging
}

// Close releases any staged attachment storage. It is safe to call more than
// once.
func (as *Assembly) Close() error {
	if as.staging == nil {
		return nil
	}
	s := as.staging
	as.staging = nil
	return s.Release()
}

// mediaType strips parameters and case from a content type.
func mediaType(t string) string {
	mt, _, _ := strings.Cut(t, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func isHTML(t string) bool {
	return mediaType(t) == mail.TypeHTML
}

// Assemble builds the tree for m. It fails only when m has no content. The
// caller must Close the Assembly once the body has been written.
func (a *Assembler) Assemble(m *mail.Mail) (*Assembly, error) {
	contents := a.alternatives(m.Contents())
	if len(contents) == 0 {
		return nil, &mail.ValidationError{Err: mail.ErrNoContent}
	}

	staging, err := a.stager.Open()
	if err != nil {
		a.logger.Warn("attachment staging unavailable", "error", err)
		staging = brokenStaging{err: err}
	}

	as := &Assembly{staging: staging}
	attachments := m.Attachments()
	consumed := make(map[string]bool)

	alt := message.MultipartAlternative()
	alt.SetBreak(a.lbr)
	for _, c := range contents {
		leaf := a.textLeaf(c, as)
		if !isHTML(c.Type) {
			alt.Add(leaf)
			continue
		}

		var images []message.Part
		for _, name := range ContentIDs(c.Body) {
			ix := findAttachment(attachments, name)
			if ix < 0 {
				a.logger.Debug("unresolved inline image", "cid", name)
				continue
			}

			images = append(images, a.attachmentLeaf(attachments[ix], staging, as))
			if !consumed[name] {
				consumed[name] = true
				as.Embedded = append(as.Embedded, name)
			}
		}

		if len(images) == 0 {
			alt.Add(leaf)
			continue
		}

		rel := message.MultipartRelated(append([]message.Part{leaf}, images...)...)
		rel.SetBreak(a.lbr)
		alt.Add(rel)
	}

	// every attachment sharing an embedded name stays out of the group, even
	// though only the first one was embedded
	var group []message.Part
	for _, att := range attachments {
		if !consumed[att.Filename] {
			group = append(group, a.attachmentLeaf(att, staging, as))
		}
	}

	if len(group) == 0 {
		as.Body = alt
		return as, nil
	}

	mixed := message.MultipartMixed(group...)
	mixed.SetBreak(a.lbr)

	outer := message.MultipartMixed(alt, mixed)
	outer.SetBreak(a.lbr)
	as.Body = outer

	return as, nil
}

// alternatives applies the single part rule: a lone HTML part gains a plain
// text rendering in front of it.
func (a *Assembler) alternatives(contents []mail.Content) []mail.Content {
	if len(contents) != 1 || !isHTML(contents[0].Type) {
		return contents
	}

	txt, ok := a.text.PlainText(contents[0].Body)
	if !ok {
		a.logger.Info("no plain text rendering of html part, sending html alone")
		return contents
	}

	return []mail.Content{
		{Type: mail.TypePlain, Body: txt},
		contents[0],
	}
}

// findAttachment returns the index of the first attachment named name.
func findAttachment(atts []mail.Attachment, name string) int {
	for i, att := range atts {
		if att.Filename == name {
			return i
		}
	}
	return -1
}

// textLeaf builds an inline quoted-printable leaf for a content part.
func (a *Assembler) textLeaf(c mail.Content, as *Assembly) message.Part {
	body, cs, err := encodeText(c.Body, a.charset)
	if err != nil {
		a.logger.Warn("falling back to UTF-8", "charset", a.charset, "error", err)
		as.Warnings = append(as.Warnings, err)
	}

	buf := &message.Buffer{}
	buf.SetBreak(a.lbr)
	buf.SetContentType(param.New(mediaType(c.Type), map[string]string{param.Charset: cs}))
	buf.SetPresentation("inline")
	buf.SetTransferEncoding(transfer.QuotedPrintable)
	buf.SetSingle()
	_, _ = buf.Write(body)

	leaf, _ := buf.Opaque()
	return leaf
}

// attachmentLeaf builds an inline base64 leaf for an attachment. A staging
// failure gives an empty placeholder leaf and a warning.
func (a *Assembler) attachmentLeaf(att mail.Attachment, staging Staging, as *Assembly) message.Part {
	r, err := staging.Stage(att.Filename, att.Content)
	if err != nil {
		serr := &StagingError{Filename: att.Filename, Err: err}
		a.logger.Warn("attachment replaced by empty part", "filename", att.Filename, "error", err)
		as.Warnings = append(as.Warnings, serr)

		leaf := &message.Opaque{}
		leaf.SetBreak(a.lbr)
		return leaf
	}

	h := &header.Header{}
	h.SetBreak(a.lbr)
	h.SetMediaType(TypeByFilename(att.Filename))
	h.SetContentDisposition(param.New("inline", map[string]string{param.Filename: att.Filename}))
	h.SetContentID(att.Filename)
	h.SetTransferEncoding(transfer.Base64)

	return message.NewOpaque(h, r)
}

// Bytes writes the whole tree into memory. It is a convenience for tests and
// previews. The Assembly can not be written again afterwards.
func (as *Assembly) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	_, err := as.Body.WriteTo(&buf)
	return buf.Bytes(), err
}
