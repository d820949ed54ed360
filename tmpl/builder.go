package tmpl

import (
	"context"
	"errors"
	"log/slog"

	"github.com/zostay/go-mailsend/mail"
)

// DefaultLanguage is tried when the requested language has no variant.
const DefaultLanguage = "en"

// Request asks for a mail built from a template.
type Request struct {
	// Reference is "Space.Page".
	Reference string

	From string
	To   string
	Cc   string
	Bcc  string

	// Language selects the variant. Empty means the default language.
	Language string

	// Params are extra variables. The standard variables replace params of
	// the same name.
	Params map[string]any
}

// Builder turns requests into mails.
type Builder struct {
	store           Store
	auth            Authorizer
	eval            Evaluator
	logger          *slog.Logger
	defaultLanguage string
}

// BuilderOption configures a Builder.
type BuilderOption func(b *Builder)

// WithEvaluator replaces the TextEvaluator.
func WithEvaluator(e Evaluator) BuilderOption {
	return func(b *Builder) { b.eval = e }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = l }
}

// WithDefaultLanguage replaces DefaultLanguage as the fallback.
func WithDefaultLanguage(lang string) BuilderOption {
	return func(b *Builder) { b.defaultLanguage = lang }
}

// NewBuilder returns a Builder reading from store and checking with auth.
func NewBuilder(store Store, auth Authorizer, opts ...BuilderOption) *Builder {
	b := &Builder{
		store:           store,
		auth:            auth,
		eval:            TextEvaluator{},
		logger:          slog.Default(),
		defaultLanguage: DefaultLanguage,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Vars returns the variables a request is evaluated against.
func (req Request) Vars() Vars {
	vars := make(Vars, len(req.Params)+7)
	for k, v := range req.Params {
		vars[k] = v
	}

	vars["from.name"] = req.From
	vars["from.address"] = req.From
	vars["to.name"] = req.To
	vars["to.address"] = req.To
	vars["to.cc"] = req.Cc
	vars["to.bcc"] = req.Bcc
	vars["bounce"] = req.From

	return vars
}

// Build resolves, evaluates and returns the mail. It has no side effects
// other than logging. Every error is a *ResolutionError.
func (b *Builder) Build(ctx context.Context, req Request) (*mail.Mail, error) {
	fail := func(err error) (*mail.Mail, error) {
		b.logger.Error("no mail built from template", "template", req.Reference, "error", err)
		return nil, &ResolutionError{Reference: req.Reference, Err: err}
	}

	if !b.auth.HasElevatedRights(ctx) {
		return fail(ErrNotAuthorized)
	}

	ref, err := ParseReference(req.Reference)
	if err != nil {
		return fail(err)
	}

	if !b.auth.CanView(ctx, ref) {
		return fail(ErrNotAuthorized)
	}

	v, err := b.variant(ctx, ref, req.Language)
	if err != nil {
		return fail(err)
	}

	vars := req.Vars()
	name := ref.String()

	subject, err := b.eval.Evaluate(ctx, name+"#subject", v.Subject, vars)
	if err != nil {
		return fail(err)
	}

	text, err := b.eval.Evaluate(ctx, name+"#text", v.Text, vars)
	if err != nil {
		return fail(err)
	}

	html, err := b.eval.Evaluate(ctx, name+"#html", v.HTML, vars)
	if err != nil {
		return fail(err)
	}

	m := mail.New(req.From, req.To, req.Cc, req.Bcc, subject)
	m.AddTextContent(text)
	if html != "" {
		m.AddHTMLContent(html)
	}

	return m, nil
}

func (b *Builder) variant(ctx context.Context, ref Reference, lang string) (Variant, error) {
	if lang == "" {
		lang = b.defaultLanguage
	}

	v, err := b.store.Variant(ctx, ref, lang)
	if err == nil || !errors.Is(err, ErrTemplateNotFound) || lang == b.defaultLanguage {
		return v, err
	}

	b.logger.Warn("no template variant for language, using default",
		"template", ref.String(),
		"language", lang,
		"default", b.defaultLanguage)

	return b.store.Variant(ctx, ref, b.defaultLanguage)
}
