package tmpl_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsend/tmpl"
)

const templatesYAML = `
templates:
  Mail.Welcome:
    - language: en
      subject: 'Welcome {{var "to.name"}}'
      text: 'Hello, your code is {{.code}}.'
      html: '<p>Hello, your code is <b>{{.code}}</b>.</p>'
    - language: fr
      subject: 'Bienvenue {{var "to.name"}}'
      text: 'Bonjour, votre code est {{.code}}.'
  Mail.Plain:
    - subject: Plain
      text: Just text.
`

func TestLoadYAML(t *testing.T) {
	t.Parallel()

	s, err := tmpl.LoadYAML(strings.NewReader(templatesYAML))
	require.NoError(t, err)

	ctx := context.Background()
	welcome := tmpl.Reference{Space: "Mail", Page: "Welcome"}

	v, err := s.Variant(ctx, welcome, "fr")
	require.NoError(t, err)
	assert.Equal(t, `Bienvenue {{var "to.name"}}`, v.Subject)
	assert.Empty(t, v.HTML)

	v, err = s.Variant(ctx, tmpl.Reference{Space: "Mail", Page: "Plain"}, tmpl.DefaultLanguage)
	require.NoError(t, err)
	assert.Equal(t, "Just text.", v.Text)

	_, err = s.Variant(ctx, welcome, "de")
	assert.ErrorIs(t, err, tmpl.ErrTemplateNotFound)
}

func TestLoadYAML_BadReference(t *testing.T) {
	t.Parallel()

	_, err := tmpl.LoadYAML(strings.NewReader("templates:\n  Welcome:\n    - text: hi\n"))
	assert.ErrorIs(t, err, tmpl.ErrInvalidReference)
}

func TestLoadYAMLFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "templates.yaml")
	require.NoError(t, os.WriteFile(path, []byte(templatesYAML), 0o600))

	s, err := tmpl.LoadYAMLFile(path)
	require.NoError(t, err)

	_, err = s.Variant(context.Background(), tmpl.Reference{Space: "Mail", Page: "Welcome"}, "en")
	assert.NoError(t, err)

	_, err = tmpl.LoadYAMLFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
