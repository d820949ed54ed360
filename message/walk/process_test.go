package walk_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailsend/message"
	"github.com/zostay/go-mailsend/message/header/param"
	"github.com/zostay/go-mailsend/message/walk"
)

func leaf(mt string) *message.Opaque {
	m := message.NewOpaque(nil, strings.NewReader("content"))
	m.SetMediaType(mt)
	return m
}

func makeTree() message.Part {
	img := leaf("image/png")
	img.SetContentDisposition(param.New("inline", map[string]string{param.Filename: "logo.png"}))
	img.SetContentID("logo.png")

	return message.MultipartMixed(
		message.MultipartAlternative(
			leaf("text/plain"),
			message.MultipartRelated(leaf("text/html"), img),
		),
		leaf("application/pdf"),
	)
}

func TestAndProcess(t *testing.T) {
	t.Parallel()

	var seen []string
	err := walk.AndProcess(func(part message.Part, parents []message.Part) error {
		mt, _ := part.GetHeader().GetMediaType()
		seen = append(seen, strings.Repeat(">", len(parents))+mt)
		return nil
	}, makeTree())

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"multipart/mixed",
		">multipart/alternative",
		">>text/plain",
		">>multipart/related",
		">>>text/html",
		">>>image/png",
		">application/pdf",
	}, seen)
}

func TestAndProcess_Error(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	count := 0
	err := walk.AndProcess(func(part message.Part, _ []message.Part) error {
		count++
		if !part.IsMultipart() {
			return boom
		}
		return nil
	}, makeTree())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, count)
}

func TestAndProcess_SkipChildren(t *testing.T) {
	t.Parallel()

	var seen []string
	err := walk.AndProcess(func(part message.Part, _ []message.Part) error {
		mt, _ := part.GetHeader().GetMediaType()
		seen = append(seen, mt)
		if mt == message.MediaTypeAlternative {
			return walk.ErrSkipChildren
		}
		return nil
	}, makeTree())

	assert.NoError(t, err)
	assert.Equal(t, []string{"multipart/mixed", "multipart/alternative", "application/pdf"}, seen)
}

func TestLeaves(t *testing.T) {
	t.Parallel()

	leaves := walk.Leaves(makeTree())
	assert.Len(t, leaves, 4)
	for _, l := range leaves {
		assert.False(t, l.IsMultipart())
	}
}

func TestOutline(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := walk.Outline(out, makeTree())
	assert.NoError(t, err)
	assert.Equal(t, `multipart/mixed
  multipart/alternative
    text/plain
    multipart/related
      text/html
      image/png inline filename=logo.png cid=logo.png
  application/pdf
`, out.String())
}
