package header_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zostay/go-addr/pkg/addr"

	"github.com/zostay/go-mailsend/message/header"
	"github.com/zostay/go-mailsend/message/header/param"
)

func TestHeader_SetAndGet(t *testing.T) {
	t.Parallel()

	var h header.Header
	h.SetSubject("hello")
	h.Set("X-Priority", "1")

	s, err := h.GetSubject()
	assert.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = h.Get("X-Missing")
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	h.Add("X-Priority", "2")
	v, err := h.Get("x-priority")
	assert.ErrorIs(t, err, header.ErrManyFields)
	assert.Equal(t, "1", v)

	h.Set("X-Priority", "3")
	vs, err := h.GetAll("X-Priority")
	assert.NoError(t, err)
	assert.Equal(t, []string{"3"}, vs)

	assert.Equal(t, "Subject: hello\r\nX-Priority: 3\r\n\r\n", h.String())
}

func TestHeader_SetKeepsPosition(t *testing.T) {
	t.Parallel()

	var h header.Header
	h.Set("A", "1")
	h.Set("B", "2")
	h.Set("C", "3")
	h.Set("B", "two")

	h.SetBreak(header.LF)
	assert.Equal(t, "A: 1\nB: two\nC: 3\n\n", h.String())

	h.Delete("B")
	assert.False(t, h.Has("B"))
	assert.Equal(t, 2, h.Len())
}

func TestHeader_ContentType(t *testing.T) {
	t.Parallel()

	var h header.Header
	err := h.SetCharset("UTF-8")
	assert.ErrorIs(t, err, header.ErrNoSuchField)

	h.SetMediaType("text/html")
	require.NoError(t, h.SetCharset("UTF-8"))

	mt, err := h.GetMediaType()
	assert.NoError(t, err)
	assert.Equal(t, "text/html", mt)

	cs, err := h.GetCharset()
	assert.NoError(t, err)
	assert.Equal(t, "UTF-8", cs)

	_, err = h.GetBoundary()
	assert.ErrorIs(t, err, header.ErrNoSuchFieldParameter)

	h.SetMediaType("text/plain")
	cs, err = h.GetCharset()
	assert.NoError(t, err)
	assert.Equal(t, "UTF-8", cs)

	ct, err := h.Get(header.ContentType)
	assert.NoError(t, err)
	assert.Equal(t, "text/plain; charset=UTF-8", ct)
}

func TestHeader_ContentDisposition(t *testing.T) {
	t.Parallel()

	var h header.Header
	h.SetContentDisposition(param.New("inline"))
	require.NoError(t, h.SetFilename("logo.png"))
	h.SetContentID("logo.png")

	p, err := h.GetPresentation()
	assert.NoError(t, err)
	assert.Equal(t, "inline", p)

	fn, err := h.GetFilename()
	assert.NoError(t, err)
	assert.Equal(t, "logo.png", fn)

	raw, err := h.Get(header.ContentID)
	assert.NoError(t, err)
	assert.Equal(t, "<logo.png>", raw)

	id, err := h.GetContentID()
	assert.NoError(t, err)
	assert.Equal(t, "logo.png", id)
}

func TestHeader_Date(t *testing.T) {
	t.Parallel()

	var h header.Header
	when := time.Date(2013, time.January, 1, 9, 5, 5, 0, time.UTC)
	h.SetDate(when)

	d, err := h.Get(header.Date)
	assert.NoError(t, err)
	assert.Equal(t, "Tue, 01 Jan 2013 09:05:05 +0000", d)

	got, err := h.GetDate()
	assert.NoError(t, err)
	assert.True(t, when.Equal(got))
}

func TestParseTime(t *testing.T) {
	t.Parallel()

	_, err := header.ParseTime("Tue, 01 Jan 2013 09:05:05 +0000")
	assert.NoError(t, err)

	_, err = header.ParseTime("2013-01-01 09:05:05")
	assert.NoError(t, err)

	_, err = header.ParseTime("not a date")
	assert.Error(t, err)
}

func TestHeader_AddressList(t *testing.T) {
	t.Parallel()

	al, err := addr.ParseEmailAddressList("a@example.com, b@example.com")
	require.NoError(t, err)

	var h header.Header
	h.SetTo(al)

	got, err := h.GetTo()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a@example.com", got[0].Address())
	assert.Equal(t, "b@example.com", got[1].Address())

	h.SetTo(nil)
	assert.False(t, h.Has(header.To))
}

func TestHeader_MessageID(t *testing.T) {
	t.Parallel()

	var h header.Header
	h.SetMessageID("abc@example.com")

	raw, _ := h.Get(header.MessageID)
	assert.Equal(t, "<abc@example.com>", raw)

	id, err := h.GetMessageID()
	assert.NoError(t, err)
	assert.Equal(t, "abc@example.com", id)
}

func TestHeader_Clone(t *testing.T) {
	t.Parallel()

	var h header.Header
	h.SetSubject("original")

	c := h.Clone()
	c.SetSubject("changed")

	s, _ := h.GetSubject()
	assert.Equal(t, "original", s)
}

func TestBase_WriteToFoldsAndEncodes(t *testing.T) {
	t.Parallel()

	var h header.Header
	h.SetSubject("Ünïcödé subject")

	out := h.String()
	assert.NotContains(t, out, "Ü")
	assert.Contains(t, out, "=?utf-8?b?")
	assert.Contains(t, out, " subject\r\n\r\n")
}
