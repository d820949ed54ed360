package message_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-mailsend/message"
	"github.com/zostay/go-mailsend/message/header"
	"github.com/zostay/go-mailsend/message/transfer"
)

func TestOpaque(t *testing.T) {
	t.Parallel()

	m := makePart()

	assert.Equal(t, &m.Header, m.GetHeader())
	assert.Nil(t, m.GetParts())
	assert.NotNil(t, m.GetReader())
	assert.False(t, m.IsMultipart())
	assert.False(t, m.IsEncoded())
}

func TestOpaque_WriteToEncodes(t *testing.T) {
	t.Parallel()

	h := &header.Header{}
	h.SetMediaType("text/plain")
	h.SetTransferEncoding(transfer.QuotedPrintable)

	m := message.NewOpaque(h, strings.NewReader("I ❤ email!"))

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(out.Len()), n)
	assert.Equal(t,
		"Content-type: text/plain\r\n"+
			"Content-transfer-encoding: quoted-printable\r\n"+
			"\r\n"+
			"I =E2=9D=A4 email!",
		out.String())
}

func TestOpaque_WriteToEmpty(t *testing.T) {
	t.Parallel()

	m := &message.Opaque{}

	out := &bytes.Buffer{}
	n, err := m.WriteTo(out)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, "\r\n", out.String())
}

func TestOpaque_Base64RoundTrip(t *testing.T) {
	t.Parallel()

	payload := bytes.Repeat([]byte{0x00, 0xff, 0x10, 0x80}, 100)

	h := &header.Header{}
	h.SetTransferEncoding(transfer.Base64)
	m := message.NewOpaque(h, bytes.NewReader(payload))

	out := &bytes.Buffer{}
	_, err := m.WriteTo(out)
	assert.NoError(t, err)

	_, body, found := strings.Cut(out.String(), "\r\n\r\n")
	assert.True(t, found)
	for _, line := range strings.Split(body, "\r\n") {
		assert.LessOrEqual(t, len(line), transfer.Base64LineLength)
	}

	dec, err := io.ReadAll(transfer.ApplyTransferDecoding(h, strings.NewReader(body)))
	assert.NoError(t, err)
	assert.Equal(t, payload, dec)
}
