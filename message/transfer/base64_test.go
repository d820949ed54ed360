package transfer_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsend/message/transfer"
)

func TestNewBase64Encoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	enc := transfer.NewBase64Encoder(w)
	n, err := enc.Write([]byte("hello"))
	assert.Equal(t, 5, n)
	assert.NoError(t, err)
	require.NoError(t, enc.Close())

	assert.Equal(t, "aGVsbG8=", w.String())
}

func TestNewBase64Encoder_LineLength(t *testing.T) {
	t.Parallel()

	// 120 bytes encode to 160 characters: two full lines and a short one
	in := bytes.Repeat([]byte{0xff}, 120)

	w := &bytes.Buffer{}
	enc := transfer.NewBase64Encoder(w)
	_, err := enc.Write(in)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	out := w.String()
	assert.False(t, strings.HasSuffix(out, "\r\n"))

	lines := strings.Split(out, "\r\n")
	require.Len(t, lines, 3)
	assert.Len(t, lines[0], transfer.Base64LineLength)
	assert.Len(t, lines[1], transfer.Base64LineLength)
	assert.Len(t, lines[2], 160-2*transfer.Base64LineLength)
}

func TestNewBase64Encoder_ExactLine(t *testing.T) {
	t.Parallel()

	// 57 bytes encode to exactly one line, so no break is written
	w := &bytes.Buffer{}
	enc := transfer.NewBase64Encoder(w)
	_, err := enc.Write(bytes.Repeat([]byte("a"), 57))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	assert.Len(t, w.String(), transfer.Base64LineLength)
	assert.NotContains(t, w.String(), "\r\n")
}

func TestNewBase64Decoder(t *testing.T) {
	t.Parallel()

	in := bytes.Repeat([]byte("round trip "), 20)

	w := &bytes.Buffer{}
	enc := transfer.NewBase64Encoder(w)
	_, err := enc.Write(in)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	out, err := io.ReadAll(transfer.NewBase64Decoder(w))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
