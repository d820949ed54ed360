package field_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-mailsend/message/header/field"
)

func TestFoldEncoding_Fold(t *testing.T) {
	t.Parallel()

	line := []byte("Subject: " + strings.Repeat("quarterly results ", 10) + "end")
	folded := field.DefaultFoldEncoding.Fold(line, []byte("\r\n"))

	for _, l := range bytes.Split(folded, []byte("\r\n")) {
		assert.LessOrEqual(t, len(l), field.DefaultPreferredFoldLength)
	}
	assert.Equal(t, line, bytes.ReplaceAll(folded, []byte("\r\n"), nil))
	assert.True(t, bytes.HasPrefix(folded, []byte("Subject: quarterly")))
}

func TestFoldEncoding_FoldShort(t *testing.T) {
	t.Parallel()

	line := []byte("To: a@example.com")
	assert.Equal(t, line, field.DefaultFoldEncoding.Fold(line, []byte("\r\n")))
	assert.Equal(t, line, field.DoNotFoldEncoding.Fold(line, []byte("\r\n")))
}

func TestFoldEncoding_FoldLongWord(t *testing.T) {
	t.Parallel()

	vf, err := field.NewFoldEncoding(" ", 20, 30)
	require.NoError(t, err)

	line := []byte("X-Token: " + strings.Repeat("a", 50))
	folded := vf.Fold(line, []byte("\n"))
	lines := strings.Split(string(folded), "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "X-Token:", lines[0])
	assert.Len(t, lines[1], 30)
	assert.True(t, strings.HasPrefix(lines[2], " a"))
}

func TestNewFoldEncoding(t *testing.T) {
	t.Parallel()

	_, err := field.NewFoldEncoding("", 78, 998)
	assert.ErrorIs(t, err, field.ErrFoldIndentTooShort)

	_, err = field.NewFoldEncoding("x", 78, 998)
	assert.ErrorIs(t, err, field.ErrFoldIndentSpace)

	_, err = field.NewFoldEncoding(" ", 100, 50)
	assert.ErrorIs(t, err, field.ErrFoldLengthTooLong)

	vf, err := field.NewFoldEncoding("\t", field.DoNotFold, 998)
	assert.NoError(t, err)
	long := []byte("Subject: " + strings.Repeat("x ", 100))
	assert.Equal(t, long, vf.Fold(long, []byte("\r\n")))
}
