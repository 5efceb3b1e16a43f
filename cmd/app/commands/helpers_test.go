package commands

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadLine(t *testing.T) {
	r := strings.NewReader("first\r\nsecond\nlast")

	line, err := readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "first", line)

	line, err = readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "second", line)

	line, err = readLine(r)
	require.NoError(t, err)
	assert.Equal(t, "last", line)

	_, err = readLine(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptLine(t *testing.T) {
	t.Run("given-value-skips-prompt", func(t *testing.T) {
		var out bytes.Buffer
		value, err := promptLine(IOTuple{Writer: &out}, "given", "Password: ")

		require.NoError(t, err)
		assert.Equal(t, "given", value)
		assert.Empty(t, out.String())
	})

	t.Run("prompts", func(t *testing.T) {
		var out bytes.Buffer
		value, err := promptLine(IOTuple{Reader: strings.NewReader("typed\n"), Writer: &out}, "", "Password: ")

		require.NoError(t, err)
		assert.Equal(t, "typed", value)
		assert.Equal(t, "Password: ", out.String())
	})

	t.Run("no-input", func(t *testing.T) {
		_, err := promptLine(IOTuple{Reader: strings.NewReader(""), Writer: io.Discard}, "", "Password: ")
		require.Error(t, err)
	})
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("json"))
	assert.Error(t, validateFormat("xml"))
}
