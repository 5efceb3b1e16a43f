package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
)

func TestPassphraseGenerator_Generate(t *testing.T) {
	generator := NewPassphraseGenerator()

	t.Run("draws from the alphabet", func(t *testing.T) {
		passphrase, err := generator.Generate(cryptoDomain.PassphraseLength, cryptoDomain.PassphraseAlphabet)
		require.NoError(t, err)
		assert.Len(t, passphrase, 64)
		for _, r := range passphrase {
			assert.True(t, strings.ContainsRune(cryptoDomain.PassphraseAlphabet, r), "unexpected symbol %q", r)
		}
	})

	t.Run("alphabet has 73 distinct symbols", func(t *testing.T) {
		assert.Len(t, cryptoDomain.PassphraseAlphabet, 73)
		seen := map[rune]bool{}
		for _, r := range cryptoDomain.PassphraseAlphabet {
			assert.False(t, seen[r], "duplicate symbol %q", r)
			seen[r] = true
		}
	})

	t.Run("consecutive passphrases differ", func(t *testing.T) {
		a, err := generator.Generate(cryptoDomain.PassphraseLength, cryptoDomain.PassphraseAlphabet)
		require.NoError(t, err)
		b, err := generator.Generate(cryptoDomain.PassphraseLength, cryptoDomain.PassphraseAlphabet)
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("invalid length", func(t *testing.T) {
		_, err := generator.Generate(0, cryptoDomain.PassphraseAlphabet)
		assert.Error(t, err)
	})

	t.Run("invalid alphabet", func(t *testing.T) {
		_, err := generator.Generate(8, "a")
		assert.Error(t, err)
	})
}
