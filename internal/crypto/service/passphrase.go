package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

type passphraseGenerator struct{}

// NewPassphraseGenerator creates a PassphraseGenerator backed by crypto/rand.
func NewPassphraseGenerator() PassphraseGenerator {
	return &passphraseGenerator{}
}

// Generate draws length characters uniformly from alphabet.
func (g *passphraseGenerator) Generate(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("passphrase length must be positive, got %d", length)
	}
	if len(alphabet) < 2 {
		return "", fmt.Errorf("passphrase alphabet must contain at least 2 symbols")
	}

	limit := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to draw passphrase symbol: %w", err)
		}
		out[i] = alphabet[n.Int64()]
	}
	return string(out), nil
}
