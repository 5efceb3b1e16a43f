// Package service provides the cryptographic primitives of the secure-storage core:
// AEAD ciphers, the keeper-backed master key keystore and the passphrase generator.
package service

import (
	"context"

	"github.com/awnumar/memguard"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// MasterKeyProvider hands out the unwrapped master key.
type MasterKeyProvider interface {
	// MasterKey returns the enclave sealing the 256-bit master key, creating it on first use.
	MasterKey(ctx context.Context) (*memguard.Enclave, error)
}

// PassphraseGenerator draws random passphrases.
type PassphraseGenerator interface {
	// Generate returns a passphrase of length characters drawn uniformly from alphabet.
	Generate(length int, alphabet string) (string, error)
}

// KeyValueStore persists opaque values by key.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}
