package service

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
)

var algorithms = []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20}

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestAEADManagerService_CreateCipher(t *testing.T) {
	manager := NewAEADManager()
	key := randomKey(t)

	for _, alg := range algorithms {
		t.Run(string(alg), func(t *testing.T) {
			aead, err := manager.CreateCipher(key, alg)
			require.NoError(t, err)

			c, ok := aead.(*Cipher)
			require.True(t, ok)
			assert.Equal(t, alg, c.Algorithm())
		})
	}

	t.Run("unsupported algorithm", func(t *testing.T) {
		for _, name := range []string{"", "unsupported", "AES-GCM", "CHACHA20-POLY1305"} {
			_, err := manager.CreateCipher(key, cryptoDomain.Algorithm(name))
			assert.ErrorIs(t, err, cryptoDomain.ErrUnsupportedAlgorithm, name)
		}
	})

	t.Run("invalid key size", func(t *testing.T) {
		for _, size := range []int{0, 16, 31, 33, 64} {
			for _, alg := range algorithms {
				_, err := manager.CreateCipher(make([]byte, size), alg)
				assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize, "%s/%d", alg, size)
			}
		}
		_, err := manager.CreateCipher(nil, cryptoDomain.AESGCM)
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestCipher_RoundTrip(t *testing.T) {
	key := randomKey(t)

	for _, alg := range algorithms {
		t.Run(string(alg), func(t *testing.T) {
			c, err := NewAEADManager().CreateCipher(key, alg)
			require.NoError(t, err)

			rapid.Check(t, func(t *rapid.T) {
				plaintext := rapid.SliceOf(rapid.Byte()).Draw(t, "plaintext")
				aad := rapid.SliceOf(rapid.Byte()).Draw(t, "aad")

				ciphertext, nonce, err := c.Encrypt(plaintext, aad)
				if err != nil {
					t.Fatalf("encrypt: %v", err)
				}
				if len(nonce) != cryptoDomain.NonceSize {
					t.Fatalf("nonce length %d", len(nonce))
				}
				if len(ciphertext) != len(plaintext)+16 {
					t.Fatalf("ciphertext length %d for %d bytes", len(ciphertext), len(plaintext))
				}

				got, err := c.Decrypt(ciphertext, nonce, aad)
				if err != nil {
					t.Fatalf("decrypt: %v", err)
				}
				if !bytes.Equal(got, plaintext) {
					t.Fatalf("round trip mismatch")
				}
			})
		})
	}
}

func TestCipher_FreshNonces(t *testing.T) {
	c, err := NewAESGCM(randomKey(t))
	require.NoError(t, err)

	ct1, nonce1, err := c.Encrypt([]byte("same clip"), nil)
	require.NoError(t, err)
	ct2, nonce2, err := c.Encrypt([]byte("same clip"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, nonce1, nonce2)
	assert.NotEqual(t, ct1, ct2)
}

func TestCipher_Decrypt_Failures(t *testing.T) {
	key := randomKey(t)

	for _, alg := range algorithms {
		t.Run(string(alg), func(t *testing.T) {
			c, err := NewAEADManager().CreateCipher(key, alg)
			require.NoError(t, err)

			ciphertext, nonce, err := c.Encrypt([]byte("clip"), []byte("db_passphrase"))
			require.NoError(t, err)

			tampered := bytes.Clone(ciphertext)
			tampered[0] ^= 0x01
			_, err = c.Decrypt(tampered, nonce, []byte("db_passphrase"))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

			_, err = c.Decrypt(ciphertext, nonce, []byte("app_lock_verifier"))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed, "record bound to another key")

			_, err = c.Decrypt(ciphertext, nonce[:4], []byte("db_passphrase"))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)

			other, err := NewAEADManager().CreateCipher(randomKey(t), alg)
			require.NoError(t, err)
			_, err = other.Decrypt(ciphertext, nonce, []byte("db_passphrase"))
			assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
		})
	}
}

func TestCipher_AlgorithmsAreNotInterchangeable(t *testing.T) {
	key := randomKey(t)
	aesCipher, err := NewAESGCM(key)
	require.NoError(t, err)
	chacha, err := NewChaCha20Poly1305(key)
	require.NoError(t, err)

	ciphertext, nonce, err := aesCipher.Encrypt([]byte("clip"), nil)
	require.NoError(t, err)

	_, err = chacha.Decrypt(ciphertext, nonce, nil)
	assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
}
