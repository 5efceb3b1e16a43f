package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
)

// Cipher is a 256-bit AEAD with a random 12-byte nonce per message and the
// 16-byte tag appended to the ciphertext. It is safe for concurrent use.
type Cipher struct {
	alg  cryptoDomain.Algorithm
	aead cipher.AEAD
}

// NewAESGCM returns an AES-256-GCM cipher. The caller may wipe key once it returns.
func NewAESGCM(key []byte) (*Cipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &Cipher{alg: cryptoDomain.AESGCM, aead: aead}, nil
}

// NewChaCha20Poly1305 returns a ChaCha20-Poly1305 cipher, the choice for
// sealed databases on hosts without AES instructions.
func NewChaCha20Poly1305(key []byte) (*Cipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}
	return &Cipher{alg: cryptoDomain.ChaCha20, aead: aead}, nil
}

// Algorithm returns the construction c was built with.
func (c *Cipher) Algorithm() cryptoDomain.Algorithm {
	return c.alg
}

// Encrypt seals plaintext under a fresh nonce and returns ciphertext‖tag and the nonce.
func (c *Cipher) Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error) {
	nonce = make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, fmt.Errorf("failed to generate nonce: %w", err)
	}
	return c.aead.Seal(nil, nonce, plaintext, aad), nonce, nil
}

// Decrypt opens ciphertext. Any nonce, tag or AAD mismatch yields
// ErrDecryptionFailed and no plaintext.
func (c *Cipher) Decrypt(ciphertext, nonce, aad []byte) ([]byte, error) {
	if len(nonce) != c.aead.NonceSize() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}
