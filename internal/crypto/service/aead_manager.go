package service

import (
	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
)

var cipherConstructors = map[cryptoDomain.Algorithm]func(key []byte) (*Cipher, error){
	cryptoDomain.AESGCM:   NewAESGCM,
	cryptoDomain.ChaCha20: NewChaCha20Poly1305,
}

// AEADManagerService builds ciphers by algorithm name.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns ErrUnsupportedAlgorithm for unknown names (matching is
// case-sensitive) and ErrInvalidKeySize unless key is 32 bytes.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	newCipher, ok := cipherConstructors[alg]
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	return newCipher(key)
}
