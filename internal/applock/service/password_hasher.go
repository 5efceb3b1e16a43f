// Package service provides the app lock password verifier.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/celox/clipvault/internal/errors"
)

// PasswordHasher hashes app lock passwords and verifies them against a stored hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// argon2Hasher implements PasswordHasher using Argon2id.
type argon2Hasher struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordHasher creates an Argon2id hasher with the Moderate policy.
func NewPasswordHasher() PasswordHasher {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyModerate))
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}
	return &argon2Hasher{hasher: hasher}
}

// NewInteractivePasswordHasher creates an Argon2id hasher with the cheaper Interactive policy.
func NewInteractivePasswordHasher() PasswordHasher {
	hasher, err := pwdhash.New(pwdhash.WithPolicy(pwdhash.PolicyInteractive))
	if err != nil {
		panic(err)
	}
	return &argon2Hasher{hasher: hasher}
}

// Hash returns the encoded Argon2id hash of password.
func (a *argon2Hasher) Hash(password string) (string, error) {
	hash, err := a.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify performs a constant-time comparison of password against hash.
func (a *argon2Hasher) Verify(password, hash string) bool {
	ok, err := a.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}
