package domain

import (
	"github.com/celox/clipvault/internal/errors"
)

// App lock error definitions.
var (
	// ErrNotEnabled indicates an operation that needs an enabled app lock.
	ErrNotEnabled = errors.Wrap(errors.ErrConflict, "app lock is not enabled")

	// ErrAlreadyEnabled indicates enabling an app lock that is already enabled.
	ErrAlreadyEnabled = errors.Wrap(errors.ErrConflict, "app lock is already enabled")

	// ErrPasswordTooShort indicates a password below MinPasswordLength characters.
	ErrPasswordTooShort = errors.Wrap(errors.ErrInvalidInput, "password must have at least 4 characters")

	// ErrEmptyPassword indicates an empty password.
	ErrEmptyPassword = errors.Wrap(errors.ErrInvalidInput, "password is required")

	// ErrWrongPassword indicates a password that does not match the verifier.
	ErrWrongPassword = errors.Wrap(errors.ErrUnauthorized, "wrong app lock password")

	// ErrLockedOut indicates too many failed attempts; unlocking is refused until the lockout expires.
	ErrLockedOut = errors.Wrap(errors.ErrLocked, "app lock is temporarily locked")

	// ErrVerifierUnavailable indicates the stored verifier is missing or cannot be decrypted.
	ErrVerifierUnavailable = errors.Wrap(errors.ErrConflict, "app lock verifier unavailable")
)
