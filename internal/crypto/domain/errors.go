package domain

import (
	"github.com/celox/clipvault/internal/errors"
)

// Cryptographic operation error definitions.
//
// These domain-specific errors wrap standard errors from internal/errors
// to provide context for cryptographic failures.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates the cryptographic key size is invalid.
	//
	// Master keys and derived keys must be exactly 32 bytes (256 bits).
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// This error can occur due to:
	//   - Wrong decryption key used (e.g., the keystore key was replaced)
	//   - Ciphertext has been tampered with (authentication failure)
	//   - Invalid or corrupt IV
	//
	// SecretStore.Retrieve degrades this error to "absent"; SecretStore.Inspect returns it.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrKeystoreUnavailable indicates no keystore tier could create or wrap the master key.
	//
	// This is fatal: nothing can be stored or retrieved without a master key.
	ErrKeystoreUnavailable = errors.Wrap(errors.ErrUnavailable, "keystore unavailable")

	// ErrMasterKeyUnwrap indicates a persisted master key exists but its keeper refused to unwrap it.
	ErrMasterKeyUnwrap = errors.Wrap(ErrDecryptionFailed, "master key unwrap failed")

	// ErrUnsupportedKeeper indicates a keystore URI with a scheme no keeper driver handles.
	ErrUnsupportedKeeper = errors.Wrap(errors.ErrInvalidInput, "unsupported keeper")

	// ErrSecretNotFound indicates no record is stored under the requested key.
	ErrSecretNotFound = errors.Wrap(errors.ErrNotFound, "secret not found")

	// ErrInvalidPassphrase indicates an empty passphrase was supplied.
	ErrInvalidPassphrase = errors.Wrap(errors.ErrInvalidInput, "invalid passphrase")
)
