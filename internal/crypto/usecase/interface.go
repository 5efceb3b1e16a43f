// Package usecase implements the secret store and the database passphrase lifecycle.
//
// SecretStore envelope-encrypts short secrets (database passphrase, app lock
// verifier, legacy password) with the keystore master key and persists them in
// the preference namespace. PassphraseLifecycle owns the database passphrase
// and the flags that drive the legacy migration.
package usecase

import (
	"context"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
)

// PreferenceRepository defines the preference namespace.
//
// Implementations must make each call atomic; Update groups several writes
// into one atomic step.
//
// Available implementations:
//   - BoltPreferenceRepository: single bbolt bucket in prefs.db
type PreferenceRepository interface {
	// Get returns the raw value stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Exists reports whether key holds a value.
	Exists(ctx context.Context, key string) (bool, error)

	// GetBool returns the boolean under key, or def when absent.
	GetBool(ctx context.Context, key string, def bool) (bool, error)

	// PutBool stores a boolean under key.
	PutBool(ctx context.Context, key string, value bool) error

	// GetInt returns the integer under key, or def when absent.
	GetInt(ctx context.Context, key string, def int) (int, error)

	// PutInt stores an integer under key.
	PutInt(ctx context.Context, key string, value int) error

	// Update applies fn in a single atomic write.
	Update(ctx context.Context, fn func(w cryptoDomain.PreferenceWriter) error) error
}

// SecretStore envelope-encrypts short secrets under the master key.
type SecretStore interface {
	// Store encrypts plaintext with AES-256-GCM under a fresh IV and overwrites key.
	//
	// The record is written atomically and the plaintext byte copy is zeroed.
	Store(ctx context.Context, key, plaintext string) error

	// Retrieve returns the plaintext stored under key.
	//
	// An absent record and a record that fails to decrypt both yield ok=false
	// with a nil error; the latter is logged at warn level. Only storage
	// failures and ErrKeystoreUnavailable are returned as errors.
	Retrieve(ctx context.Context, key string) (plaintext string, ok bool, err error)

	// Inspect behaves like Retrieve but reports ErrSecretNotFound and
	// ErrDecryptionFailed as distinct errors.
	Inspect(ctx context.Context, key string) (string, error)

	// Exists reports whether a record (readable or not) is stored under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Clear removes the record. Idempotent.
	Clear(ctx context.Context, key string) error
}

// PassphraseLifecycle owns the database passphrase and the migration flags.
type PassphraseLifecycle interface {
	// GetOrCreate returns the current passphrase, generating and storing a
	// 64-character random one if none exists. Concurrent first calls observe
	// the same passphrase.
	GetOrCreate(ctx context.Context) (string, error)

	// Current returns the stored passphrase without creating one.
	Current(ctx context.Context) (string, bool, error)

	// Set overwrites the current passphrase.
	Set(ctx context.Context, passphrase string) error

	// IsMigrated reports the persisted migration flag.
	IsMigrated(ctx context.Context) (bool, error)

	// MarkMigrated sets the migration flag. It never goes back to false.
	MarkMigrated(ctx context.Context) error

	// HasLegacyPassword reports whether a legacy password record exists.
	HasLegacyPassword(ctx context.Context) (bool, error)

	// LegacyPassword returns the decrypted legacy password.
	LegacyPassword(ctx context.Context) (string, bool, error)

	// LegacyBiometric returns the legacy biometric flag (default true).
	LegacyBiometric(ctx context.Context) (bool, error)

	// LegacyPasswordGenerated returns the legacy generated-password flag (default false).
	LegacyPasswordGenerated(ctx context.Context) (bool, error)

	// ClearLegacy removes every legacy record.
	ClearLegacy(ctx context.Context) error
}
