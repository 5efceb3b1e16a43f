package domain

import (
	"github.com/celox/clipvault/internal/errors"
)

// Migration errors.
var (
	// ErrMigrationAborted wraps every failed attempt. The migration flag stays false.
	ErrMigrationAborted = errors.New("migration aborted")

	// ErrLegacyPasswordMissing indicates a sealed database with neither a legacy password nor a passphrase.
	ErrLegacyPasswordMissing = errors.Wrap(errors.ErrConflict, "sealed database without a known password")

	// ErrPassphraseMismatch indicates a sealed database that neither the legacy password nor the current passphrase opens.
	ErrPassphraseMismatch = errors.Wrap(errors.ErrConflict, "sealed database does not open with any known password")
)
