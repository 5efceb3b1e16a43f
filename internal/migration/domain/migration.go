// Package domain defines the startup migration state machine that moves
// installs from the legacy manual-password scheme to the auto-managed
// database passphrase.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// State is the persisted migration state.
type State int

const (
	// NotMigrated means the migration flag is unset.
	NotMigrated State = iota
	// Migrated means a migration attempt completed. It is terminal.
	Migrated
)

func (s State) String() string {
	if s == Migrated {
		return "migrated"
	}
	return "not_migrated"
}

// Path is the action a migration attempt takes.
type Path int

const (
	// PathNone means the install is already migrated.
	PathNone Path = iota
	// PathAdoptLegacy makes the legacy password the database passphrase. The
	// database is already sealed with it (or absent) and is not re-encrypted.
	PathAdoptLegacy
	// PathEncryptPlain exports a plaintext database into a sealed one.
	PathEncryptPlain
	// PathFresh has nothing to convert; only the flag is set.
	PathFresh
	// PathAbort refuses to continue: the database is sealed but no password
	// that could open it is known.
	PathAbort
)

func (p Path) String() string {
	switch p {
	case PathNone:
		return "none"
	case PathAdoptLegacy:
		return "adopt_legacy"
	case PathEncryptPlain:
		return "encrypt_plain"
	case PathFresh:
		return "fresh"
	case PathAbort:
		return "abort"
	default:
		return "unknown"
	}
}

// Inputs is everything Plan looks at.
type Inputs struct {
	// Migrated is the persisted flag.
	Migrated bool
	// HasLegacyPassword reports a readable legacy password record.
	HasLegacyPassword bool
	// HasPassphrase reports a readable current database passphrase.
	HasPassphrase bool
	// DatabaseExists reports a non-empty database file.
	DatabaseExists bool
	// DatabaseSealed reports that the database file is in the sealed format.
	DatabaseSealed bool
}

// State returns the state the inputs describe.
func (in Inputs) State() State {
	if in.Migrated {
		return Migrated
	}
	return NotMigrated
}

// Plan is the pure transition function of the migration state machine.
func Plan(in Inputs) Path {
	switch {
	case in.Migrated:
		return PathNone
	case in.DatabaseExists && !in.DatabaseSealed:
		return PathEncryptPlain
	case in.HasLegacyPassword:
		return PathAdoptLegacy
	case in.DatabaseExists && !in.HasPassphrase:
		return PathAbort
	default:
		return PathFresh
	}
}

// Result describes one migration attempt.
type Result struct {
	AttemptID uuid.UUID
	Path      Path
	// Migrated is the flag value after the attempt.
	Migrated bool
	// Aborted is true when the attempt failed; Err then wraps ErrMigrationAborted.
	Aborted  bool
	Err      error
	Duration time.Duration
}
