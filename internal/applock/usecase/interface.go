// Package usecase implements the app lock: enabling and disabling it,
// password changes, and unlocking with a persisted failed-attempt lockout.
package usecase

import (
	"context"

	applockDomain "github.com/celox/clipvault/internal/applock/domain"
)

// AppLockUseCase defines the interface for app lock business logic.
type AppLockUseCase interface {
	// Enable turns the lock on with a user-chosen password.
	Enable(ctx context.Context, password string, biometric bool) error

	// EnableGenerated turns the lock on with a random password and returns it.
	EnableGenerated(ctx context.Context, biometric bool) (string, error)

	// Disable verifies password, then removes the verifier and turns the lock off.
	Disable(ctx context.Context, password string) error

	// ChangePassword replaces the password once oldPassword verifies.
	ChangePassword(ctx context.Context, oldPassword, newPassword string) error

	// Unlock verifies password. Failures count toward the lockout.
	Unlock(ctx context.Context, password string) error

	// SetBiometric stores the biometric preference of an enabled lock.
	SetBiometric(ctx context.Context, enabled bool) error

	// Status returns the current lock state.
	Status(ctx context.Context) (*applockDomain.Status, error)

	// AdoptLegacy enables the lock with the password of the legacy scheme,
	// carrying over its biometric and generated flags.
	AdoptLegacy(ctx context.Context, password string, biometric, generated bool) error
}
