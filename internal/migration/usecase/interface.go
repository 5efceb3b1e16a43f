// Package usecase runs the one-shot startup migration.
package usecase

import (
	"context"

	migrationDomain "github.com/celox/clipvault/internal/migration/domain"
)

// AppLockAdopter turns a legacy unlock password into the app lock.
type AppLockAdopter interface {
	// AdoptLegacy enables the app lock with password as its verifier and the
	// carried-over biometric and generated-password flags.
	AdoptLegacy(ctx context.Context, password string, biometric, generated bool) error
}

// MigrationUseCase runs the startup migration.
type MigrationUseCase interface {
	// Inputs collects the current state the transition function is evaluated on.
	Inputs(ctx context.Context) (migrationDomain.Inputs, error)

	// Run performs at most one migration attempt. Failures are reported in the
	// Result and never leave the flag set.
	Run(ctx context.Context) migrationDomain.Result

	// Migrate runs the migration and returns the cause of an aborted attempt.
	Migrate(ctx context.Context) error
}
