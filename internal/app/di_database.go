package app

import (
	"context"
	"fmt"

	clipsRepository "github.com/celox/clipvault/internal/clips/repository"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	"github.com/celox/clipvault/internal/database"
	migrationUseCase "github.com/celox/clipvault/internal/migration/usecase"
)

// DatabaseEngine returns the SQLite engine that opens plain and sealed database files.
func (c *Container) DatabaseEngine() *database.SQLiteEngine {
	c.engineInit.Do(func() {
		c.engine = database.NewSQLiteEngine(database.EngineConfig{
			KDFIterations: c.config.DBKDFIterations,
			Algorithm:     cryptoDomain.Algorithm(c.config.DBCipher),
		}, c.AEADManager())
	})
	return c.engine
}

// MigrationUseCase returns the startup migration.
func (c *Container) MigrationUseCase() (migrationUseCase.MigrationUseCase, error) {
	var err error
	c.migrationUseCaseInit.Do(func() {
		c.migrationUseCase, err = c.initMigrationUseCase()
		if err != nil {
			c.initErrors["migrationUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["migrationUseCase"]; exists {
		return nil, storedErr
	}
	return c.migrationUseCase, nil
}

// Database returns the open clip database.
// The first call runs the startup migration and opens the file.
func (c *Container) Database() (*database.Handle, error) {
	var err error
	c.handleInit.Do(func() {
		c.handle, err = c.initDatabase()
		if err != nil {
			c.initErrors["database"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["database"]; exists {
		return nil, storedErr
	}
	return c.handle, nil
}

// ClipRepository returns the clip repository bound to the open database.
func (c *Container) ClipRepository() (clipsUseCase.ClipRepository, error) {
	var err error
	c.clipRepositoryInit.Do(func() {
		c.clipRepository, err = c.initClipRepository()
		if err != nil {
			c.initErrors["clipRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clipRepository"]; exists {
		return nil, storedErr
	}
	return c.clipRepository, nil
}

// initMigrationUseCase creates the migration use case. The app lock adopts legacy passwords.
func (c *Container) initMigrationUseCase() (migrationUseCase.MigrationUseCase, error) {
	passphrases, err := c.PassphraseLifecycle()
	if err != nil {
		return nil, fmt.Errorf("failed to get passphrase lifecycle for migration: %w", err)
	}

	appLock, err := c.AppLockUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get app lock use case for migration: %w", err)
	}

	return migrationUseCase.NewMigrationUseCase(
		passphrases,
		appLock,
		c.DatabaseEngine(),
		c.config.DBPath(),
		c.Logger(),
	), nil
}

// initDatabase creates the database handle and opens it.
func (c *Container) initDatabase() (*database.Handle, error) {
	passphrases, err := c.PassphraseLifecycle()
	if err != nil {
		return nil, fmt.Errorf("failed to get passphrase lifecycle for database: %w", err)
	}

	migrator, err := c.MigrationUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get migration use case for database: %w", err)
	}

	handle := database.NewHandle(c.DatabaseEngine(), passphrases, migrator, c.config.DBPath(), c.Logger())
	if err := handle.Open(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return handle, nil
}

// initClipRepository creates the clip repository on the open database connection.
func (c *Container) initClipRepository() (clipsUseCase.ClipRepository, error) {
	handle, err := c.Database()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for clip repository: %w", err)
	}
	return clipsRepository.NewSQLiteClipRepository(handle.DB()), nil
}
