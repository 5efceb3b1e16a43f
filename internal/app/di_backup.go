package app

import (
	"fmt"

	backupHTTP "github.com/celox/clipvault/internal/backup/http"
	backupService "github.com/celox/clipvault/internal/backup/service"
	backupUseCase "github.com/celox/clipvault/internal/backup/usecase"
)

// BackupUseCase returns the backup export and import use case.
func (c *Container) BackupUseCase() (backupUseCase.BackupUseCase, error) {
	var err error
	c.backupUseCaseInit.Do(func() {
		c.backupUseCase, err = c.initBackupUseCase()
		if err != nil {
			c.initErrors["backupUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["backupUseCase"]; exists {
		return nil, storedErr
	}
	return c.backupUseCase, nil
}

// BackupHandler returns the backup HTTP handler.
func (c *Container) BackupHandler() (*backupHTTP.BackupHandler, error) {
	var err error
	c.backupHandlerInit.Do(func() {
		c.backupHandler, err = c.initBackupHandler()
		if err != nil {
			c.initErrors["backupHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["backupHandler"]; exists {
		return nil, storedErr
	}
	return c.backupHandler, nil
}

// initBackupUseCase creates the backup use case on the clip store, decorated with metrics.
func (c *Container) initBackupUseCase() (backupUseCase.BackupUseCase, error) {
	clips, err := c.ClipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get clip use case for backup use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for backup use case: %w", err)
	}

	useCase := backupUseCase.NewBackupUseCase(clips, backupService.NewCodec(), c.Logger())
	return backupUseCase.NewBackupUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initBackupHandler creates the backup HTTP handler.
func (c *Container) initBackupHandler() (*backupHTTP.BackupHandler, error) {
	useCase, err := c.BackupUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get backup use case for backup handler: %w", err)
	}
	return backupHTTP.NewBackupHandler(useCase, c.Logger()), nil
}
