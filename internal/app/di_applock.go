package app

import (
	"fmt"
	"time"

	applockHTTP "github.com/celox/clipvault/internal/applock/http"
	applockService "github.com/celox/clipvault/internal/applock/service"
	applockUseCase "github.com/celox/clipvault/internal/applock/usecase"
)

// PasswordHasher returns the Argon2id hasher of the app lock verifier.
func (c *Container) PasswordHasher() applockService.PasswordHasher {
	c.passwordHasherInit.Do(func() {
		c.passwordHasher = applockService.NewPasswordHasher()
	})
	return c.passwordHasher
}

// AppLockUseCase returns the app lock use case.
func (c *Container) AppLockUseCase() (applockUseCase.AppLockUseCase, error) {
	var err error
	c.appLockUseCaseInit.Do(func() {
		c.appLockUseCase, err = c.initAppLockUseCase()
		if err != nil {
			c.initErrors["appLockUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["appLockUseCase"]; exists {
		return nil, storedErr
	}
	return c.appLockUseCase, nil
}

// AppLockHandler returns the app lock HTTP handler.
func (c *Container) AppLockHandler() (*applockHTTP.AppLockHandler, error) {
	var err error
	c.appLockHandlerInit.Do(func() {
		c.appLockHandler, err = c.initAppLockHandler()
		if err != nil {
			c.initErrors["appLockHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["appLockHandler"]; exists {
		return nil, storedErr
	}
	return c.appLockHandler, nil
}

// initAppLockUseCase creates the app lock use case, decorated with metrics.
func (c *Container) initAppLockUseCase() (applockUseCase.AppLockUseCase, error) {
	secretStore, err := c.SecretStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret store for app lock use case: %w", err)
	}

	prefs, err := c.Preferences()
	if err != nil {
		return nil, fmt.Errorf("failed to get preferences for app lock use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for app lock use case: %w", err)
	}

	useCase := applockUseCase.NewAppLockUseCase(
		secretStore,
		prefs,
		c.PasswordHasher(),
		c.PassphraseGenerator(),
		applockUseCase.Config{
			MaxAttempts:     c.config.AppLockMaxAttempts,
			LockoutDuration: c.config.AppLockLockoutDuration,
		},
		time.Now,
		c.Logger(),
	)
	return applockUseCase.NewAppLockUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initAppLockHandler creates the app lock HTTP handler.
func (c *Container) initAppLockHandler() (*applockHTTP.AppLockHandler, error) {
	useCase, err := c.AppLockUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get app lock use case for app lock handler: %w", err)
	}
	return applockHTTP.NewAppLockHandler(useCase, c.Logger()), nil
}
