package app

import (
	"fmt"

	"github.com/celox/clipvault/internal/clipboard"
	clipsHTTP "github.com/celox/clipvault/internal/clips/http"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
)

// ClipUseCase returns the clip store.
func (c *Container) ClipUseCase() (clipsUseCase.ClipUseCase, error) {
	var err error
	c.clipUseCaseInit.Do(func() {
		c.clipUseCase, err = c.initClipUseCase()
		if err != nil {
			c.initErrors["clipUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clipUseCase"]; exists {
		return nil, storedErr
	}
	return c.clipUseCase, nil
}

// ClipHandler returns the clip HTTP handler.
func (c *Container) ClipHandler() (*clipsHTTP.ClipHandler, error) {
	var err error
	c.clipHandlerInit.Do(func() {
		c.clipHandler, err = c.initClipHandler()
		if err != nil {
			c.initErrors["clipHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clipHandler"]; exists {
		return nil, storedErr
	}
	return c.clipHandler, nil
}

// ClipboardWatcher returns the watcher feeding the system clipboard into the clip store.
func (c *Container) ClipboardWatcher() (*clipboard.Watcher, error) {
	var err error
	c.clipboardWatcherInit.Do(func() {
		c.clipboardWatcher, err = c.initClipboardWatcher()
		if err != nil {
			c.initErrors["clipboardWatcher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["clipboardWatcher"]; exists {
		return nil, storedErr
	}
	return c.clipboardWatcher, nil
}

// initClipUseCase creates the clip use case, decorated with metrics.
func (c *Container) initClipUseCase() (clipsUseCase.ClipUseCase, error) {
	handle, err := c.Database()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for clip use case: %w", err)
	}

	repo, err := c.ClipRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get clip repository for clip use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for clip use case: %w", err)
	}

	useCase := clipsUseCase.NewClipUseCase(
		handle,
		repo,
		c.Logger(),
		clipsUseCase.WithCooldown(c.config.DeleteCooldown),
	)
	return clipsUseCase.NewClipUseCaseWithMetrics(useCase, businessMetrics), nil
}

// initClipHandler creates the clip HTTP handler.
func (c *Container) initClipHandler() (*clipsHTTP.ClipHandler, error) {
	useCase, err := c.ClipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get clip use case for clip handler: %w", err)
	}
	return clipsHTTP.NewClipHandler(useCase, c.Logger()), nil
}

// initClipboardWatcher creates the watcher on the system clipboard.
func (c *Container) initClipboardWatcher() (*clipboard.Watcher, error) {
	if !clipboard.Supported() {
		return nil, fmt.Errorf("no clipboard backend available on this system")
	}

	useCase, err := c.ClipUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get clip use case for clipboard watcher: %w", err)
	}

	return clipboard.NewWatcher(clipboard.System{}, useCase, c.config.ClipboardPollInterval, c.Logger()), nil
}
