// Package app provides dependency injection container for assembling application components.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	applockHTTP "github.com/celox/clipvault/internal/applock/http"
	applockService "github.com/celox/clipvault/internal/applock/service"
	applockUseCase "github.com/celox/clipvault/internal/applock/usecase"
	backupHTTP "github.com/celox/clipvault/internal/backup/http"
	backupUseCase "github.com/celox/clipvault/internal/backup/usecase"
	"github.com/celox/clipvault/internal/clipboard"
	clipsHTTP "github.com/celox/clipvault/internal/clips/http"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
	"github.com/celox/clipvault/internal/config"
	cryptoRepository "github.com/celox/clipvault/internal/crypto/repository"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
	cryptoUseCase "github.com/celox/clipvault/internal/crypto/usecase"
	"github.com/celox/clipvault/internal/database"
	"github.com/celox/clipvault/internal/http"
	"github.com/celox/clipvault/internal/metrics"
	migrationUseCase "github.com/celox/clipvault/internal/migration/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// Components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	preferences     *cryptoRepository.BoltPreferenceRepository
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Crypto
	aeadManager         cryptoService.AEADManager
	kmsService          cryptoService.KMSService
	keystore            *cryptoService.Keystore
	passphraseGenerator cryptoService.PassphraseGenerator
	secretStore         cryptoUseCase.SecretStore
	passphraseLifecycle cryptoUseCase.PassphraseLifecycle

	// Database
	engine           *database.SQLiteEngine
	migrationUseCase migrationUseCase.MigrationUseCase
	handle           *database.Handle
	clipRepository   clipsUseCase.ClipRepository

	// Use Cases
	clipUseCase    clipsUseCase.ClipUseCase
	backupUseCase  backupUseCase.BackupUseCase
	passwordHasher applockService.PasswordHasher
	appLockUseCase applockUseCase.AppLockUseCase

	// Handlers
	clipHandler    *clipsHTTP.ClipHandler
	backupHandler  *backupHTTP.BackupHandler
	appLockHandler *applockHTTP.AppLockHandler

	// Servers and Workers
	httpServer       *http.Server
	metricsServer    *http.MetricsServer
	clipboardWatcher *clipboard.Watcher

	// Initialization flags and mutex for thread-safety
	mu                      sync.Mutex
	loggerInit              sync.Once
	preferencesInit         sync.Once
	metricsProviderInit     sync.Once
	businessMetricsInit     sync.Once
	aeadManagerInit         sync.Once
	kmsServiceInit          sync.Once
	keystoreInit            sync.Once
	passphraseGeneratorInit sync.Once
	secretStoreInit         sync.Once
	passphraseLifecycleInit sync.Once
	engineInit              sync.Once
	migrationUseCaseInit    sync.Once
	handleInit              sync.Once
	clipRepositoryInit      sync.Once
	clipUseCaseInit         sync.Once
	backupUseCaseInit       sync.Once
	passwordHasherInit      sync.Once
	appLockUseCaseInit      sync.Once
	clipHandlerInit         sync.Once
	backupHandlerInit       sync.Once
	appLockHandlerInit      sync.Once
	httpServerInit          sync.Once
	metricsServerInit       sync.Once
	clipboardWatcherInit    sync.Once
	initErrors              map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
// It creates a new logger on first access based on the log level in configuration.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// MetricsProvider returns the OpenTelemetry metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. It is a no-op when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the local API server with its routes registered.
func (c *Container) HTTPServer(ctx context.Context) (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer(ctx)
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
// It should be called when the application is shutting down.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	// The database persists its sealed snapshot on close, so it goes before the preferences.
	if c.handle != nil {
		if err := c.handle.Close(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.preferences != nil {
		if err := c.preferences.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("preferences close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %w", errors.Join(shutdownErrors...))
	}

	return nil
}

// initLogger creates a structured logger on stderr so command output on stdout stays parseable.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initMetricsProvider creates the metrics provider when metrics are enabled.
func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}

	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

// initBusinessMetrics creates the business metrics recorder on top of the metrics provider.
func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}

	businessMetrics, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create business metrics: %w", err)
	}
	return businessMetrics, nil
}

// initHTTPServer creates the local API server and registers every handler.
func (c *Container) initHTTPServer(ctx context.Context) (*http.Server, error) {
	handle, err := c.Database()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	clipHandler, err := c.ClipHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get clip handler for http server: %w", err)
	}

	backupHandler, err := c.BackupHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get backup handler for http server: %w", err)
	}

	appLockHandler, err := c.AppLockHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get app lock handler for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(handle, c.config.ServerHost, c.config.ServerPort, c.Logger())
	server.SetupRouter(ctx, c.config, clipHandler, backupHandler, appLockHandler, metricsProvider)

	return server, nil
}

// initMetricsServer creates the metrics server when metrics are enabled.
func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}

	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}
