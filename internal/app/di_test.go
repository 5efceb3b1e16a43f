package app

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/config"
	"github.com/celox/clipvault/internal/database"
	"github.com/celox/clipvault/internal/metrics"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	key := make([]byte, 32)
	_, err := rand.Read(key)
	require.NoError(t, err)

	return &config.Config{
		DataDir:                t.TempDir(),
		DBFileName:             "clipvault.db",
		PrefsFileName:          "prefs.db",
		DBKDFIterations:        1000,
		DBCipher:               "aes-gcm",
		LogLevel:               "error",
		KeystoreStrongBoxURI:   "base64key://" + base64.URLEncoding.EncodeToString(key),
		DeleteCooldown:         10 * time.Second,
		ClipboardPollInterval:  500 * time.Millisecond,
		ServerHost:             "127.0.0.1",
		ServerPort:             8787,
		MetricsNamespace:       "clipvault",
		MetricsPort:            8788,
		AppLockMaxAttempts:     5,
		AppLockLockoutDuration: 5 * time.Minute,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := testConfig(t)

	container := NewContainer(cfg)

	require.NotNil(t, container)
	assert.Same(t, cfg, container.Config())
}

// TestContainerLogger verifies that the logger is created once.
func TestContainerLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "invalid"} {
		t.Run(level, func(t *testing.T) {
			container := NewContainer(&config.Config{LogLevel: level})

			logger := container.Logger()
			require.NotNil(t, logger)
			assert.Same(t, logger, container.Logger())
		})
	}
}

// TestContainerLazyInitialization verifies that components are only initialized when accessed.
func TestContainerLazyInitialization(t *testing.T) {
	container := NewContainer(testConfig(t))

	assert.Nil(t, container.logger)
	assert.Nil(t, container.preferences)
	assert.Nil(t, container.handle)

	_ = container.Logger()
	assert.NotNil(t, container.logger)
	assert.Nil(t, container.handle)
}

// TestContainerShutdown verifies that the shutdown method can be called safely without any component.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(testConfig(t))

	assert.NoError(t, container.Shutdown(context.Background()))
}

// TestContainerInitializationErrors verifies that a failed initialization is remembered.
func TestContainerInitializationErrors(t *testing.T) {
	cfg := testConfig(t)
	// A regular file where the data directory should be.
	cfg.DataDir = filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(cfg.DataDir, []byte("x"), 0o600))

	container := NewContainer(cfg)

	_, err := container.Preferences()
	require.Error(t, err)

	_, err2 := container.Preferences()
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())

	_, err = container.ClipUseCase()
	assert.Error(t, err)
}

func TestContainerMetricsDisabled(t *testing.T) {
	container := NewContainer(testConfig(t))

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	server, err := container.MetricsServer()
	require.NoError(t, err)
	assert.Nil(t, server)

	businessMetrics, err := container.BusinessMetrics()
	require.NoError(t, err)
	assert.IsType(t, &metrics.NoOpBusinessMetrics{}, businessMetrics)
}

func TestContainerMetricsEnabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MetricsEnabled = true
	cfg.MetricsNamespace = "clipvault_di_test"

	container := NewContainer(cfg)
	t.Cleanup(func() { _ = container.Shutdown(context.Background()) })

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	require.NotNil(t, provider)

	server, err := container.MetricsServer()
	require.NoError(t, err)
	assert.NotNil(t, server)
}

// TestContainer_ClipsSurviveRestart wires the full stack on a temp data directory.
func TestContainer_ClipsSurviveRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	container := NewContainer(cfg)
	clips, err := container.ClipUseCase()
	require.NoError(t, err)

	result, err := clips.Insert(ctx, "first clip")
	require.NoError(t, err)
	assert.Equal(t, clipsDomain.Inserted, result.Outcome)

	handle, err := container.Database()
	require.NoError(t, err)
	kind, err := handle.Kind()
	require.NoError(t, err)
	assert.Equal(t, database.FileSealed, kind)

	require.NoError(t, container.Shutdown(ctx))

	raw, err := os.ReadFile(cfg.DBPath())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "first clip")

	reopened := NewContainer(cfg)
	t.Cleanup(func() { _ = reopened.Shutdown(context.Background()) })

	clips, err = reopened.ClipUseCase()
	require.NoError(t, err)

	latest, err := clips.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "first clip", latest.Content)

	migrated, err := reopened.PassphraseLifecycle()
	require.NoError(t, err)
	ok, err := migrated.IsMigrated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestContainer_BackupRoundTrip(t *testing.T) {
	ctx := context.Background()

	source := NewContainer(testConfig(t))
	t.Cleanup(func() { _ = source.Shutdown(context.Background()) })

	clips, err := source.ClipUseCase()
	require.NoError(t, err)
	_, err = clips.Insert(ctx, "alpha")
	require.NoError(t, err)
	_, err = clips.Insert(ctx, "beta")
	require.NoError(t, err)

	backups, err := source.BackupUseCase()
	require.NoError(t, err)
	data, n, err := backups.Export(ctx, "backup-password")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	target := NewContainer(testConfig(t))
	t.Cleanup(func() { _ = target.Shutdown(context.Background()) })

	restored, err := target.BackupUseCase()
	require.NoError(t, err)
	imported, err := restored.Import(ctx, data, "backup-password")
	require.NoError(t, err)
	assert.Equal(t, 2, imported)
}

func TestContainer_HTTPServer(t *testing.T) {
	container := NewContainer(testConfig(t))
	t.Cleanup(func() { _ = container.Shutdown(context.Background()) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server, err := container.HTTPServer(ctx)
	require.NoError(t, err)
	require.NotNil(t, server)
	assert.NotNil(t, server.GetHandler())

	again, err := container.HTTPServer(ctx)
	require.NoError(t, err)
	assert.Same(t, server, again)
}
