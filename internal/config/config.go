// Package config provides application configuration through environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/allisson/go-env"
	validation "github.com/jellydator/validation"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// DataDir is the directory holding the clip database and the preference namespace.
	DataDir string
	// DBFileName is the clip database file name inside DataDir.
	DBFileName string
	// PrefsFileName is the bbolt preference file name inside DataDir.
	PrefsFileName string
	// DBKDFIterations is the PBKDF2 iteration count used when sealing the database.
	DBKDFIterations int
	// DBCipher is the AEAD used when sealing new database files ("aes-gcm" or "chacha20-poly1305").
	DBCipher string

	// LogLevel is the logging level (e.g., "debug", "info", "warn", "error").
	LogLevel string

	// KeystoreStrongBoxURI is the keeper URI of the preferred keystore tier.
	KeystoreStrongBoxURI string
	// KeystoreTEEURI is the keeper URI of the fallback keystore tier.
	KeystoreTEEURI string

	// DeleteCooldown is how long a deleted clip's content is ignored by the clipboard watcher.
	DeleteCooldown time.Duration
	// ClipboardPollInterval is the interval between two reads of the system clipboard.
	ClipboardPollInterval time.Duration

	// ServerHost is the host address the local API binds to.
	ServerHost string
	// ServerPort is the port number the local API listens on.
	ServerPort int

	// CORSEnabled indicates whether CORS is enabled on the local API.
	CORSEnabled bool
	// CORSAllowOrigins is a comma-separated list of allowed origins for CORS.
	CORSAllowOrigins string

	// MetricsEnabled indicates whether metrics collection is enabled.
	MetricsEnabled bool
	// MetricsNamespace is the namespace for the application metrics.
	MetricsNamespace string
	// MetricsPort is the port number for the metrics server.
	MetricsPort int

	// AppLockMaxAttempts is the number of failed unlock attempts before a lockout.
	AppLockMaxAttempts int
	// AppLockLockoutDuration is how long unlocking is refused after too many failures.
	AppLockLockoutDuration time.Duration
	// UnlockRateLimitRequestsPerSec is the per-IP rate of unlock requests on the local API.
	UnlockRateLimitRequestsPerSec float64
	// UnlockRateLimitBurst is the per-IP burst of unlock requests on the local API.
	UnlockRateLimitBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		// Storage
		DataDir:         env.GetString("DATA_DIR", defaultDataDir()),
		DBFileName:      env.GetString("DB_FILE_NAME", "clipvault.db"),
		PrefsFileName:   env.GetString("PREFS_FILE_NAME", "prefs.db"),
		DBKDFIterations: env.GetInt("DB_KDF_ITERATIONS", 100000),
		DBCipher:        env.GetString("DB_CIPHER", "aes-gcm"),

		// Logging
		LogLevel: env.GetString("LOG_LEVEL", "info"),

		// Keystore tiers
		KeystoreStrongBoxURI: env.GetString("KEYSTORE_STRONGBOX_URI", ""),
		KeystoreTEEURI:       env.GetString("KEYSTORE_TEE_URI", ""),

		// Clips
		DeleteCooldown:        env.GetDuration("DELETE_COOLDOWN_SECONDS", 10, time.Second),
		ClipboardPollInterval: env.GetDuration("CLIPBOARD_POLL_INTERVAL_MS", 500, time.Millisecond),

		// Local API
		ServerHost: env.GetString("SERVER_HOST", "127.0.0.1"),
		ServerPort: env.GetInt("SERVER_PORT", 8787),

		// CORS
		CORSEnabled:      env.GetBool("CORS_ENABLED", false),
		CORSAllowOrigins: env.GetString("CORS_ALLOW_ORIGINS", ""),

		// Metrics
		MetricsEnabled:   env.GetBool("METRICS_ENABLED", false),
		MetricsNamespace: env.GetString("METRICS_NAMESPACE", "clipvault"),
		MetricsPort:      env.GetInt("METRICS_PORT", 8788),

		// App lock
		AppLockMaxAttempts:     env.GetInt("APP_LOCK_MAX_ATTEMPTS", 5),
		AppLockLockoutDuration: env.GetDuration("APP_LOCK_LOCKOUT_MINUTES", 5, time.Minute),

		// Unlock rate limiting
		UnlockRateLimitRequestsPerSec: env.GetFloat64("UNLOCK_RATE_LIMIT_REQUESTS_PER_SEC", 1.0),
		UnlockRateLimitBurst:          env.GetInt("UNLOCK_RATE_LIMIT_BURST", 5),
	}
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.DBFileName, validation.Required),
		validation.Field(&c.PrefsFileName, validation.Required),
		validation.Field(&c.DBKDFIterations, validation.Required, validation.Min(1)),
		validation.Field(&c.DBCipher, validation.Required, validation.In("aes-gcm", "chacha20-poly1305")),
		validation.Field(&c.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&c.DeleteCooldown, validation.Min(time.Duration(0))),
		validation.Field(&c.ClipboardPollInterval, validation.Required, validation.Min(10*time.Millisecond)),
		validation.Field(&c.ServerPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.MetricsPort, validation.Required, validation.Min(1), validation.Max(65535)),
		validation.Field(&c.AppLockMaxAttempts, validation.Required, validation.Min(1)),
		validation.Field(&c.AppLockLockoutDuration, validation.Required),
		validation.Field(&c.UnlockRateLimitRequestsPerSec, validation.Required, validation.Min(0.01)),
		validation.Field(&c.UnlockRateLimitBurst, validation.Required, validation.Min(1)),
	)
}

// DBPath returns the absolute path of the clip database file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, c.DBFileName)
}

// PrefsPath returns the absolute path of the preference namespace file.
func (c *Config) PrefsPath() string {
	return filepath.Join(c.DataDir, c.PrefsFileName)
}

// GetGinMode returns the appropriate Gin mode based on log level.
func (c *Config) GetGinMode() string {
	if c.LogLevel == "debug" {
		return "debug"
	}
	return "release"
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".clipvault"
	}
	return filepath.Join(dir, "clipvault")
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
