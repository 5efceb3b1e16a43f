// Package testutil provides testing utilities for repository and usecase tests.
//
// Database Setup:
//
//	db := testutil.SetupSQLiteDB(t)
//	defer testutil.TeardownDB(t, db)
//
// Test Fixtures:
//
//	id := testutil.CreateTestClip(t, db, "hello", 1700000000000, false)
//
// Migration Path:
//
// Migrations are discovered by walking up from the current working directory
// until an "internal/database/migrations/{dbType}" directory is found.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// SetupSQLiteDB opens a private in-memory SQLite database and runs migrations.
func SetupSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "failed to open sqlite")

	// Every connection to ":memory:" is a different database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	err = db.Ping()
	require.NoError(t, err, "failed to ping sqlite database")

	runSQLiteMigrations(t, db)

	return db
}

// TeardownDB closes the database connection.
func TeardownDB(t *testing.T, db *sql.DB) {
	t.Helper()
	if db != nil {
		err := db.Close()
		require.NoError(t, err, "failed to close database connection")
	}
}

// CleanupSQLiteDB deletes all rows and resets the id sequence.
func CleanupSQLiteDB(t *testing.T, db *sql.DB) {
	t.Helper()

	_, err := db.Exec("DELETE FROM clip_entries")
	require.NoError(t, err, "failed to delete clip entries")

	_, err = db.Exec("DELETE FROM sqlite_sequence WHERE name = 'clip_entries'")
	require.NoError(t, err, "failed to reset clip entries sequence")
}

// CreateTestClip inserts a clip row and returns its id.
func CreateTestClip(t *testing.T, db *sql.DB, content string, timestamp int64, pinned bool) int64 {
	t.Helper()

	res, err := db.ExecContext(context.Background(),
		"INSERT INTO clip_entries (content, timestamp, pinned) VALUES (?, ?, ?)",
		content,
		timestamp,
		pinned,
	)
	require.NoError(t, err, "failed to create test clip")

	id, err := res.LastInsertId()
	require.NoError(t, err, "failed to read test clip id")
	return id
}

// runSQLiteMigrations applies all pending SQLite migrations for the test database.
func runSQLiteMigrations(t *testing.T, db *sql.DB) {
	t.Helper()

	driver, err := sqlite.WithInstance(db, &sqlite.Config{})
	require.NoError(t, err, "failed to create sqlite driver")

	migrationsPath, err := getMigrationsPath("sqlite")
	require.NoError(t, err, "failed to find sqlite migrations path")

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	require.NoError(t, err, "failed to create migrate instance for sqlite")

	// Note: We intentionally do NOT close the migrate instance here because we're using
	// WithInstance() with an existing database connection that we don't own. Closing the
	// migrate instance would close the underlying database connection, which is managed
	// by the caller.

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		require.NoError(t, err, fmt.Sprintf("failed to run sqlite migrations from %s", migrationsPath))
	}
}

// getMigrationsPath resolves the absolute path to migration files for the specified database type.
// Walks up the directory tree from current working directory to find the migrations folder.
// Returns an error if the working directory cannot be determined or migrations are not found.
func getMigrationsPath(dbType string) (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}

	for {
		for _, candidate := range []string{
			filepath.Join(dir, "internal", "database", "migrations", dbType),
			filepath.Join(dir, "migrations", dbType),
		} {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached the root directory
			return "", fmt.Errorf("migrations directory not found for %s (started from %s)", dbType, dir)
		}
		dir = parent
	}
}
