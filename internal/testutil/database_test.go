package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMigrationsPath(t *testing.T) {
	tests := []struct {
		name    string
		dbType  string
		wantErr bool
	}{
		{
			name:    "find sqlite migrations",
			dbType:  "sqlite",
			wantErr: false,
		},
		{
			name:    "non-existent database type",
			dbType:  "nonexistent",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := getMigrationsPath(tt.dbType)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Empty(t, got)
			} else {
				assert.NoError(t, err)
				_, statErr := os.Stat(got)
				assert.NoError(t, statErr, "migrations path should exist")
				assert.Contains(t, got, tt.dbType)
			}
		})
	}
}

func TestGetMigrationsPathFromDifferentWorkingDir(t *testing.T) {
	originalWd, err := os.Getwd()
	require.NoError(t, err)
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	subDir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, os.MkdirAll(subDir, 0o750))

	// Walking up from outside the module never reaches the migrations.
	require.NoError(t, os.Chdir(subDir))
	_, err = getMigrationsPath("sqlite")
	assert.Error(t, err)

	// From a package directory inside the module it does.
	require.NoError(t, os.Chdir(originalWd))
	path, err := getMigrationsPath("sqlite")
	assert.NoError(t, err)
	assert.Contains(t, path, filepath.Join("migrations", "sqlite"))
}

func TestSetupSQLiteDB(t *testing.T) {
	db := SetupSQLiteDB(t)
	defer TeardownDB(t, db)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM clip_entries").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestCreateTestClipAndCleanup(t *testing.T) {
	db := SetupSQLiteDB(t)
	defer TeardownDB(t, db)

	first := CreateTestClip(t, db, "hello", 1000, false)
	second := CreateTestClip(t, db, "world", 2000, true)
	assert.Equal(t, int64(1), first)
	assert.Equal(t, int64(2), second)

	var pinned bool
	require.NoError(t, db.QueryRow("SELECT pinned FROM clip_entries WHERE id = ?", second).Scan(&pinned))
	assert.True(t, pinned)

	CleanupSQLiteDB(t, db)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM clip_entries").Scan(&count))
	assert.Equal(t, 0, count)
	assert.Equal(t, int64(1), CreateTestClip(t, db, "again", 3000, false))
}

func TestTeardownDB(t *testing.T) {
	db := SetupSQLiteDB(t)
	require.NotNil(t, db)

	TeardownDB(t, db)

	err := db.Ping()
	assert.Error(t, err, "database should be closed after teardown")
}

func TestTeardownDBWithNilDB(t *testing.T) {
	assert.NotPanics(t, func() {
		TeardownDB(t, nil)
	})
}
