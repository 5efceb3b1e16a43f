package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	backupDomain "github.com/celox/clipvault/internal/backup/domain"
	backupService "github.com/celox/clipvault/internal/backup/service"
	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

// mockClipSource is a mock implementation of ClipSource for testing.
type mockClipSource struct {
	mock.Mock
}

func (m *mockClipSource) Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clipsDomain.ClipEntry), args.Error(1)
}

func (m *mockClipSource) ImportEntries(ctx context.Context, entries []clipsDomain.ImportEntry) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}

func newTestBackupUseCase(source ClipSource) BackupUseCase {
	codec := backupService.NewCodecWithIterations(1000, func() time.Time { return time.UnixMilli(1_700_000_000_000) })
	return NewBackupUseCase(source, codec, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestBackupUseCase_ExportImport(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_RoundTrip", func(t *testing.T) {
		source := &mockClipSource{}
		uc := newTestBackupUseCase(source)

		stored := []*clipsDomain.ClipEntry{
			{ID: 2, Content: "b", Timestamp: 20, Pinned: true},
			{ID: 1, Content: "a", Timestamp: 10},
		}
		source.On("Snapshot", ctx).Return(stored, nil).Once()
		source.On("ImportEntries", ctx, []clipsDomain.ImportEntry{
			{Content: "b", Timestamp: 20, Pinned: true},
			{Content: "a", Timestamp: 10},
		}).Return(2, nil).Once()

		data, n, err := uc.Export(ctx, "pw")
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		imported, err := uc.Import(ctx, data, "pw")
		require.NoError(t, err)
		assert.Equal(t, 2, imported)

		source.AssertExpectations(t)
	})

	t.Run("Success_EmptyBackup", func(t *testing.T) {
		source := &mockClipSource{}
		uc := newTestBackupUseCase(source)

		source.On("Snapshot", ctx).Return([]*clipsDomain.ClipEntry{}, nil).Once()
		source.On("ImportEntries", ctx, []clipsDomain.ImportEntry{}).Return(0, nil).Once()

		data, n, err := uc.Export(ctx, "pw")
		require.NoError(t, err)
		assert.Zero(t, n)

		imported, err := uc.Import(ctx, data, "pw")
		require.NoError(t, err)
		assert.Zero(t, imported)

		source.AssertExpectations(t)
	})

	t.Run("Success_SkipsInvalidEntries", func(t *testing.T) {
		source := &mockClipSource{}
		uc := newTestBackupUseCase(source)

		codec := backupService.NewCodecWithIterations(1000, time.Now)
		data, err := codec.Encode([]backupDomain.Entry{
			{Content: "", Timestamp: 1},
			{Content: "ok", Timestamp: 2},
			{Content: "negative", Timestamp: -5},
		}, "pw")
		require.NoError(t, err)

		source.On("ImportEntries", ctx, []clipsDomain.ImportEntry{{Content: "ok", Timestamp: 2}}).
			Return(1, nil).
			Once()

		imported, err := uc.Import(ctx, data, "pw")
		require.NoError(t, err)
		assert.Equal(t, 1, imported)

		source.AssertExpectations(t)
	})

	t.Run("Error_WrongPassword", func(t *testing.T) {
		source := &mockClipSource{}
		uc := newTestBackupUseCase(source)

		source.On("Snapshot", ctx).Return([]*clipsDomain.ClipEntry{{ID: 1, Content: "a", Timestamp: 1}}, nil).Once()

		data, _, err := uc.Export(ctx, "pw")
		require.NoError(t, err)

		_, err = uc.Import(ctx, data, "not-pw")
		assert.ErrorIs(t, err, backupDomain.ErrAuthenticationFailed)
		source.AssertNotCalled(t, "ImportEntries", mock.Anything, mock.Anything)
	})

	t.Run("Error_EmptyPassword", func(t *testing.T) {
		source := &mockClipSource{}
		uc := newTestBackupUseCase(source)

		_, _, err := uc.Export(ctx, "")
		assert.ErrorIs(t, err, backupDomain.ErrEmptyPassword)
		source.AssertNotCalled(t, "Snapshot", mock.Anything)
	})

	t.Run("Error_SnapshotFails", func(t *testing.T) {
		source := &mockClipSource{}
		uc := newTestBackupUseCase(source)

		source.On("Snapshot", ctx).Return(nil, errors.New("closed")).Once()

		_, _, err := uc.Export(ctx, "pw")
		assert.EqualError(t, err, "closed")
	})
}

func TestBackupUseCase_Files(t *testing.T) {
	ctx := context.Background()

	source := &mockClipSource{}
	uc := newTestBackupUseCase(source)

	source.On("Snapshot", ctx).Return([]*clipsDomain.ClipEntry{{ID: 1, Content: "a", Timestamp: 1}}, nil).Once()
	source.On("ImportEntries", ctx, []clipsDomain.ImportEntry{{Content: "a", Timestamp: 1}}).Return(0, nil).Once()

	path := filepath.Join(t.TempDir(), "history"+backupDomain.FileExtension)

	n, err := uc.ExportToFile(ctx, path, "pw")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	imported, err := uc.ImportFromFile(ctx, path, "pw")
	require.NoError(t, err)
	assert.Zero(t, imported)

	_, err = uc.ImportFromFile(ctx, filepath.Join(t.TempDir(), "missing.cvbk"), "pw")
	assert.ErrorIs(t, err, os.ErrNotExist)

	source.AssertExpectations(t)
}
