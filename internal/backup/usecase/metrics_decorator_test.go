package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/celox/clipvault/internal/metrics"
)

// mockBusinessMetrics is a mock implementation of metrics.BusinessMetrics for testing.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

var _ metrics.BusinessMetrics = (*mockBusinessMetrics)(nil)

// mockBackupUseCase is a mock implementation of BackupUseCase for testing.
type mockBackupUseCase struct {
	mock.Mock
}

func (m *mockBackupUseCase) Export(ctx context.Context, password string) ([]byte, int, error) {
	args := m.Called(ctx, password)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]byte), args.Int(1), args.Error(2)
}

func (m *mockBackupUseCase) Import(ctx context.Context, data []byte, password string) (int, error) {
	args := m.Called(ctx, data, password)
	return args.Int(0), args.Error(1)
}

func (m *mockBackupUseCase) ExportToFile(ctx context.Context, path, password string) (int, error) {
	args := m.Called(ctx, path, password)
	return args.Int(0), args.Error(1)
}

func (m *mockBackupUseCase) ImportFromFile(ctx context.Context, path, password string) (int, error) {
	args := m.Called(ctx, path, password)
	return args.Int(0), args.Error(1)
}

func TestMetricsDecorator_Export(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockBackupUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Export", ctx, "pw").Return([]byte("data"), 3, nil).Once()
		mockMetrics.On("RecordOperation", ctx, "backup", "backup_export", "success").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "backup", "backup_export", mock.AnythingOfType("time.Duration"), "success").
			Return().
			Once()

		decorator := NewBackupUseCaseWithMetrics(mockUseCase, mockMetrics)
		data, n, err := decorator.Export(ctx, "pw")

		assert.NoError(t, err)
		assert.Equal(t, []byte("data"), data)
		assert.Equal(t, 3, n)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockBackupUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		expectedErr := errors.New("snapshot failed")

		mockUseCase.On("Export", ctx, "pw").Return(nil, 0, expectedErr).Once()
		mockMetrics.On("RecordOperation", ctx, "backup", "backup_export", "error").Return().Once()
		mockMetrics.On("RecordDuration", ctx, "backup", "backup_export", mock.AnythingOfType("time.Duration"), "error").
			Return().
			Once()

		decorator := NewBackupUseCaseWithMetrics(mockUseCase, mockMetrics)
		_, _, err := decorator.Export(ctx, "pw")

		assert.Equal(t, expectedErr, err)
		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_Import(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &mockBackupUseCase{}
	mockMetrics := &mockBusinessMetrics{}

	mockUseCase.On("Import", ctx, []byte("data"), "pw").Return(2, nil).Once()
	mockUseCase.On("ImportFromFile", ctx, "/tmp/x.cvbk", "pw").Return(0, errors.New("missing")).Once()
	mockMetrics.On("RecordOperation", ctx, "backup", "backup_import", "success").Return().Once()
	mockMetrics.On("RecordDuration", ctx, "backup", "backup_import", mock.AnythingOfType("time.Duration"), "success").
		Return().
		Once()
	mockMetrics.On("RecordOperation", ctx, "backup", "backup_import_file", "error").Return().Once()
	mockMetrics.On("RecordDuration", ctx, "backup", "backup_import_file", mock.AnythingOfType("time.Duration"), "error").
		Return().
		Once()

	decorator := NewBackupUseCaseWithMetrics(mockUseCase, mockMetrics)

	n, err := decorator.Import(ctx, []byte("data"), "pw")
	assert.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = decorator.ImportFromFile(ctx, "/tmp/x.cvbk", "pw")
	assert.Error(t, err)

	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
