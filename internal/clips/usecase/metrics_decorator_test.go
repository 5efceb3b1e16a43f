package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
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

// mockClipUseCase is a mock implementation of ClipUseCase for testing.
type mockClipUseCase struct {
	mock.Mock
}

var _ ClipUseCase = (*mockClipUseCase)(nil)

func (m *mockClipUseCase) Insert(ctx context.Context, content string) (clipsDomain.InsertResult, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(clipsDomain.InsertResult), args.Error(1)
}

func (m *mockClipUseCase) Delete(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockClipUseCase) DeleteAllUnpinned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClipUseCase) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClipUseCase) ReInsert(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *mockClipUseCase) TogglePin(
	ctx context.Context,
	entry *clipsDomain.ClipEntry,
) (*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clipsDomain.ClipEntry), args.Error(1)
}

func (m *mockClipUseCase) SetPinned(ctx context.Context, ids []int64, pinned bool) (int64, error) {
	args := m.Called(ctx, ids, pinned)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClipUseCase) Get(ctx context.Context, id int64) (*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clipsDomain.ClipEntry), args.Error(1)
}

func (m *mockClipUseCase) List(
	ctx context.Context,
	opts clipsDomain.ListOptions,
) ([]*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clipsDomain.ClipEntry), args.Error(1)
}

func (m *mockClipUseCase) Latest(ctx context.Context) (*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clipsDomain.ClipEntry), args.Error(1)
}

func (m *mockClipUseCase) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockClipUseCase) Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clipsDomain.ClipEntry), args.Error(1)
}

func (m *mockClipUseCase) ImportEntries(ctx context.Context, entries []clipsDomain.ImportEntry) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}

func (m *mockClipUseCase) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

func expectMetrics(m *mockBusinessMetrics, ctx context.Context, operation, status string) {
	m.On("RecordOperation", ctx, "clips", operation, status).Return().Once()
	m.On("RecordDuration", ctx, "clips", operation, mock.AnythingOfType("time.Duration"), status).
		Return().
		Once()
}

func TestNewClipUseCaseWithMetrics(t *testing.T) {
	t.Parallel()

	decorator := NewClipUseCaseWithMetrics(&mockClipUseCase{}, &mockBusinessMetrics{})

	assert.NotNil(t, decorator)
	assert.Implements(t, (*ClipUseCase)(nil), decorator)
}

func TestMetricsDecorator_Insert(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name      string
		result    clipsDomain.InsertResult
		err       error
		operation string
		status    string
	}{
		{
			name:      "Inserted",
			result:    clipsDomain.InsertResult{Outcome: clipsDomain.Inserted, ID: 1},
			operation: "clip_insert",
			status:    "success",
		},
		{
			name:      "Deduped",
			result:    clipsDomain.InsertResult{Outcome: clipsDomain.Deduped, ID: 1},
			operation: "clip_insert_deduped",
			status:    "success",
		},
		{
			name:      "Suppressed",
			result:    clipsDomain.InsertResult{Outcome: clipsDomain.Suppressed},
			operation: "clip_insert_suppressed",
			status:    "success",
		},
		{
			name:      "Error",
			err:       errors.New("boom"),
			operation: "clip_insert",
			status:    "error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			mockUseCase := &mockClipUseCase{}
			mockMetrics := &mockBusinessMetrics{}

			mockUseCase.On("Insert", ctx, "content").Return(tt.result, tt.err).Once()
			expectMetrics(mockMetrics, ctx, tt.operation, tt.status)

			decorator := NewClipUseCaseWithMetrics(mockUseCase, mockMetrics)
			result, err := decorator.Insert(ctx, "content")

			assert.Equal(t, tt.result, result)
			assert.Equal(t, tt.err, err)
			mockUseCase.AssertExpectations(t)
			mockMetrics.AssertExpectations(t)
		})
	}
}

func TestMetricsDecorator_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	entry := &clipsDomain.ClipEntry{ID: 1, Content: "x"}

	t.Run("Success_RecordsSuccessMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockClipUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Delete", ctx, entry).Return(nil).Once()
		expectMetrics(mockMetrics, ctx, "clip_delete", "success")

		decorator := NewClipUseCaseWithMetrics(mockUseCase, mockMetrics)
		assert.NoError(t, decorator.Delete(ctx, entry))

		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("Error_RecordsErrorMetrics", func(t *testing.T) {
		t.Parallel()
		mockUseCase := &mockClipUseCase{}
		mockMetrics := &mockBusinessMetrics{}

		mockUseCase.On("Delete", ctx, entry).Return(clipsDomain.ErrClipNotFound).Once()
		expectMetrics(mockMetrics, ctx, "clip_delete", "error")

		decorator := NewClipUseCaseWithMetrics(mockUseCase, mockMetrics)
		assert.ErrorIs(t, decorator.Delete(ctx, entry), clipsDomain.ErrClipNotFound)

		mockUseCase.AssertExpectations(t)
		mockMetrics.AssertExpectations(t)
	})
}

func TestMetricsDecorator_ReadOperations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mockUseCase := &mockClipUseCase{}
	mockMetrics := &mockBusinessMetrics{}
	entries := []*clipsDomain.ClipEntry{{ID: 1, Content: "a"}}

	mockUseCase.On("List", ctx, clipsDomain.ListOptions{Limit: 10}).Return(entries, nil).Once()
	mockUseCase.On("Count", ctx).Return(int64(1), nil).Once()
	mockUseCase.On("Snapshot", ctx).Return(nil, errors.New("closed")).Once()
	expectMetrics(mockMetrics, ctx, "clip_list", "success")
	expectMetrics(mockMetrics, ctx, "clip_count", "success")
	expectMetrics(mockMetrics, ctx, "clip_snapshot", "error")

	decorator := NewClipUseCaseWithMetrics(mockUseCase, mockMetrics)

	got, err := decorator.List(ctx, clipsDomain.ListOptions{Limit: 10})
	assert.NoError(t, err)
	assert.Equal(t, entries, got)

	n, err := decorator.Count(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = decorator.Snapshot(ctx)
	assert.Error(t, err)

	mockUseCase.AssertExpectations(t)
	mockMetrics.AssertExpectations(t)
}
