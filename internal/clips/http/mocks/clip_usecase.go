// Package mocks provides mock implementations for testing the clip HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

// MockClipUseCase is a mock implementation of ClipUseCase for testing.
type MockClipUseCase struct {
	mock.Mock
}

// Insert mocks the Insert method of ClipUseCase.
func (m *MockClipUseCase) Insert(ctx context.Context, content string) (clipsDomain.InsertResult, error) {
	args := m.Called(ctx, content)
	return args.Get(0).(clipsDomain.InsertResult), args.Error(1)
}

// Delete mocks the Delete method of ClipUseCase.
func (m *MockClipUseCase) Delete(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// DeleteAllUnpinned mocks the DeleteAllUnpinned method of ClipUseCase.
func (m *MockClipUseCase) DeleteAllUnpinned(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// DeleteBatch mocks the DeleteBatch method of ClipUseCase.
func (m *MockClipUseCase) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

// ReInsert mocks the ReInsert method of ClipUseCase.
func (m *MockClipUseCase) ReInsert(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// TogglePin mocks the TogglePin method of ClipUseCase.
func (m *MockClipUseCase) TogglePin(
	ctx context.Context,
	entry *clipsDomain.ClipEntry,
) (*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clipsDomain.ClipEntry), args.Error(1)
}

// SetPinned mocks the SetPinned method of ClipUseCase.
func (m *MockClipUseCase) SetPinned(ctx context.Context, ids []int64, pinned bool) (int64, error) {
	args := m.Called(ctx, ids, pinned)
	return args.Get(0).(int64), args.Error(1)
}

// Get mocks the Get method of ClipUseCase.
func (m *MockClipUseCase) Get(ctx context.Context, id int64) (*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clipsDomain.ClipEntry), args.Error(1)
}

// List mocks the List method of ClipUseCase.
func (m *MockClipUseCase) List(
	ctx context.Context,
	opts clipsDomain.ListOptions,
) ([]*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clipsDomain.ClipEntry), args.Error(1)
}

// Latest mocks the Latest method of ClipUseCase.
func (m *MockClipUseCase) Latest(ctx context.Context) (*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clipsDomain.ClipEntry), args.Error(1)
}

// Count mocks the Count method of ClipUseCase.
func (m *MockClipUseCase) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Snapshot mocks the Snapshot method of ClipUseCase.
func (m *MockClipUseCase) Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*clipsDomain.ClipEntry), args.Error(1)
}

// ImportEntries mocks the ImportEntries method of ClipUseCase.
func (m *MockClipUseCase) ImportEntries(ctx context.Context, entries []clipsDomain.ImportEntry) (int, error) {
	args := m.Called(ctx, entries)
	return args.Int(0), args.Error(1)
}

// DeleteOlderThan mocks the DeleteOlderThan method of ClipUseCase.
func (m *MockClipUseCase) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
