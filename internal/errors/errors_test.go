package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap(t *testing.T) {
	base := errors.New("disk full")

	wrapped := Wrap(base, "failed to persist")
	require.Error(t, wrapped)
	assert.Equal(t, "failed to persist: disk full", wrapped.Error())
	assert.ErrorIs(t, wrapped, base)

	assert.NoError(t, Wrap(nil, "ignored"))
}

func TestWrapf(t *testing.T) {
	wrapped := Wrapf(ErrNotFound, "clip %d", 42)
	assert.Equal(t, "clip 42: not found", wrapped.Error())
	assert.ErrorIs(t, wrapped, ErrNotFound)

	assert.NoError(t, Wrapf(nil, "clip %d", 42))
}

func TestAs(t *testing.T) {
	var pathErr *pathError
	err := fmt.Errorf("open: %w", &pathError{path: "/tmp/x"})

	require.True(t, As(err, &pathErr))
	assert.Equal(t, "/tmp/x", pathErr.path)
	assert.False(t, Is(err, ErrNotFound))
}

type pathError struct {
	path string
}

func (e *pathError) Error() string { return "bad path " + e.path }

func TestCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{ErrNotFound, CodeNotFound},
		{Wrap(ErrNotFound, "clip not found"), CodeNotFound},
		{ErrConflict, CodeConflict},
		{Wrap(Wrap(ErrInvalidInput, "invalid backup container"), "import"), CodeInvalidInput},
		{ErrUnauthorized, CodeUnauthorized},
		{Wrap(ErrLocked, "app lock is temporarily locked"), CodeLocked},
		{Wrap(ErrUnavailable, "keystore unavailable"), CodeUnavailable},
		{errors.Join(errors.New("rollback failed"), ErrConflict), CodeConflict},
		{errors.New("boom"), CodeInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Code(tt.err), "%v", tt.err)
	}
}
