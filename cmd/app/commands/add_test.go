package commands

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	clipMocks "github.com/celox/clipvault/internal/clips/http/mocks"
)

func TestRunAdd(t *testing.T) {
	ctx := context.Background()
	logger := discardLogger()

	t.Run("text-output", func(t *testing.T) {
		clips := &clipMocks.MockClipUseCase{}
		clips.On("Insert", ctx, "hello").
			Return(clipsDomain.InsertResult{Outcome: clipsDomain.Inserted, ID: 7}, nil)

		var out bytes.Buffer
		err := RunAdd(ctx, clips, logger, IOTuple{Reader: strings.NewReader(""), Writer: &out}, "hello", "text")

		require.NoError(t, err)
		require.Equal(t, "Added clip 7\n", out.String())
		clips.AssertExpectations(t)
	})

	t.Run("reads-stdin-when-empty", func(t *testing.T) {
		clips := &clipMocks.MockClipUseCase{}
		clips.On("Insert", ctx, "from pipe\n").
			Return(clipsDomain.InsertResult{Outcome: clipsDomain.Inserted, ID: 1}, nil)

		var out bytes.Buffer
		err := RunAdd(ctx, clips, logger, IOTuple{Reader: strings.NewReader("from pipe\n"), Writer: &out}, "", "text")

		require.NoError(t, err)
		clips.AssertExpectations(t)
	})

	t.Run("deduped", func(t *testing.T) {
		clips := &clipMocks.MockClipUseCase{}
		clips.On("Insert", ctx, "same").
			Return(clipsDomain.InsertResult{Outcome: clipsDomain.Deduped, ID: 3}, nil)

		var out bytes.Buffer
		err := RunAdd(ctx, clips, logger, IOTuple{Writer: &out}, "same", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "Clip 3 already holds this content")
	})

	t.Run("suppressed", func(t *testing.T) {
		clips := &clipMocks.MockClipUseCase{}
		clips.On("Insert", ctx, "gone").
			Return(clipsDomain.InsertResult{Outcome: clipsDomain.Suppressed}, nil)

		var out bytes.Buffer
		err := RunAdd(ctx, clips, logger, IOTuple{Writer: &out}, "gone", "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "was not added")
	})

	t.Run("json-output", func(t *testing.T) {
		clips := &clipMocks.MockClipUseCase{}
		clips.On("Insert", ctx, "hello").
			Return(clipsDomain.InsertResult{Outcome: clipsDomain.Inserted, ID: 7}, nil)

		var out bytes.Buffer
		err := RunAdd(ctx, clips, logger, IOTuple{Writer: &out}, "hello", "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"outcome": "inserted"`)
	})

	t.Run("use-case-error", func(t *testing.T) {
		clips := &clipMocks.MockClipUseCase{}
		clips.On("Insert", mock.Anything, "x").Return(clipsDomain.InsertResult{}, errors.New("disk full"))

		err := RunAdd(ctx, clips, logger, IOTuple{Writer: &bytes.Buffer{}}, "x", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to add clip")
	})

	t.Run("invalid-format", func(t *testing.T) {
		clips := &clipMocks.MockClipUseCase{}
		err := RunAdd(ctx, clips, logger, IOTuple{Writer: &bytes.Buffer{}}, "x", "yaml")

		require.Error(t, err)
		require.Contains(t, err.Error(), "invalid format")
		clips.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})
}
