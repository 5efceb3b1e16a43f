package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/clips/http/dto"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
)

// RunAdd stores content in the history. Without content it reads all of
// io.Reader, so `echo text | clipvault add` works.
func RunAdd(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	logger *slog.Logger,
	io IOTuple,
	content string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	if content == "" {
		data, err := readAll(io)
		if err != nil {
			return err
		}
		content = data
	}

	result, err := clipUseCase.Insert(ctx, content)
	if err != nil {
		return fmt.Errorf("failed to add clip: %w", err)
	}

	logger.Debug("clip add finished", slog.String("outcome", result.Outcome.String()), slog.Int64("id", result.ID))

	if format == "json" {
		return writeJSON(io.Writer, dto.MapInsertResultToResponse(result))
	}

	switch result.Outcome {
	case clipsDomain.Inserted:
		_, _ = fmt.Fprintf(io.Writer, "Added clip %d\n", result.ID)
	case clipsDomain.Deduped:
		_, _ = fmt.Fprintf(io.Writer, "Clip %d already holds this content\n", result.ID)
	default:
		_, _ = fmt.Fprintln(io.Writer, "Content was deleted moments ago and was not added")
	}
	return nil
}

func readAll(tuple IOTuple) (string, error) {
	data, err := io.ReadAll(tuple.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}
	return string(data), nil
}
