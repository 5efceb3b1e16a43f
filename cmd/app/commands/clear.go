package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/celox/clipvault/internal/clips/http/dto"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
)

// RunClear deletes every unpinned clip. Pinned clips are kept.
func RunClear(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	n, err := clipUseCase.DeleteAllUnpinned(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	logger.Info("history cleared", slog.Int64("count", n))

	if format == "json" {
		return writeJSON(writer, dto.AffectedResponse{Affected: n})
	}
	_, _ = fmt.Fprintf(writer, "Deleted %d unpinned clip(s)\n", n)
	return nil
}
