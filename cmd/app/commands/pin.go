package commands

import (
	"context"
	"fmt"
	"io"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/clips/http/dto"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
)

// RunTogglePin flips the pin state of one clip.
func RunTogglePin(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	writer io.Writer,
	id int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	updated, err := clipUseCase.TogglePin(ctx, &clipsDomain.ClipEntry{ID: id})
	if err != nil {
		return fmt.Errorf("failed to toggle pin: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, dto.MapClipToResponse(updated))
	}
	if updated.Pinned {
		_, _ = fmt.Fprintf(writer, "Pinned clip %d\n", updated.ID)
	} else {
		_, _ = fmt.Fprintf(writer, "Unpinned clip %d\n", updated.ID)
	}
	return nil
}

// RunSetPinned pins or unpins several clips at once.
func RunSetPinned(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	writer io.Writer,
	ids []int64,
	pinned bool,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	for _, id := range ids {
		if id <= 0 {
			return clipsDomain.ErrInvalidClipID
		}
	}

	n, err := clipUseCase.SetPinned(ctx, ids, pinned)
	if err != nil {
		return fmt.Errorf("failed to update pins: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, dto.AffectedResponse{Affected: n})
	}
	verb := "Unpinned"
	if pinned {
		verb = "Pinned"
	}
	_, _ = fmt.Fprintf(writer, "%s %d clip(s)\n", verb, n)
	return nil
}
