package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/clips/http/dto"
	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoUseCase "github.com/celox/clipvault/internal/crypto/usecase"
)

// ErrNothingToUndo is returned by RunUndo when no deleted clip is remembered.
var ErrNothingToUndo = errors.New("nothing to undo")

// deletedClip is the undo record. It is kept encrypted in the secret store
// because it holds clipboard content.
type deletedClip struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Pinned    bool   `json:"pinned"`
}

// RunDelete removes one clip and remembers it so RunUndo can restore it.
// The clip's content is held back from the clipboard watcher for the delete cooldown.
func RunDelete(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	secrets cryptoUseCase.SecretStore,
	logger *slog.Logger,
	writer io.Writer,
	id int64,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	entry, err := clipUseCase.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get clip: %w", err)
	}

	if err := clipUseCase.Delete(ctx, entry); err != nil {
		return fmt.Errorf("failed to delete clip: %w", err)
	}

	record, err := json.Marshal(deletedClip{
		ID:        entry.ID,
		Content:   entry.Content,
		Timestamp: entry.Timestamp,
		Pinned:    entry.Pinned,
	})
	if err != nil {
		return fmt.Errorf("failed to encode undo record: %w", err)
	}
	if err := secrets.Store(ctx, cryptoDomain.KeyLastDeleted, string(record)); err != nil {
		// The delete itself succeeded.
		logger.Warn("failed to remember deleted clip for undo", slog.Any("error", err))
	}

	if format == "json" {
		return writeJSON(writer, dto.MapClipToResponse(entry))
	}
	_, _ = fmt.Fprintf(writer, "Deleted clip %d (run 'undo' to restore it)\n", entry.ID)
	return nil
}

// RunUndo restores the clip removed by the last RunDelete with its original
// ID, timestamp and pin state, then forgets it.
func RunUndo(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	secrets cryptoUseCase.SecretStore,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	raw, ok, err := secrets.Retrieve(ctx, cryptoDomain.KeyLastDeleted)
	if err != nil {
		return fmt.Errorf("failed to read undo record: %w", err)
	}
	if !ok {
		return ErrNothingToUndo
	}

	var record deletedClip
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		_ = secrets.Clear(ctx, cryptoDomain.KeyLastDeleted)
		return fmt.Errorf("failed to decode undo record: %w", err)
	}

	entry := &clipsDomain.ClipEntry{
		ID:        record.ID,
		Content:   record.Content,
		Timestamp: record.Timestamp,
		Pinned:    record.Pinned,
	}
	if err := clipUseCase.ReInsert(ctx, entry); err != nil {
		return fmt.Errorf("failed to restore clip: %w", err)
	}

	if err := secrets.Clear(ctx, cryptoDomain.KeyLastDeleted); err != nil {
		return fmt.Errorf("failed to clear undo record: %w", err)
	}

	if format == "json" {
		return writeJSON(writer, dto.MapClipToResponse(entry))
	}
	_, _ = fmt.Fprintf(writer, "Restored clip %d\n", entry.ID)
	return nil
}
