package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	clipsUseCase "github.com/celox/clipvault/internal/clips/usecase"
	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoUseCase "github.com/celox/clipvault/internal/crypto/usecase"
)

// CleanupOptions controls RunCleanup.
type CleanupOptions struct {
	// Days replaces the stored retention when DaysSet is true. Zero disables auto-cleanup.
	Days    int
	DaysSet bool
	Format  string
	Now     func() time.Time
}

// RunCleanup deletes unpinned clips older than the auto-cleanup retention.
// Passing a retention stores it for later runs.
func RunCleanup(
	ctx context.Context,
	clipUseCase clipsUseCase.ClipUseCase,
	prefs cryptoUseCase.PreferenceRepository,
	logger *slog.Logger,
	writer io.Writer,
	opts CleanupOptions,
) error {
	if err := validateFormat(opts.Format); err != nil {
		return err
	}
	if opts.Days < 0 {
		return fmt.Errorf("days must be a positive number, got: %d", opts.Days)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	if opts.DaysSet {
		if err := prefs.PutInt(ctx, cryptoDomain.KeyAutoCleanupDays, opts.Days); err != nil {
			return fmt.Errorf("failed to store auto-cleanup retention: %w", err)
		}
	}

	days, err := prefs.GetInt(ctx, cryptoDomain.KeyAutoCleanupDays, 0)
	if err != nil {
		return fmt.Errorf("failed to read auto-cleanup retention: %w", err)
	}

	var count int64
	if days > 0 {
		cutoff := opts.Now().AddDate(0, 0, -days)
		count, err = clipUseCase.DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("failed to delete old clips: %w", err)
		}
		logger.Info("auto-cleanup completed", slog.Int64("count", count), slog.Int("days", days))
	}

	if opts.Format == "json" {
		return writeJSON(writer, map[string]any{
			"count":   count,
			"days":    days,
			"enabled": days > 0,
		})
	}
	if days == 0 {
		_, _ = fmt.Fprintln(writer, "Auto-cleanup is disabled")
		return nil
	}
	_, _ = fmt.Fprintf(writer, "Deleted %d unpinned clip(s) older than %d day(s)\n", count, days)
	return nil
}
