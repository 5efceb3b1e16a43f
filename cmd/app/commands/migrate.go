package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	migrationUseCase "github.com/celox/clipvault/internal/migration/usecase"
)

// KeyTierReporter reports which keystore tier wraps the master key.
type KeyTierReporter interface {
	Tier(ctx context.Context) (cryptoDomain.Tier, bool, error)
}

// RunMigrate runs the startup migration once and reports the path it took
// along with the master key tier. An aborted attempt is an error; the
// migration flag stays false and the next start retries.
func RunMigrate(
	ctx context.Context,
	migration migrationUseCase.MigrationUseCase,
	keys KeyTierReporter,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	result := migration.Run(ctx)

	tier := "none"
	if t, ok, err := keys.Tier(ctx); err != nil {
		logger.Warn("failed to read master key tier", slog.Any("error", err))
		tier = "unknown"
	} else if ok {
		tier = string(t)
	}

	logger.Info("migration attempt finished",
		slog.String("attempt_id", result.AttemptID.String()),
		slog.String("path", result.Path.String()),
		slog.Bool("migrated", result.Migrated),
		slog.String("master_key_tier", tier),
		slog.Duration("duration", result.Duration),
	)

	if format == "json" {
		out := map[string]any{
			"attempt_id": result.AttemptID.String(),
			"path":       result.Path.String(),
			"migrated":   result.Migrated,
			"aborted":    result.Aborted,
			"key_tier":   tier,
		}
		if result.Err != nil {
			out["error"] = result.Err.Error()
		}
		if err := writeJSON(writer, out); err != nil {
			return err
		}
	} else if !result.Aborted {
		_, _ = fmt.Fprintf(writer, "Migration completed (path: %s, master key tier: %s)\n", result.Path, tier)
	}

	if result.Aborted {
		return fmt.Errorf("migration aborted: %w", result.Err)
	}
	return nil
}
