package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	backupDomain "github.com/celox/clipvault/internal/backup/domain"
	backupUseCase "github.com/celox/clipvault/internal/backup/usecase"
)

// BackupExtension is the file extension of backup containers.
const BackupExtension = ".cvbk"

// DefaultBackupName returns the file name used when export gets no path.
func DefaultBackupName(now time.Time) string {
	return "clipvault-" + now.Format("20060102-150405") + BackupExtension
}

// RunExport writes every clip into a password-protected backup file.
// The password is prompted for on io when empty.
func RunExport(
	ctx context.Context,
	backups backupUseCase.BackupUseCase,
	logger *slog.Logger,
	io IOTuple,
	path, password, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if path == "" {
		path = DefaultBackupName(time.Now())
	}
	if !strings.EqualFold(filepath.Ext(path), BackupExtension) {
		path += BackupExtension
	}

	password, err := promptLine(io, password, "Backup password: ")
	if err != nil {
		return err
	}
	if password == "" {
		return errors.New("backup password is required")
	}

	n, err := backups.ExportToFile(ctx, path, password)
	if err != nil {
		return backupError("export", err)
	}

	logger.Info("backup exported", slog.String("path", path), slog.Int("entries", n))

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{"path": path, "exported": n})
	}
	_, _ = fmt.Fprintf(io.Writer, "Exported %d clip(s) to %s\n", n, path)
	return nil
}

// RunImport adds the clips of a backup file that are not yet in the history.
func RunImport(
	ctx context.Context,
	backups backupUseCase.BackupUseCase,
	logger *slog.Logger,
	io IOTuple,
	path, password, format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if path == "" {
		return errors.New("backup file path is required")
	}

	password, err := promptLine(io, password, "Backup password: ")
	if err != nil {
		return err
	}

	n, err := backups.ImportFromFile(ctx, path, password)
	if err != nil {
		return backupError("import", err)
	}

	logger.Info("backup imported", slog.String("path", path), slog.Int("entries", n))

	if format == "json" {
		return writeJSON(io.Writer, map[string]any{"path": path, "imported": n})
	}
	_, _ = fmt.Fprintf(io.Writer, "Imported %d clip(s) from %s\n", n, path)
	return nil
}

// backupError prefixes err with the user-facing backup message when one exists.
func backupError(operation string, err error) error {
	msg := backupDomain.UserMessage(err)
	if msg == err.Error() {
		return fmt.Errorf("failed to %s backup: %w", operation, err)
	}
	return fmt.Errorf("failed to %s backup: %s: %w", operation, msg, err)
}
