package usecase

import (
	"context"
	"log/slog"
	"os"

	backupDomain "github.com/celox/clipvault/internal/backup/domain"
	"github.com/celox/clipvault/internal/errors"
)

type backupUseCase struct {
	clips  ClipSource
	codec  Codec
	logger *slog.Logger
}

// NewBackupUseCase creates a new BackupUseCase.
func NewBackupUseCase(clips ClipSource, codec Codec, logger *slog.Logger) BackupUseCase {
	return &backupUseCase{
		clips:  clips,
		codec:  codec,
		logger: logger,
	}
}

func (b *backupUseCase) Export(ctx context.Context, password string) ([]byte, int, error) {
	if password == "" {
		return nil, 0, backupDomain.ErrEmptyPassword
	}

	clips, err := b.clips.Snapshot(ctx)
	if err != nil {
		return nil, 0, err
	}

	entries := backupDomain.EntriesFromClips(clips)
	data, err := b.codec.Encode(entries, password)
	if err != nil {
		return nil, 0, err
	}
	return data, len(entries), nil
}

func (b *backupUseCase) Import(ctx context.Context, data []byte, password string) (int, error) {
	doc, err := b.codec.DecodeDocument(data, password)
	if err != nil {
		return 0, err
	}

	valid := make([]backupDomain.Entry, 0, len(doc.Entries))
	for i, entry := range doc.Entries {
		if err := entry.Validate(); err != nil {
			b.logger.Warn("skipping invalid backup entry", slog.Int("index", i), slog.Any("error", err))
			continue
		}
		valid = append(valid, entry)
	}

	imported, err := b.clips.ImportEntries(ctx, backupDomain.ImportEntries(valid))
	if err != nil {
		return 0, err
	}

	b.logger.Info("backup imported",
		slog.Int("entries", len(doc.Entries)),
		slog.Int("imported", imported),
		slog.String("exported_at", doc.ExportedAt),
	)
	return imported, nil
}

func (b *backupUseCase) ExportToFile(ctx context.Context, path, password string) (int, error) {
	data, n, err := b.Export(ctx, password)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return 0, errors.Wrap(err, "failed to write backup file")
	}
	return n, nil
}

func (b *backupUseCase) ImportFromFile(ctx context.Context, path, password string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read backup file")
	}
	return b.Import(ctx, data, password)
}
