package usecase

import (
	"context"
	"time"

	"github.com/celox/clipvault/internal/metrics"
)

type backupUseCaseWithMetrics struct {
	next    BackupUseCase
	metrics metrics.BusinessMetrics
}

// NewBackupUseCaseWithMetrics records every backup operation under the "backup" domain.
func NewBackupUseCaseWithMetrics(useCase BackupUseCase, m metrics.BusinessMetrics) BackupUseCase {
	return &backupUseCaseWithMetrics{next: useCase, metrics: m}
}

func (b *backupUseCaseWithMetrics) observe(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, b.metrics, "backup", operation, start, err)
}

func (b *backupUseCaseWithMetrics) Export(ctx context.Context, password string) ([]byte, int, error) {
	start := time.Now()
	data, n, err := b.next.Export(ctx, password)
	b.observe(ctx, "backup_export", start, err)
	return data, n, err
}

func (b *backupUseCaseWithMetrics) Import(ctx context.Context, data []byte, password string) (int, error) {
	start := time.Now()
	n, err := b.next.Import(ctx, data, password)
	b.observe(ctx, "backup_import", start, err)
	return n, err
}

func (b *backupUseCaseWithMetrics) ExportToFile(ctx context.Context, path, password string) (int, error) {
	start := time.Now()
	n, err := b.next.ExportToFile(ctx, path, password)
	b.observe(ctx, "backup_export_file", start, err)
	return n, err
}

func (b *backupUseCaseWithMetrics) ImportFromFile(ctx context.Context, path, password string) (int, error) {
	start := time.Now()
	n, err := b.next.ImportFromFile(ctx, path, password)
	b.observe(ctx, "backup_import_file", start, err)
	return n, err
}
