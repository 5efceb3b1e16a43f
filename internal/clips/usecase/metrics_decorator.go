package usecase

import (
	"context"
	"time"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/metrics"
)

// clipUseCaseWithMetrics decorates ClipUseCase with metrics instrumentation.
type clipUseCaseWithMetrics struct {
	next    ClipUseCase
	metrics metrics.BusinessMetrics
}

// NewClipUseCaseWithMetrics wraps a ClipUseCase with metrics recording.
func NewClipUseCaseWithMetrics(useCase ClipUseCase, m metrics.BusinessMetrics) ClipUseCase {
	return &clipUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (c *clipUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	metrics.Observe(ctx, c.metrics, "clips", operation, start, err)
}

// Insert records metrics for clip inserts. Suppressed and deduped inserts get their own operation name.
func (c *clipUseCaseWithMetrics) Insert(ctx context.Context, content string) (clipsDomain.InsertResult, error) {
	start := time.Now()
	result, err := c.next.Insert(ctx, content)

	operation := "clip_insert"
	if err == nil && result.Outcome != clipsDomain.Inserted {
		operation = "clip_insert_" + result.Outcome.String()
	}
	c.record(ctx, operation, start, err)

	return result, err
}

// Delete records metrics for single clip deletes.
func (c *clipUseCaseWithMetrics) Delete(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	start := time.Now()
	err := c.next.Delete(ctx, entry)
	c.record(ctx, "clip_delete", start, err)
	return err
}

// DeleteAllUnpinned records metrics for clearing the history.
func (c *clipUseCaseWithMetrics) DeleteAllUnpinned(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := c.next.DeleteAllUnpinned(ctx)
	c.record(ctx, "clip_delete_unpinned", start, err)
	return n, err
}

// DeleteBatch records metrics for batch deletes.
func (c *clipUseCaseWithMetrics) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	start := time.Now()
	n, err := c.next.DeleteBatch(ctx, ids)
	c.record(ctx, "clip_delete_batch", start, err)
	return n, err
}

// ReInsert records metrics for undo operations.
func (c *clipUseCaseWithMetrics) ReInsert(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	start := time.Now()
	err := c.next.ReInsert(ctx, entry)
	c.record(ctx, "clip_reinsert", start, err)
	return err
}

// TogglePin records metrics for pin toggles.
func (c *clipUseCaseWithMetrics) TogglePin(
	ctx context.Context,
	entry *clipsDomain.ClipEntry,
) (*clipsDomain.ClipEntry, error) {
	start := time.Now()
	updated, err := c.next.TogglePin(ctx, entry)
	c.record(ctx, "clip_toggle_pin", start, err)
	return updated, err
}

// SetPinned records metrics for batch pin updates.
func (c *clipUseCaseWithMetrics) SetPinned(ctx context.Context, ids []int64, pinned bool) (int64, error) {
	start := time.Now()
	n, err := c.next.SetPinned(ctx, ids, pinned)
	c.record(ctx, "clip_set_pinned", start, err)
	return n, err
}

// Get records metrics for clip lookups.
func (c *clipUseCaseWithMetrics) Get(ctx context.Context, id int64) (*clipsDomain.ClipEntry, error) {
	start := time.Now()
	entry, err := c.next.Get(ctx, id)
	c.record(ctx, "clip_get", start, err)
	return entry, err
}

// List records metrics for listings.
func (c *clipUseCaseWithMetrics) List(
	ctx context.Context,
	opts clipsDomain.ListOptions,
) ([]*clipsDomain.ClipEntry, error) {
	start := time.Now()
	entries, err := c.next.List(ctx, opts)
	c.record(ctx, "clip_list", start, err)
	return entries, err
}

// Latest records metrics for latest-entry lookups.
func (c *clipUseCaseWithMetrics) Latest(ctx context.Context) (*clipsDomain.ClipEntry, error) {
	start := time.Now()
	entry, err := c.next.Latest(ctx)
	c.record(ctx, "clip_latest", start, err)
	return entry, err
}

// Count records metrics for counts.
func (c *clipUseCaseWithMetrics) Count(ctx context.Context) (int64, error) {
	start := time.Now()
	n, err := c.next.Count(ctx)
	c.record(ctx, "clip_count", start, err)
	return n, err
}

// Snapshot records metrics for full snapshots.
func (c *clipUseCaseWithMetrics) Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error) {
	start := time.Now()
	entries, err := c.next.Snapshot(ctx)
	c.record(ctx, "clip_snapshot", start, err)
	return entries, err
}

// ImportEntries records metrics for imports.
func (c *clipUseCaseWithMetrics) ImportEntries(ctx context.Context, entries []clipsDomain.ImportEntry) (int, error) {
	start := time.Now()
	n, err := c.next.ImportEntries(ctx, entries)
	c.record(ctx, "clip_import", start, err)
	return n, err
}

// DeleteOlderThan records metrics for auto-cleanup.
func (c *clipUseCaseWithMetrics) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	start := time.Now()
	n, err := c.next.DeleteOlderThan(ctx, cutoff)
	c.record(ctx, "clip_cleanup", start, err)
	return n, err
}
