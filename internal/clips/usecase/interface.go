// Package usecase implements the clip store: insertion with dedup and delete
// cooldown, batch edits, listing, import and auto-cleanup.
//
// Every mutation runs under one insert lock so a clipboard watcher polling in
// the background cannot interleave with a user delete.
package usecase

import (
	"context"
	"time"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

// ClipRepository defines the interface for ClipEntry persistence operations.
type ClipRepository interface {
	Create(ctx context.Context, entry *clipsDomain.ClipEntry) error
	Restore(ctx context.Context, entry *clipsDomain.ClipEntry) error
	Get(ctx context.Context, id int64) (*clipsDomain.ClipEntry, error)
	Latest(ctx context.Context) (*clipsDomain.ClipEntry, error)
	LatestUnpinned(ctx context.Context) (*clipsDomain.ClipEntry, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*clipsDomain.ClipEntry, error)
	Delete(ctx context.Context, id int64) error
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteDuplicates(ctx context.Context, content string, keepID int64) (int64, error)
	DeleteUnpinned(ctx context.Context) (int64, error)
	DeleteUnpinnedOlderThan(ctx context.Context, cutoff int64) (int64, error)
	SetPinned(ctx context.Context, ids []int64, pinned bool) (int64, error)
	List(ctx context.Context, opts clipsDomain.ListOptions) ([]*clipsDomain.ClipEntry, error)
	Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error)
	Count(ctx context.Context) (int64, error)
	ExistsByContentAndTimestamp(ctx context.Context, content string, timestamp int64) (bool, error)
}

// Store runs callbacks against the open clip database.
//
// database.Handle implements it: Read keeps the database open for the
// duration of fn, WithTx also commits and persists the sealed snapshot.
type Store interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Clock returns the current time.
type Clock func() time.Time

// ClipUseCase defines the interface for clip history business logic.
type ClipUseCase interface {
	// Insert stores content unless it is in cooldown or equal to the latest entry.
	Insert(ctx context.Context, content string) (clipsDomain.InsertResult, error)

	// Delete arms the cooldown for the entry's content, then deletes it.
	Delete(ctx context.Context, entry *clipsDomain.ClipEntry) error

	// DeleteAllUnpinned arms the cooldown for the newest unpinned entry, then deletes all unpinned entries.
	DeleteAllUnpinned(ctx context.Context) (int64, error)

	// DeleteBatch arms the cooldown for the first selected entry in display order, then deletes the selection.
	DeleteBatch(ctx context.Context, ids []int64) (int64, error)

	// ReInsert clears the cooldown and writes entry back unchanged (undo).
	ReInsert(ctx context.Context, entry *clipsDomain.ClipEntry) error

	// TogglePin flips the stored pinned flag of entry and returns the updated entry.
	TogglePin(ctx context.Context, entry *clipsDomain.ClipEntry) (*clipsDomain.ClipEntry, error)

	// SetPinned pins or unpins several entries.
	SetPinned(ctx context.Context, ids []int64, pinned bool) (int64, error)

	Get(ctx context.Context, id int64) (*clipsDomain.ClipEntry, error)
	List(ctx context.Context, opts clipsDomain.ListOptions) ([]*clipsDomain.ClipEntry, error)
	Latest(ctx context.Context) (*clipsDomain.ClipEntry, error)
	Count(ctx context.Context) (int64, error)

	// Snapshot returns every entry newest first, for export.
	Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error)

	// ImportEntries inserts entries whose content and timestamp pair is not yet stored.
	ImportEntries(ctx context.Context, entries []clipsDomain.ImportEntry) (int, error)

	// DeleteOlderThan removes unpinned entries captured before cutoff.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
