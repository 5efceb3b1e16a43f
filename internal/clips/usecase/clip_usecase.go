package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

// Option configures a ClipUseCase.
type Option func(*clipUseCase)

// WithClock replaces the wall clock used for timestamps and the cooldown.
func WithClock(clock Clock) Option {
	return func(u *clipUseCase) {
		u.now = clock
	}
}

// WithCooldown sets the delete cooldown window.
func WithCooldown(window time.Duration) Option {
	return func(u *clipUseCase) {
		u.cooldown = clipsDomain.NewCooldown(window)
	}
}

type clipUseCase struct {
	store  Store
	repo   ClipRepository
	logger *slog.Logger

	now      Clock
	cooldown *clipsDomain.Cooldown

	// insertLock is a one-slot semaphore so waiting for it honors ctx.
	insertLock chan struct{}
}

// NewClipUseCase creates a new ClipUseCase.
func NewClipUseCase(store Store, repo ClipRepository, logger *slog.Logger, opts ...Option) ClipUseCase {
	u := &clipUseCase{
		store:      store,
		repo:       repo,
		logger:     logger,
		now:        time.Now,
		cooldown:   clipsDomain.NewCooldown(clipsDomain.DefaultCooldown),
		insertLock: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *clipUseCase) lock(ctx context.Context) error {
	select {
	case u.insertLock <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (u *clipUseCase) unlock() {
	<-u.insertLock
}

func (u *clipUseCase) Insert(ctx context.Context, content string) (clipsDomain.InsertResult, error) {
	if clipsDomain.IsBlank(content) {
		return clipsDomain.InsertResult{}, clipsDomain.ErrEmptyContent
	}

	if err := u.lock(ctx); err != nil {
		return clipsDomain.InsertResult{}, err
	}
	defer u.unlock()

	now := u.now()
	if u.cooldown.Active(content, now) {
		u.logger.Debug("clip insert suppressed by delete cooldown",
			slog.Duration("window", u.cooldown.Window()))
		return clipsDomain.InsertResult{Outcome: clipsDomain.Suppressed}, nil
	}

	var latest *clipsDomain.ClipEntry
	err := u.store.Read(ctx, func(ctx context.Context) error {
		var err error
		latest, err = u.repo.Latest(ctx)
		if errors.Is(err, clipsDomain.ErrClipNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return clipsDomain.InsertResult{}, err
	}
	if latest != nil && latest.Content == content {
		return clipsDomain.InsertResult{Outcome: clipsDomain.Deduped, ID: latest.ID}, nil
	}

	entry := &clipsDomain.ClipEntry{Content: content, Timestamp: now.UnixMilli()}
	err = u.store.WithTx(ctx, func(ctx context.Context) error {
		if err := u.repo.Create(ctx, entry); err != nil {
			return err
		}
		_, err := u.repo.DeleteDuplicates(ctx, content, entry.ID)
		return err
	})
	if err != nil {
		return clipsDomain.InsertResult{}, err
	}
	return clipsDomain.InsertResult{Outcome: clipsDomain.Inserted, ID: entry.ID}, nil
}

func (u *clipUseCase) Delete(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	if entry.ID <= 0 {
		return clipsDomain.ErrInvalidClipID
	}

	if err := u.lock(ctx); err != nil {
		return err
	}
	defer u.unlock()

	u.cooldown.Arm(entry.Content, u.now())
	return u.store.WithTx(ctx, func(ctx context.Context) error {
		return u.repo.Delete(ctx, entry.ID)
	})
}

func (u *clipUseCase) DeleteAllUnpinned(ctx context.Context) (int64, error) {
	if err := u.lock(ctx); err != nil {
		return 0, err
	}
	defer u.unlock()

	var deleted int64
	err := u.store.WithTx(ctx, func(ctx context.Context) error {
		latest, err := u.repo.LatestUnpinned(ctx)
		switch {
		case err == nil:
			u.cooldown.Arm(latest.Content, u.now())
		case !errors.Is(err, clipsDomain.ErrClipNotFound):
			return err
		}

		deleted, err = u.repo.DeleteUnpinned(ctx)
		return err
	})
	return deleted, err
}

func (u *clipUseCase) DeleteBatch(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	if err := u.lock(ctx); err != nil {
		return 0, err
	}
	defer u.unlock()

	var deleted int64
	err := u.store.WithTx(ctx, func(ctx context.Context) error {
		entries, err := u.repo.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		// entries are in display order
		u.cooldown.Arm(entries[0].Content, u.now())

		deleted, err = u.repo.DeleteByIDs(ctx, ids)
		return err
	})
	return deleted, err
}

func (u *clipUseCase) ReInsert(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	if clipsDomain.IsBlank(entry.Content) {
		return clipsDomain.ErrEmptyContent
	}

	if err := u.lock(ctx); err != nil {
		return err
	}
	defer u.unlock()

	u.cooldown.Clear()
	return u.store.WithTx(ctx, func(ctx context.Context) error {
		if entry.ID <= 0 {
			return u.repo.Create(ctx, entry)
		}
		return u.repo.Restore(ctx, entry)
	})
}

func (u *clipUseCase) TogglePin(ctx context.Context, entry *clipsDomain.ClipEntry) (*clipsDomain.ClipEntry, error) {
	if err := u.lock(ctx); err != nil {
		return nil, err
	}
	defer u.unlock()

	var updated *clipsDomain.ClipEntry
	err := u.store.WithTx(ctx, func(ctx context.Context) error {
		stored, err := u.repo.Get(ctx, entry.ID)
		if err != nil {
			return err
		}
		stored.Pinned = !stored.Pinned
		if _, err := u.repo.SetPinned(ctx, []int64{stored.ID}, stored.Pinned); err != nil {
			return err
		}
		updated = stored
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (u *clipUseCase) SetPinned(ctx context.Context, ids []int64, pinned bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	if err := u.lock(ctx); err != nil {
		return 0, err
	}
	defer u.unlock()

	var n int64
	err := u.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		n, err = u.repo.SetPinned(ctx, ids, pinned)
		return err
	})
	return n, err
}

func (u *clipUseCase) Get(ctx context.Context, id int64) (*clipsDomain.ClipEntry, error) {
	var entry *clipsDomain.ClipEntry
	err := u.store.Read(ctx, func(ctx context.Context) error {
		var err error
		entry, err = u.repo.Get(ctx, id)
		return err
	})
	return entry, err
}

func (u *clipUseCase) List(ctx context.Context, opts clipsDomain.ListOptions) ([]*clipsDomain.ClipEntry, error) {
	var entries []*clipsDomain.ClipEntry
	err := u.store.Read(ctx, func(ctx context.Context) error {
		var err error
		entries, err = u.repo.List(ctx, opts)
		return err
	})
	return entries, err
}

func (u *clipUseCase) Latest(ctx context.Context) (*clipsDomain.ClipEntry, error) {
	var entry *clipsDomain.ClipEntry
	err := u.store.Read(ctx, func(ctx context.Context) error {
		var err error
		entry, err = u.repo.Latest(ctx)
		return err
	})
	return entry, err
}

func (u *clipUseCase) Count(ctx context.Context) (int64, error) {
	var n int64
	err := u.store.Read(ctx, func(ctx context.Context) error {
		var err error
		n, err = u.repo.Count(ctx)
		return err
	})
	return n, err
}

func (u *clipUseCase) Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error) {
	var entries []*clipsDomain.ClipEntry
	err := u.store.Read(ctx, func(ctx context.Context) error {
		var err error
		entries, err = u.repo.Snapshot(ctx)
		return err
	})
	return entries, err
}

func (u *clipUseCase) ImportEntries(ctx context.Context, entries []clipsDomain.ImportEntry) (int, error) {
	if err := u.lock(ctx); err != nil {
		return 0, err
	}
	defer u.unlock()

	imported := 0
	err := u.store.WithTx(ctx, func(ctx context.Context) error {
		for _, e := range entries {
			if clipsDomain.IsBlank(e.Content) {
				continue
			}
			exists, err := u.repo.ExistsByContentAndTimestamp(ctx, e.Content, e.Timestamp)
			if err != nil {
				return err
			}
			if exists {
				continue
			}
			entry := &clipsDomain.ClipEntry{Content: e.Content, Timestamp: e.Timestamp, Pinned: e.Pinned}
			if err := u.repo.Create(ctx, entry); err != nil {
				return err
			}
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

func (u *clipUseCase) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := u.lock(ctx); err != nil {
		return 0, err
	}
	defer u.unlock()

	var deleted int64
	err := u.store.WithTx(ctx, func(ctx context.Context) error {
		var err error
		deleted, err = u.repo.DeleteUnpinnedOlderThan(ctx, cutoff.UnixMilli())
		return err
	})
	return deleted, err
}
