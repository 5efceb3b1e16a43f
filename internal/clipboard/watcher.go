// Package clipboard feeds the system clipboard into the clip store.
//
// The Watcher polls at a fixed interval and hands every new clipboard text to
// the store's Insert; dedup and the delete cooldown are the store's business.
package clipboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/atotto/clipboard"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

// Reader reads the current clipboard text.
type Reader interface {
	Read() (string, error)
}

// Writer replaces the clipboard text.
type Writer interface {
	Write(content string) error
}

// Inserter is the clip store operation the watcher drives.
type Inserter interface {
	Insert(ctx context.Context, content string) (clipsDomain.InsertResult, error)
}

// System is the desktop clipboard.
type System struct{}

// Read returns the clipboard text.
func (System) Read() (string, error) {
	return clipboard.ReadAll()
}

// Write replaces the clipboard text.
func (System) Write(content string) error {
	return clipboard.WriteAll(content)
}

// Supported reports whether a clipboard backend is available on this system.
func Supported() bool {
	return !clipboard.Unsupported
}

// Watcher polls a Reader and inserts changed content.
type Watcher struct {
	reader   Reader
	store    Inserter
	interval time.Duration
	logger   *slog.Logger

	last string
}

// NewWatcher creates a Watcher polling reader every interval.
func NewWatcher(reader Reader, store Inserter, interval time.Duration, logger *slog.Logger) *Watcher {
	return &Watcher{
		reader:   reader,
		store:    store,
		interval: interval,
		logger:   logger,
	}
}

// Run polls until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("clipboard watcher started", slog.Duration("interval", w.interval))

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("clipboard watcher stopped")
			return nil
		case <-ticker.C:
			w.poll(ctx)
		}
	}
}

func (w *Watcher) poll(ctx context.Context) {
	content, err := w.reader.Read()
	if err != nil {
		w.logger.Debug("failed to read clipboard", slog.Any("error", err))
		return
	}
	if content == w.last || clipsDomain.IsBlank(content) {
		return
	}

	// last only advances on success so a failed insert is retried next tick.
	result, err := w.store.Insert(ctx, content)
	if err != nil {
		if ctx.Err() == nil {
			w.logger.Error("failed to store clipboard content", slog.Any("error", err))
		}
		return
	}
	w.last = content
	w.logger.Debug("clipboard content captured",
		slog.String("outcome", result.Outcome.String()),
		slog.Int64("id", result.ID),
	)
}
