package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// PassphraseSource yields the current database passphrase, creating it on first use.
type PassphraseSource interface {
	GetOrCreate(ctx context.Context) (string, error)
}

// Migrator upgrades on-disk state before the database is opened.
type Migrator interface {
	Migrate(ctx context.Context) error
}

// Handle owns the open clip database. Open, Close and the startup migration run
// under the write lock; reads and transactions run under the read lock.
// A Handle is opened once and closed once.
type Handle struct {
	mu sync.RWMutex

	engine      Engine
	passphrases PassphraseSource
	migrator    Migrator
	path        string
	logger      *slog.Logger

	conn      Conn
	txManager TxManager
}

// NewHandle creates a closed Handle for the database at path. migrator may be nil.
func NewHandle(
	engine Engine,
	passphrases PassphraseSource,
	migrator Migrator,
	path string,
	logger *slog.Logger,
) *Handle {
	return &Handle{
		engine:      engine,
		passphrases: passphrases,
		migrator:    migrator,
		path:        path,
		logger:      logger,
	}
}

// Open runs the startup migration, then opens the database with the current
// passphrase and applies the schema. Opening an open Handle is a no-op.
func (h *Handle) Open(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn != nil {
		return nil
	}

	if h.migrator != nil {
		if err := h.migrator.Migrate(ctx); err != nil {
			h.logger.Warn("startup migration did not complete", slog.Any("error", err))
		}
	}

	kind, err := h.engine.Inspect(h.path)
	if err != nil {
		return err
	}

	var passphrase string
	if kind == FilePlain {
		h.logger.Warn("database file is not sealed, opening it in plaintext", slog.String("path", h.path))
	} else {
		passphrase, err = h.passphrases.GetOrCreate(ctx)
		if err != nil {
			return fmt.Errorf("failed to obtain database passphrase: %w", err)
		}
	}

	conn, err := h.engine.Open(ctx, h.path, passphrase)
	if err != nil {
		return err
	}

	if err := MigrateSchema(ctx, conn.DB()); err != nil {
		_ = conn.Close()
		return err
	}
	if err := conn.Persist(ctx); err != nil {
		_ = conn.Close()
		return err
	}

	h.conn = conn
	h.txManager = NewTxManager(conn.DB())

	h.logger.Debug("database opened", slog.String("path", h.path), slog.String("kind", conn.Kind().String()))
	return nil
}

// Close persists and releases the database. Closing a closed Handle is a no-op.
func (h *Handle) Close(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.conn == nil {
		return nil
	}

	persistErr := h.conn.Persist(ctx)
	closeErr := h.conn.Close()
	h.conn = nil
	h.txManager = nil
	return errors.Join(persistErr, closeErr)
}

// DB returns the connection pool of the open database, or nil when closed.
func (h *Handle) DB() *sql.DB {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.conn == nil {
		return nil
	}
	return h.conn.DB()
}

// Kind reports whether the open database is sealed or plain.
func (h *Handle) Kind() (FileKind, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.conn == nil {
		return FileAbsent, ErrNotOpen
	}
	return h.conn.Kind(), nil
}

// Read runs fn while the database is guaranteed to stay open.
func (h *Handle) Read(ctx context.Context, fn func(ctx context.Context) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.conn == nil {
		return ErrNotOpen
	}
	return fn(ctx)
}

// WithTx runs fn in a transaction and persists the sealed snapshot after a successful commit.
func (h *Handle) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.conn == nil {
		return ErrNotOpen
	}
	if err := h.txManager.WithTx(ctx, fn); err != nil {
		return err
	}
	return h.conn.Persist(ctx)
}

// Ping checks that the database is open and answering queries.
func (h *Handle) Ping(ctx context.Context) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.conn == nil {
		return ErrNotOpen
	}
	return h.conn.DB().PingContext(ctx)
}
