package database

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/awnumar/memguard"
	_ "modernc.org/sqlite"

	cryptoDomain "github.com/celox/clipvault/internal/crypto/domain"
	cryptoService "github.com/celox/clipvault/internal/crypto/service"
)

const sqliteHeader = "SQLite format 3\x00"

// EngineConfig holds the sealing parameters of new database files.
type EngineConfig struct {
	KDFIterations int
	Algorithm     cryptoDomain.Algorithm
}

// SQLiteEngine keeps sealed databases entirely in memory and writes them back
// as encrypted snapshots. Plaintext files are opened in place.
type SQLiteEngine struct {
	cfg         EngineConfig
	aeadManager cryptoService.AEADManager
}

// NewSQLiteEngine creates a new SQLiteEngine.
func NewSQLiteEngine(cfg EngineConfig, aeadManager cryptoService.AEADManager) *SQLiteEngine {
	if cfg.Algorithm == "" {
		cfg.Algorithm = cryptoDomain.AESGCM
	}
	return &SQLiteEngine{cfg: cfg, aeadManager: aeadManager}
}

// Inspect reports what kind of file is at path.
func (e *SQLiteEngine) Inspect(path string) (FileKind, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return FileAbsent, nil
	}
	if err != nil {
		return FileAbsent, fmt.Errorf("failed to open database file: %w", err)
	}
	defer func() { _ = f.Close() }()

	head := make([]byte, len(sqliteHeader))
	n, err := io.ReadFull(f, head)
	switch {
	case n == 0 && (err == io.EOF || err == nil):
		return FileAbsent, nil
	case n >= len(sealedMagic) && bytes.Equal(head[:len(sealedMagic)], []byte(sealedMagic)):
		return FileSealed, nil
	case err == nil && string(head) == sqliteHeader:
		return FilePlain, nil
	case err != nil && err != io.ErrUnexpectedEOF:
		return FileAbsent, fmt.Errorf("failed to read database header: %w", err)
	default:
		return FileAbsent, ErrUnrecognizedFile
	}
}

// Open opens the database at path.
func (e *SQLiteEngine) Open(ctx context.Context, path, passphrase string) (Conn, error) {
	kind, err := e.Inspect(path)
	if err != nil {
		return nil, err
	}

	switch kind {
	case FilePlain:
		if passphrase != "" {
			return nil, ErrNotSealed
		}
		return e.openPlain(ctx, path)
	case FileSealed:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read sealed database: %w", err)
		}
		dump, key, err := unseal(e.aeadManager, data, passphrase, e.maxIterations())
		if err != nil {
			return nil, err
		}
		defer memguard.WipeBytes(dump)
		return e.openSealed(ctx, path, key, dump)
	default:
		key, err := newSealKey(passphrase, e.cfg.KDFIterations, e.cfg.Algorithm)
		if err != nil {
			return nil, err
		}
		return e.openSealed(ctx, path, key, nil)
	}
}

// Export copies src into a new sealed file at dst, the way an attach-and-export
// would: the destination holds the same schema and rows, sealed with dstPassphrase.
func (e *SQLiteEngine) Export(ctx context.Context, src, srcPassphrase, dst, dstPassphrase string) error {
	key, err := newSealKey(dstPassphrase, e.cfg.KDFIterations, e.cfg.Algorithm)
	if err != nil {
		return err
	}

	conn, err := e.Open(ctx, src, srcPassphrase)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	dump, err := dumpDatabase(ctx, conn.DB())
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(dump)

	sealed, err := key.seal(e.aeadManager, dump)
	if err != nil {
		return err
	}
	return writeFileAtomic(dst, sealed)
}

func (e *SQLiteEngine) openPlain(ctx context.Context, path string) (Conn, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open plain database: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping plain database: %w", err)
	}
	return &plainConn{db: db}, nil
}

// maxIterations bounds the KDF work a sealed header may request.
func (e *SQLiteEngine) maxIterations() uint32 {
	limit := uint64(minIterationsCeiling)
	if e.cfg.KDFIterations > 0 {
		limit = uint64(e.cfg.KDFIterations) * maxIterationsFactor
	}
	if limit < minIterationsCeiling {
		limit = minIterationsCeiling
	}
	if limit > math.MaxUint32 {
		limit = math.MaxUint32
	}
	return uint32(limit)
}

func (e *SQLiteEngine) openSealed(ctx context.Context, path string, key *sealKey, dump []byte) (Conn, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// The whole database lives in this single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if dump != nil {
		if err := restoreDatabase(ctx, db, dump); err != nil {
			_ = db.Close()
			return nil, err
		}
	} else if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping in-memory database: %w", err)
	}

	return &sealedConn{
		db:          db,
		path:        path,
		key:         key,
		aeadManager: e.aeadManager,
	}, nil
}

type plainConn struct {
	db *sql.DB
}

func (c *plainConn) DB() *sql.DB                   { return c.db }
func (c *plainConn) Kind() FileKind                { return FilePlain }
func (c *plainConn) Persist(context.Context) error { return nil }
func (c *plainConn) Close() error                  { return c.db.Close() }

type sealedConn struct {
	db          *sql.DB
	path        string
	key         *sealKey
	aeadManager cryptoService.AEADManager

	// persistMu serializes snapshot writes.
	persistMu sync.Mutex
}

func (c *sealedConn) DB() *sql.DB    { return c.db }
func (c *sealedConn) Kind() FileKind { return FileSealed }
func (c *sealedConn) Close() error   { return c.db.Close() }

func (c *sealedConn) Persist(ctx context.Context) error {
	c.persistMu.Lock()
	defer c.persistMu.Unlock()

	dump, err := dumpDatabase(ctx, c.db)
	if err != nil {
		return err
	}
	defer memguard.WipeBytes(dump)

	sealed, err := c.key.seal(c.aeadManager, dump)
	if err != nil {
		return err
	}
	return writeFileAtomic(c.path, sealed)
}

// writeFileAtomic writes data to path+"-journal" and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	tmp := path + "-journal"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create journal: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to write journal: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to sync journal: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to close journal: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace database file: %w", err)
	}
	return nil
}
