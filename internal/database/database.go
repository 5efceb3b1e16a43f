// Package database provides the encrypted clip database: the sealed SQLite
// engine, the explicitly owned Handle and transaction utilities.
package database

import (
	"context"
	"database/sql"
	"errors"
	"os"

	apperrors "github.com/celox/clipvault/internal/errors"
)

// FileKind describes what is found at a database path.
type FileKind int

const (
	// FileAbsent means no database file exists (or it is empty).
	FileAbsent FileKind = iota
	// FilePlain is an ordinary, unencrypted SQLite file.
	FilePlain
	// FileSealed is an encrypted snapshot in the CVDB format.
	FileSealed
)

func (k FileKind) String() string {
	switch k {
	case FileAbsent:
		return "absent"
	case FilePlain:
		return "plain"
	case FileSealed:
		return "sealed"
	default:
		return "unknown"
	}
}

// Database errors.
var (
	// ErrNotOpen indicates an operation on a closed Handle.
	ErrNotOpen = apperrors.Wrap(apperrors.ErrUnavailable, "database is not open")

	// ErrWrongPassphrase indicates the sealed file could not be authenticated with the passphrase.
	ErrWrongPassphrase = apperrors.Wrap(apperrors.ErrUnauthorized, "wrong database passphrase")

	// ErrCorruptDatabase indicates a sealed file with a malformed header.
	ErrCorruptDatabase = apperrors.Wrap(apperrors.ErrInvalidInput, "corrupt database file")

	// ErrUnsupportedFormat indicates a sealed file written by a newer format version.
	ErrUnsupportedFormat = apperrors.Wrap(apperrors.ErrInvalidInput, "unsupported database format")

	// ErrUnrecognizedFile indicates a file that is neither SQLite nor sealed.
	ErrUnrecognizedFile = apperrors.Wrap(apperrors.ErrInvalidInput, "unrecognized database file")

	// ErrPassphraseRequired indicates a sealed operation was attempted without a passphrase.
	ErrPassphraseRequired = apperrors.Wrap(apperrors.ErrInvalidInput, "passphrase required")

	// ErrNotSealed indicates a passphrase was supplied for a plaintext file.
	ErrNotSealed = apperrors.Wrap(apperrors.ErrConflict, "database file is not sealed")
)

// Engine opens and converts encrypted database files.
type Engine interface {
	// Open opens the database at path. A passphrase opens (or creates) a
	// sealed database; an empty passphrase opens a plaintext file.
	Open(ctx context.Context, path, passphrase string) (Conn, error)

	// Export copies the database at src into a new sealed file at dst.
	// srcPassphrase is empty for a plaintext source.
	Export(ctx context.Context, src, srcPassphrase, dst, dstPassphrase string) error

	// Inspect reports what kind of file is at path.
	Inspect(path string) (FileKind, error)
}

// Conn is an open database produced by an Engine.
type Conn interface {
	// DB returns the connection pool. It is valid until Close.
	DB() *sql.DB

	// Kind reports whether the connection is sealed or plain.
	Kind() FileKind

	// Persist writes the current state to disk. It is a no-op for plain files.
	Persist(ctx context.Context) error

	// Close releases the connection without persisting.
	Close() error
}

// SideFiles lists the auxiliary files SQLite may leave next to path.
func SideFiles(path string) []string {
	return []string{path + "-wal", path + "-shm", path + "-journal"}
}

// RemoveSideFiles deletes the auxiliary files of path. Missing files are ignored.
func RemoveSideFiles(path string) error {
	var errs []error
	for _, f := range SideFiles(path) {
		if err := os.Remove(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
