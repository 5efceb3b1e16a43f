// Package usecase exports the clip history into password-protected backups and
// imports backups back into it.
package usecase

import (
	"context"

	backupDomain "github.com/celox/clipvault/internal/backup/domain"
	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

// ClipSource is the part of the clip store a backup reads from and writes to.
type ClipSource interface {
	Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error)
	ImportEntries(ctx context.Context, entries []clipsDomain.ImportEntry) (int, error)
}

// Codec seals and opens backup containers.
type Codec interface {
	Encode(entries []backupDomain.Entry, password string) ([]byte, error)
	DecodeDocument(data []byte, password string) (*backupDomain.Document, error)
}

// BackupUseCase defines the interface for backup export and import.
type BackupUseCase interface {
	// Export seals every stored clip with password and returns the container and the entry count.
	Export(ctx context.Context, password string) ([]byte, int, error)

	// Import opens data with password and adds the entries not yet stored. It returns how many were added.
	Import(ctx context.Context, data []byte, password string) (int, error)

	// ExportToFile writes an export to path with owner-only permissions.
	ExportToFile(ctx context.Context, path, password string) (int, error)

	// ImportFromFile reads a container from path and imports it.
	ImportFromFile(ctx context.Context, path, password string) (int, error)
}
