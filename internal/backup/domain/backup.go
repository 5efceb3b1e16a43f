// Package domain defines the encrypted clip backup: the document carried inside
// a container, its entries and the errors a user sees when a file is rejected.
package domain

import (
	"time"

	validation "github.com/jellydator/validation"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
)

const (
	// FileExtension is the extension of backup files.
	FileExtension = ".cvbk"

	// DocumentVersion is the version of the JSON document inside a container.
	DocumentVersion = 1

	// ExportedAtLayout formats Document.ExportedAt, always in UTC.
	ExportedAtLayout = "2006-01-02T15:04:05Z"
)

// Entry is one clip in a backup.
type Entry struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"`
	Pinned    bool   `json:"pinned"`
}

// Validate checks that the entry can be imported.
func (e Entry) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Content, validation.Required),
		validation.Field(&e.Timestamp, validation.Min(int64(0))),
	)
}

// Document is the plaintext carried by a container.
type Document struct {
	Version    int     `json:"version"`
	ExportedAt string  `json:"exportedAt"`
	Entries    []Entry `json:"entries"`
}

// NewDocument builds a version 1 document stamped with exportedAt.
func NewDocument(entries []Entry, exportedAt time.Time) *Document {
	if entries == nil {
		entries = []Entry{}
	}
	return &Document{
		Version:    DocumentVersion,
		ExportedAt: exportedAt.UTC().Format(ExportedAtLayout),
		Entries:    entries,
	}
}

// EntriesFromClips converts stored clips to backup entries, keeping their order.
func EntriesFromClips(clips []*clipsDomain.ClipEntry) []Entry {
	entries := make([]Entry, 0, len(clips))
	for _, c := range clips {
		entries = append(entries, Entry{Content: c.Content, Timestamp: c.Timestamp, Pinned: c.Pinned})
	}
	return entries
}

// ImportEntries converts backup entries to clip import entries.
func ImportEntries(entries []Entry) []clipsDomain.ImportEntry {
	out := make([]clipsDomain.ImportEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, clipsDomain.ImportEntry{Content: e.Content, Timestamp: e.Timestamp, Pinned: e.Pinned})
	}
	return out
}
