// Package domain defines the clip history model: entries, insert outcomes and
// the delete cooldown that keeps the clipboard watcher from resurrecting a
// clip the user just removed.
package domain

import (
	"strings"
	"time"
)

// ClipEntry is one clipboard history row.
type ClipEntry struct {
	// ID is assigned by the database and always positive once stored.
	ID int64
	// Content is the clipboard text.
	Content string
	// Timestamp is the capture time in milliseconds since the Unix epoch.
	Timestamp int64
	// Pinned entries survive bulk deletes and auto-cleanup.
	Pinned bool
}

// CapturedAt returns Timestamp as a UTC time.
func (e *ClipEntry) CapturedAt() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}

// IsBlank reports whether content has nothing but whitespace.
func IsBlank(content string) bool {
	return strings.TrimSpace(content) == ""
}

// InsertOutcome tells what Insert did. Every outcome is a success.
type InsertOutcome int

const (
	// Inserted means a new row was written and older duplicates were removed.
	Inserted InsertOutcome = iota
	// Deduped means the latest entry already had this content.
	Deduped
	// Suppressed means the content was deleted moments ago and is in cooldown.
	Suppressed
)

func (o InsertOutcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Deduped:
		return "deduped"
	case Suppressed:
		return "suppressed"
	default:
		return "unknown"
	}
}

// InsertResult is the value returned by an insert.
type InsertResult struct {
	Outcome InsertOutcome
	// ID is the new row for Inserted, the existing latest row for Deduped and 0 for Suppressed.
	ID int64
}

// ListOptions filters and pages a listing. A zero Limit means no limit.
type ListOptions struct {
	Query  string
	Offset int
	Limit  int
}

// ImportEntry is an entry coming from a backup, without an ID.
type ImportEntry struct {
	Content   string
	Timestamp int64
	Pinned    bool
}
