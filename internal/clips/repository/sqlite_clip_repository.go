// Package repository implements clip persistence on the SQLite clip database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	clipsDomain "github.com/celox/clipvault/internal/clips/domain"
	"github.com/celox/clipvault/internal/database"
	apperrors "github.com/celox/clipvault/internal/errors"
)

const clipColumns = "id, content, timestamp, pinned"

// SQLiteClipRepository implements ClipEntry persistence for SQLite databases.
type SQLiteClipRepository struct {
	db *sql.DB
}

// NewSQLiteClipRepository creates a new SQLite clip repository instance.
func NewSQLiteClipRepository(db *sql.DB) *SQLiteClipRepository {
	return &SQLiteClipRepository{db: db}
}

// Create inserts a new entry and sets its ID.
func (r *SQLiteClipRepository) Create(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	querier := database.GetTx(ctx, r.db)

	res, err := querier.ExecContext(
		ctx,
		`INSERT INTO clip_entries (content, timestamp, pinned) VALUES (?, ?, ?)`,
		entry.Content,
		entry.Timestamp,
		entry.Pinned,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create clip")
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Wrap(err, "failed to read clip id")
	}
	entry.ID = id
	return nil
}

// Restore writes entry back with its original ID, replacing any row holding that ID.
func (r *SQLiteClipRepository) Restore(ctx context.Context, entry *clipsDomain.ClipEntry) error {
	querier := database.GetTx(ctx, r.db)

	_, err := querier.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO clip_entries (id, content, timestamp, pinned) VALUES (?, ?, ?, ?)`,
		entry.ID,
		entry.Content,
		entry.Timestamp,
		entry.Pinned,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to restore clip")
	}
	return nil
}

// Get retrieves an entry by ID.
func (r *SQLiteClipRepository) Get(ctx context.Context, id int64) (*clipsDomain.ClipEntry, error) {
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + clipColumns + ` FROM clip_entries WHERE id = ?`
	entry, err := scanClip(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clipsDomain.ErrClipNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get clip")
	}
	return entry, nil
}

// Latest retrieves the most recent entry, or ErrClipNotFound when the history is empty.
func (r *SQLiteClipRepository) Latest(ctx context.Context) (*clipsDomain.ClipEntry, error) {
	return r.latest(ctx, `SELECT `+clipColumns+` FROM clip_entries ORDER BY timestamp DESC, id DESC LIMIT 1`)
}

// LatestUnpinned retrieves the most recent unpinned entry.
func (r *SQLiteClipRepository) LatestUnpinned(ctx context.Context) (*clipsDomain.ClipEntry, error) {
	return r.latest(
		ctx,
		`SELECT `+clipColumns+` FROM clip_entries WHERE pinned = 0 ORDER BY timestamp DESC, id DESC LIMIT 1`,
	)
}

func (r *SQLiteClipRepository) latest(ctx context.Context, query string) (*clipsDomain.ClipEntry, error) {
	querier := database.GetTx(ctx, r.db)

	entry, err := scanClip(querier.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, clipsDomain.ErrClipNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get latest clip")
	}
	return entry, nil
}

// GetByIDs retrieves the entries with the given IDs in display order: pinned
// first, then newest first. Unknown IDs are skipped.
func (r *SQLiteClipRepository) GetByIDs(ctx context.Context, ids []int64) ([]*clipsDomain.ClipEntry, error) {
	if len(ids) == 0 {
		return []*clipsDomain.ClipEntry{}, nil
	}
	querier := database.GetTx(ctx, r.db)

	query := `SELECT ` + clipColumns + ` FROM clip_entries WHERE id IN (` + placeholders(len(ids)) + `)
			  ORDER BY pinned DESC, timestamp DESC, id DESC`

	rows, err := querier.QueryContext(ctx, query, int64Args(ids)...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to get clips by ids")
	}
	return collectClips(rows)
}

// Delete removes the entry with the given ID. Deleting a missing entry is not an error.
func (r *SQLiteClipRepository) Delete(ctx context.Context, id int64) error {
	querier := database.GetTx(ctx, r.db)

	if _, err := querier.ExecContext(ctx, `DELETE FROM clip_entries WHERE id = ?`, id); err != nil {
		return apperrors.Wrap(err, "failed to delete clip")
	}
	return nil
}

// DeleteByIDs removes the entries with the given IDs.
func (r *SQLiteClipRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, r.db)

	query := `DELETE FROM clip_entries WHERE id IN (` + placeholders(len(ids)) + `)`
	return exec(ctx, querier, "failed to delete clips", query, int64Args(ids)...)
}

// DeleteDuplicates removes every entry with content except keepID.
func (r *SQLiteClipRepository) DeleteDuplicates(ctx context.Context, content string, keepID int64) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	return exec(ctx, querier, "failed to delete duplicate clips",
		`DELETE FROM clip_entries WHERE content = ? AND id != ?`, content, keepID)
}

// DeleteUnpinned removes every unpinned entry.
func (r *SQLiteClipRepository) DeleteUnpinned(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	return exec(ctx, querier, "failed to delete unpinned clips", `DELETE FROM clip_entries WHERE pinned = 0`)
}

// DeleteUnpinnedOlderThan removes unpinned entries captured before cutoff (ms epoch).
func (r *SQLiteClipRepository) DeleteUnpinnedOlderThan(ctx context.Context, cutoff int64) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	return exec(ctx, querier, "failed to delete old clips",
		`DELETE FROM clip_entries WHERE pinned = 0 AND timestamp < ?`, cutoff)
}

// SetPinned sets the pinned flag on the given IDs.
func (r *SQLiteClipRepository) SetPinned(ctx context.Context, ids []int64, pinned bool) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	querier := database.GetTx(ctx, r.db)

	args := append([]any{pinned}, int64Args(ids)...)
	query := `UPDATE clip_entries SET pinned = ? WHERE id IN (` + placeholders(len(ids)) + `)`
	return exec(ctx, querier, "failed to update clip pin state", query, args...)
}

// List returns entries ordered pinned first, then newest first.
func (r *SQLiteClipRepository) List(
	ctx context.Context,
	opts clipsDomain.ListOptions,
) ([]*clipsDomain.ClipEntry, error) {
	querier := database.GetTx(ctx, r.db)

	var (
		sb   strings.Builder
		args []any
	)
	sb.WriteString(`SELECT ` + clipColumns + ` FROM clip_entries`)
	if opts.Query != "" {
		sb.WriteString(` WHERE instr(content, ?) > 0`)
		args = append(args, opts.Query)
	}
	sb.WriteString(` ORDER BY pinned DESC, timestamp DESC, id DESC`)
	if opts.Limit > 0 {
		sb.WriteString(` LIMIT ? OFFSET ?`)
		args = append(args, opts.Limit, opts.Offset)
	}

	rows, err := querier.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list clips")
	}
	return collectClips(rows)
}

// Snapshot returns every entry newest first.
func (r *SQLiteClipRepository) Snapshot(ctx context.Context) ([]*clipsDomain.ClipEntry, error) {
	querier := database.GetTx(ctx, r.db)

	rows, err := querier.QueryContext(
		ctx,
		`SELECT `+clipColumns+` FROM clip_entries ORDER BY timestamp DESC, id DESC`,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to snapshot clips")
	}
	return collectClips(rows)
}

// Count returns the number of entries.
func (r *SQLiteClipRepository) Count(ctx context.Context) (int64, error) {
	querier := database.GetTx(ctx, r.db)

	var n int64
	if err := querier.QueryRowContext(ctx, `SELECT COUNT(*) FROM clip_entries`).Scan(&n); err != nil {
		return 0, apperrors.Wrap(err, "failed to count clips")
	}
	return n, nil
}

// ExistsByContentAndTimestamp reports whether an entry with exactly this content and timestamp exists.
func (r *SQLiteClipRepository) ExistsByContentAndTimestamp(
	ctx context.Context,
	content string,
	timestamp int64,
) (bool, error) {
	querier := database.GetTx(ctx, r.db)

	var one int
	err := querier.QueryRowContext(
		ctx,
		`SELECT 1 FROM clip_entries WHERE content = ? AND timestamp = ? LIMIT 1`,
		content,
		timestamp,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to look up clip")
	}
	return true, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClip(row rowScanner) (*clipsDomain.ClipEntry, error) {
	var entry clipsDomain.ClipEntry
	if err := row.Scan(&entry.ID, &entry.Content, &entry.Timestamp, &entry.Pinned); err != nil {
		return nil, err
	}
	return &entry, nil
}

func collectClips(rows *sql.Rows) ([]*clipsDomain.ClipEntry, error) {
	defer func() {
		_ = rows.Close()
	}()

	entries := make([]*clipsDomain.ClipEntry, 0)
	for rows.Next() {
		entry, err := scanClip(rows)
		if err != nil {
			return nil, apperrors.Wrap(err, "failed to scan clip")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate clips")
	}
	return entries, nil
}

func exec(ctx context.Context, querier database.Querier, msg, query string, args ...any) (int64, error) {
	res, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, apperrors.Wrap(err, msg)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.Wrap(err, msg)
	}
	return n, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func int64Args(ids []int64) []any {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return args
}
