package database

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"strings"
)

// A sealed snapshot is a logical dump: a sequence of SQL statements, each
// stored as u32 BE length followed by the statement text. Restoring replays
// the statements into an empty in-memory database.

type schemaObject struct {
	kind string
	name string
	sql  string
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// dumpDatabase renders the schema and rows of db as SQL statements.
func dumpDatabase(ctx context.Context, db *sql.DB) ([]byte, error) {
	objects, err := schemaObjects(ctx, db)
	if err != nil {
		return nil, err
	}

	var (
		out       []byte
		deferred  []string
		sequenced bool
	)
	appendStmt := func(stmt string) {
		out = binary.BigEndian.AppendUint32(out, uint32(len(stmt)))
		out = append(out, stmt...)
	}

	for _, obj := range objects {
		if obj.name == "sqlite_sequence" {
			sequenced = true
			continue
		}
		if strings.HasPrefix(obj.name, "sqlite_") {
			continue
		}
		if obj.kind != "table" {
			deferred = append(deferred, obj.sql)
			continue
		}

		appendStmt(obj.sql)
		inserts, err := tableInserts(ctx, db, obj.name)
		if err != nil {
			return nil, err
		}
		for _, stmt := range inserts {
			appendStmt(stmt)
		}
	}

	if sequenced {
		appendStmt("DELETE FROM sqlite_sequence")
		inserts, err := tableInserts(ctx, db, "sqlite_sequence")
		if err != nil {
			return nil, err
		}
		for _, stmt := range inserts {
			appendStmt(stmt)
		}
	}

	for _, stmt := range deferred {
		appendStmt(stmt)
	}
	return out, nil
}

func schemaObjects(ctx context.Context, db *sql.DB) ([]schemaObject, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT type, name, sql FROM sqlite_master WHERE sql IS NOT NULL ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var objects []schemaObject
	for rows.Next() {
		var obj schemaObject
		if err := rows.Scan(&obj.kind, &obj.name, &obj.sql); err != nil {
			return nil, fmt.Errorf("failed to scan schema: %w", err)
		}
		objects = append(objects, obj)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	return objects, nil
}

// tableInserts lets SQLite format every value with quote(), so text, blobs
// and numbers come back byte-exact.
func tableInserts(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	cols, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, nil
	}

	quoted := make([]string, len(cols))
	for i, col := range cols {
		quoted[i] = "quote(" + quoteIdent(col) + ")"
	}
	query := fmt.Sprintf("SELECT 'INSERT INTO %s VALUES(' || %s || ')' FROM %s",
		strings.ReplaceAll(quoteIdent(table), "'", "''"),
		strings.Join(quoted, " || ',' || "),
		quoteIdent(table),
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var stmts []string
	for rows.Next() {
		var stmt string
		if err := rows.Scan(&stmt); err != nil {
			return nil, fmt.Errorf("failed to scan table %s: %w", table, err)
		}
		stmts = append(stmts, stmt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}
	return stmts, nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM pragma_table_info(?) ORDER BY cid", table)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var cols []string
	for rows.Next() {
		var col string
		if err := rows.Scan(&col); err != nil {
			return nil, fmt.Errorf("failed to scan columns of %s: %w", table, err)
		}
		cols = append(cols, col)
	}
	return cols, rows.Err()
}

// restoreDatabase replays a dump into db in a single transaction.
func restoreDatabase(ctx context.Context, db *sql.DB, dump []byte) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin restore: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for rest := dump; len(rest) > 0; {
		if len(rest) < 4 {
			return ErrCorruptDatabase
		}
		n := binary.BigEndian.Uint32(rest[:4])
		rest = rest[4:]
		if uint64(n) > uint64(len(rest)) {
			return ErrCorruptDatabase
		}
		if _, err := tx.ExecContext(ctx, string(rest[:n])); err != nil {
			return fmt.Errorf("failed to restore database: %w", err)
		}
		rest = rest[n:]
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit restore: %w", err)
	}
	return nil
}
