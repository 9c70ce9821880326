package journal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DebugMode enables debug logging
var DebugMode = false

// debugLog logs a message if debug mode is enabled
func debugLog(format string, args ...interface{}) {
	if DebugMode {
		fmt.Fprintf(os.Stderr, "[JOURNAL] "+format+"\n", args...)
	}
}

// Operation names recorded by the app.
const (
	OpApply   = "apply"
	OpRestore = "restore"
	OpDelete  = "delete"
)

// Entry is one recorded operation outcome.
type Entry struct {
	ID     int64
	At     time.Time
	Op     string
	Theme  string
	Kind   string
	OK     bool
	Detail string
}

const schema = `
CREATE TABLE IF NOT EXISTS operations (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	at     TEXT    NOT NULL,
	op     TEXT    NOT NULL,
	theme  TEXT    NOT NULL,
	kind   TEXT    NOT NULL,
	ok     INTEGER NOT NULL,
	detail TEXT    NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS operations_at ON operations(at);
`

// Journal records operation outcomes in a local SQLite database. It is
// bookkeeping only, never part of an operation itself: callers treat
// every journal error as non-fatal, and a nil Journal records nothing.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at path.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init journal schema: %w", err)
	}

	debugLog("journal open at %s", path)
	return &Journal{db: db}, nil
}

// Record stores one operation outcome.
func (j *Journal) Record(op, theme, kind string, ok bool, detail string) error {
	if j == nil {
		return nil
	}

	okInt := 0
	if ok {
		okInt = 1
	}
	_, err := j.db.Exec(
		`INSERT INTO operations (at, op, theme, kind, ok, detail) VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), op, theme, kind, okInt, detail,
	)
	if err != nil {
		debugLog("record %s %s: %v", op, theme, err)
		return fmt.Errorf("record %s: %w", op, err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (j *Journal) Recent(limit int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}
	if limit < 1 {
		limit = 20
	}

	rows, err := j.db.Query(
		`SELECT id, at, op, theme, kind, ok, detail FROM operations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		var ok int
		if err := rows.Scan(&e.ID, &at, &e.Op, &e.Theme, &e.Kind, &ok, &e.Detail); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		e.At, _ = time.Parse(time.RFC3339, at)
		e.OK = ok == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	return j.db.Close()
}
