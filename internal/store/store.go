// Scentwell - Fragrance Collection Tracking and Recommendations
// Copyright 2026 Scentwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/scentwell/scentwell

// Package store provides SQLite-backed persistence for the cologne
// collection, wear history, and import audit trail.
//
// The store owns transactional durability; the recommendation and
// reconciliation cores read consistent full snapshots from it and write
// cohesive batches through WithTx.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/scentwell/scentwell/internal/logging"
)

// Sentinel errors returned by store operations.
var (
	// ErrDuplicate indicates an insert would violate the (name, brand)
	// natural key.
	ErrDuplicate = errors.New("cologne with this name and brand already exists")

	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("not found")
)

// timeFormat is how timestamps are persisted in SQLite. Fixed-width so
// lexicographic ORDER BY on the TEXT column matches chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Store is a SQLite-backed collection store. Safe for use from a single
// process; concurrent writers are not supported by design.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if necessary) the SQLite database at path and
// applies the schema. Pass ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o700); err != nil {
				return nil, fmt.Errorf("creating data directory: %w", err)
			}
		}
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// The modernc driver opens one connection per statement by default;
	// a single connection keeps in-memory databases coherent and avoids
	// writer contention on disk.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	logging.Debug().Str("path", path).Msg("store opened")
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// schema is the full database schema. Tag names are shared across colognes
// through the notes/classifications tables; join tables carry a position
// column so insertion order is preserved.
const schema = `
CREATE TABLE IF NOT EXISTS colognes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	brand      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	UNIQUE (name, brand)
);

CREATE TABLE IF NOT EXISTS notes (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS classifications (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS cologne_notes (
	cologne_id INTEGER NOT NULL REFERENCES colognes(id) ON DELETE CASCADE,
	note_id    INTEGER NOT NULL REFERENCES notes(id),
	position   INTEGER NOT NULL,
	PRIMARY KEY (cologne_id, note_id)
);

CREATE TABLE IF NOT EXISTS cologne_classifications (
	cologne_id        INTEGER NOT NULL REFERENCES colognes(id) ON DELETE CASCADE,
	classification_id INTEGER NOT NULL REFERENCES classifications(id),
	position          INTEGER NOT NULL,
	PRIMARY KEY (cologne_id, classification_id)
);

CREATE TABLE IF NOT EXISTS wear_history (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	cologne_id INTEGER NOT NULL REFERENCES colognes(id) ON DELETE CASCADE,
	worn_at    TEXT NOT NULL,
	season     TEXT NOT NULL,
	occasion   TEXT NOT NULL,
	rating     REAL
);

CREATE INDEX IF NOT EXISTS idx_wear_history_cologne ON wear_history(cologne_id);

CREATE TABLE IF NOT EXISTS import_history (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	batch_id          TEXT NOT NULL UNIQUE,
	import_type       TEXT NOT NULL,
	filename          TEXT,
	colognes_added    INTEGER NOT NULL DEFAULT 0,
	colognes_updated  INTEGER NOT NULL DEFAULT 0,
	wear_events_added INTEGER NOT NULL DEFAULT 0,
	error_count       INTEGER NOT NULL DEFAULT 0,
	success           INTEGER NOT NULL DEFAULT 1,
	notes             TEXT,
	created_at        TEXT NOT NULL
);
`

// migrate applies the schema.
func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// querier abstracts *sql.DB and *sql.Tx so read/write helpers work both
// standalone and inside a reconciliation batch.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a single transaction. If fn returns an error the
// transaction is rolled back and the error returned; otherwise it commits.
// The reconciler uses this to make a whole import batch atomic.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	tx := &Tx{q: sqlTx}
	if err := fn(tx); err != nil {
		if rbErr := sqlTx.Rollback(); rbErr != nil {
			logging.Warn().Err(rbErr).Msg("transaction rollback failed")
		}
		return err
	}

	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Tx exposes store mutations bound to one open transaction.
type Tx struct {
	q querier
}
