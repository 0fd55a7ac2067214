// Package storage opens the client's local SQLite database, applies the
// embedded migrations and holds an exclusive file lock so that only one
// client process works with a given store at a time.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/mpdash/internal/client/migrations"
	"github.com/dmitrijs2005/mpdash/internal/filex"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// MemoryPath opens a private in-memory database instead of a file.
const MemoryPath = ":memory:"

// ErrLocked is returned when another process holds the store.
var ErrLocked = errors.New("store is used by another process")

// DB is an open client database.
type DB struct {
	*sql.DB
	lock *flock.Flock
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(ctx context.Context, path string) (*DB, error) {
	if path == MemoryPath {
		db, err := sql.Open("sqlite", MemoryPath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
		if err := RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &DB{DB: db}, nil
	}

	abs, err := filex.EnsureParentDir(path)
	if err != nil {
		return nil, err
	}

	lock := flock.New(abs + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", abs, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s: %w", abs, ErrLocked)
	}

	db, err := sql.Open("sqlite", abs+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}

	return &DB{DB: db, lock: lock}, nil
}

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Close closes the database and releases the file lock.
func (d *DB) Close() error {
	err := d.DB.Close()
	if d.lock != nil {
		err = errors.Join(err, d.lock.Unlock())
	}
	return err
}
