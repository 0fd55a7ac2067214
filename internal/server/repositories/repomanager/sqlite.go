package repomanager

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/mpdash/internal/filex"
	"github.com/dmitrijs2005/mpdash/internal/server/migrations"
	"github.com/dmitrijs2005/mpdash/internal/server/repositories/products"
	"github.com/dmitrijs2005/mpdash/internal/server/repositories/users"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteRepositoryManager vends SQLite-backed repositories.
type SQLiteRepositoryManager struct{}

func NewSQLiteRepositoryManager() *SQLiteRepositoryManager {
	return &SQLiteRepositoryManager{}
}

func (m *SQLiteRepositoryManager) Users(db sqlx.ExtContext) users.Repository {
	return users.NewSQLiteRepository(db)
}

func (m *SQLiteRepositoryManager) Products(db sqlx.ExtContext) products.Repository {
	return products.NewSQLiteRepository(db)
}

// RunMigrations applies every pending embedded migration.
func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context, db *sqlx.DB) error {
	provider, err := goose.NewProvider(goose.DialectSQLite3, db.DB, migrations.Migrations)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Open opens the database named by dsn and migrates it. dsn is a file path
// or MemoryDSN.
func Open(ctx context.Context, m RepositoryManager, dsn string) (*sqlx.DB, error) {
	source := MemoryDSN
	if dsn != MemoryDSN {
		abs, err := filex.EnsureParentDir(dsn)
		if err != nil {
			return nil, err
		}
		source = abs + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}

	db, err := sqlx.Open("sqlite", source)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if dsn == MemoryDSN {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}
