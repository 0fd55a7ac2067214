package services

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/mpdash/internal/server/repositories/products"
	"github.com/dmitrijs2005/mpdash/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mpdash/internal/server/repositories/users"
)

func TestMain(m *testing.M) {
	bcryptCost = bcrypt.MinCost
	m.Run()
}

func openDB(t *testing.T) (*sqlx.DB, repomanager.RepositoryManager) {
	t.Helper()
	m := repomanager.NewSQLiteRepositoryManager()
	db, err := repomanager.Open(context.Background(), m, repomanager.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, m
}

// brokenManager hands out repositories bound to a closed database.
type brokenManager struct {
	repomanager.RepositoryManager
	closed *sqlx.DB
}

func newBrokenManager(t *testing.T) brokenManager {
	db, m := openDB(t)
	require.NoError(t, db.Close())
	return brokenManager{RepositoryManager: m, closed: db}
}

func (b brokenManager) Users(sqlx.ExtContext) users.Repository {
	return b.RepositoryManager.Users(b.closed)
}

func (b brokenManager) Products(sqlx.ExtContext) products.Repository {
	return b.RepositoryManager.Products(b.closed)
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
}
