// Package repomanager vends the backend repositories bound to a database
// handle and owns the schema migrations.
package repomanager

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/mpdash/internal/server/repositories/products"
	"github.com/dmitrijs2005/mpdash/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sqlx.DB) error
	Users(db sqlx.ExtContext) users.Repository
	Products(db sqlx.ExtContext) products.Repository
}
