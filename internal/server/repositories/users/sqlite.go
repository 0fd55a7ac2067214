package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/mpdash/internal/common"
	"github.com/dmitrijs2005/mpdash/internal/dbx"
	"github.com/dmitrijs2005/mpdash/internal/server/models"
)

const userColumns = `id, email, username, password_hash, is_active, is_superuser, balance`

type SQLiteRepository struct {
	db sqlx.ExtContext
}

// NewSQLiteRepository binds the repository to db, which may be a *sqlx.DB
// or a *sqlx.Tx.
func NewSQLiteRepository(db sqlx.ExtContext) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts user and fills in the generated id and column defaults.
// A taken email or username yields common.ErrorAlreadyExists.
func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (email, username, password_hash)
		 VALUES (?, ?, ?)
		 RETURNING id, is_active, is_superuser, balance`

	err := sqlx.GetContext(ctx, r.db, user, query, user.Email, user.Username, user.PasswordHash)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// GetByLogin finds a user by username or email.
func (r *SQLiteRepository) GetByLogin(ctx context.Context, login string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? OR email = ? LIMIT 1`
	return r.get(ctx, query, login, login)
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.get(ctx, query, id)
}

func (r *SQLiteRepository) get(ctx context.Context, query string, args ...any) (*models.User, error) {
	user := &models.User{}
	if err := sqlx.GetContext(ctx, r.db, user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}
