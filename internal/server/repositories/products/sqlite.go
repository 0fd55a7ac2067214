package products

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

const productColumns = `id, user_id, article, name, price, last_checked`

type SQLiteRepository struct {
	db sqlx.ExtContext
}

func NewSQLiteRepository(db sqlx.ExtContext) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts p. Tracking the same article twice for one user yields
// common.ErrorAlreadyExists.
func (r *SQLiteRepository) Create(ctx context.Context, p *models.Product) (*models.Product, error) {
	query :=
		`INSERT INTO tracked_products (user_id, article, name, price, last_checked)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`

	if err := sqlx.GetContext(ctx, r.db, &p.ID, query, p.UserID, p.Article, p.Name, p.Price, p.LastChecked); err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// ListByUser returns the user's products, oldest first. The slice is
// empty, not nil, when nothing is tracked.
func (r *SQLiteRepository) ListByUser(ctx context.Context, userID int64) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM tracked_products WHERE user_id = ? ORDER BY id`

	items := []models.Product{}
	if err := sqlx.SelectContext(ctx, r.db, &items, query, userID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return items, nil
}

func (r *SQLiteRepository) GetByArticle(ctx context.Context, userID int64, article string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM tracked_products WHERE user_id = ? AND article = ?`

	p := &models.Product{}
	if err := sqlx.GetContext(ctx, r.db, p, query, userID, article); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}

// Delete removes the product and returns it as it was. Products owned by
// someone else are reported as common.ErrorNotFound.
func (r *SQLiteRepository) Delete(ctx context.Context, userID, id int64) (*models.Product, error) {
	query := `DELETE FROM tracked_products WHERE id = ? AND user_id = ? RETURNING ` + productColumns

	p := &models.Product{}
	if err := sqlx.GetContext(ctx, r.db, p, query, id, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return p, nil
}
