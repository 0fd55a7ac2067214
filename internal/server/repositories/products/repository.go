// Package products stores the articles users track.
package products

import (
	"context"

	"github.com/dmitrijs2005/mpdash/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.Product) (*models.Product, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Product, error)
	GetByArticle(ctx context.Context, userID int64, article string) (*models.Product, error)
	Delete(ctx context.Context, userID, id int64) (*models.Product, error)
}
