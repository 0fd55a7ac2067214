package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dmitrijs2005/mpdash/internal/common"
	"github.com/dmitrijs2005/mpdash/internal/dbx"
	"github.com/dmitrijs2005/mpdash/internal/server/models"
	"github.com/dmitrijs2005/mpdash/internal/server/repositories/repomanager"
)

// TrackRequest is the input of ProductService.Track. Name and Price are
// optional.
type TrackRequest struct {
	Article string
	Name    string
	Price   *float64
}

type ProductService struct {
	db          *sqlx.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewProductService(db *sqlx.DB, m repomanager.RepositoryManager) *ProductService {
	return &ProductService{db: db, repomanager: m, now: time.Now}
}

// Track starts tracking req.Article for the user. A missing name becomes
// "Product <article>", a missing price zero.
func (s *ProductService) Track(ctx context.Context, userID int64, req TrackRequest) (*models.Product, error) {
	if err := required(map[string]string{"article": req.Article}, "article"); err != nil {
		return nil, err
	}
	if req.Price != nil && *req.Price < 0 {
		return nil, ValidationError{{Field: "price", Msg: "ensure this value is greater than or equal to 0"}}
	}

	p := &models.Product{
		UserID:      userID,
		Article:     req.Article,
		Name:        req.Name,
		LastChecked: s.now().UTC().Format(time.RFC3339),
	}
	if p.Name == "" {
		p.Name = "Product " + req.Article
	}
	if req.Price != nil {
		p.Price = *req.Price
	}

	var created *models.Product
	err := dbx.WithTxx(ctx, s.db, nil, func(ctx context.Context, tx sqlx.ExtContext) error {
		repo := s.repomanager.Products(tx)
		_, err := repo.GetByArticle(ctx, userID, req.Article)
		switch {
		case err == nil:
			return ErrProductTracked
		case !errors.Is(err, common.ErrorNotFound):
			return err
		}

		created, err = repo.Create(ctx, p)
		if errors.Is(err, common.ErrorAlreadyExists) {
			return ErrProductTracked
		}
		return err
	})
	if err != nil {
		if errors.Is(err, ErrProductTracked) {
			return nil, err
		}
		return nil, fmt.Errorf("error tracking product: %w", err)
	}
	return created, nil
}

func (s *ProductService) Tracked(ctx context.Context, userID int64) ([]models.Product, error) {
	items, err := s.repomanager.Products(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return items, nil
}

func (s *ProductService) Untrack(ctx context.Context, userID, id int64) (*models.Product, error) {
	p, err := s.repomanager.Products(s.db).Delete(ctx, userID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("error untracking product: %w", err)
	}
	return p, nil
}

// Analyze answers for articles the user tracks. Market data is out of
// reach of the development backend, so the analysis carries only what
// tracking recorded.
func (s *ProductService) Analyze(ctx context.Context, userID int64, article string) (*models.Analysis, error) {
	p, err := s.repomanager.Products(s.db).GetByArticle(ctx, userID, article)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("error analyzing product: %w", err)
	}

	a := &models.Analysis{Article: p.Article, Name: p.Name, Price: p.Price}
	if p.Price == 0 {
		a.Recommendations = append(a.Recommendations, "No price recorded yet; track the article again with a price.")
	}
	return a, nil
}
