package services

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/mpdash/internal/client/models"
)

const (
	analyzePath = "/products/analyze"
	trackPath   = "/products/track"
)

// ProductService covers the product analysis and tracking endpoints.
type ProductService interface {
	Analyze(ctx context.Context, article string) (*models.ProductAnalysis, error)
	Track(ctx context.Context, data models.TrackProductData) (*models.Product, error)
	Tracked(ctx context.Context, userID int64) ([]models.Product, error)
	Untrack(ctx context.Context, productID int64) (*models.Product, error)
}

type productService struct {
	transport Transport
}

func NewProductService(t Transport) ProductService {
	return &productService{transport: t}
}

func (s *productService) Analyze(ctx context.Context, article string) (*models.ProductAnalysis, error) {
	article = strings.TrimSpace(article)
	// "." and ".." survive escaping and would be cleaned out of the path.
	if article == "" || article == "." || article == ".." {
		return nil, ErrInvalidArticle
	}

	var res models.ProductAnalysis
	if err := s.transport.GetJSON(ctx, analyzePath+"/"+url.PathEscape(article), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *productService) Track(ctx context.Context, data models.TrackProductData) (*models.Product, error) {
	data.Article = strings.TrimSpace(data.Article)
	if data.Article == "" {
		return nil, ErrInvalidArticle
	}

	var p models.Product
	if err := s.transport.PostJSON(ctx, trackPath, data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *productService) Tracked(ctx context.Context, userID int64) ([]models.Product, error) {
	var list []models.Product
	path := fmt.Sprintf("%s/user/%d", trackPath, userID)
	if err := s.transport.GetJSON(ctx, path, nil, &list); err != nil {
		return nil, err
	}
	if list == nil {
		list = []models.Product{}
	}
	return list, nil
}

func (s *productService) Untrack(ctx context.Context, productID int64) (*models.Product, error) {
	var p models.Product
	if err := s.transport.Delete(ctx, trackPath+"/"+strconv.FormatInt(productID, 10), &p); err != nil {
		return nil, err
	}
	return &p, nil
}
