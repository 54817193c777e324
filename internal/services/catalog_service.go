package services

import (
	"context"
	"errors"
	"strings"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
)

const (
	DefaultPageSize     = 20
	MaxPageSize         = 100
	DefaultRelatedLimit = 4
)

// ProductProvider is the read side of the product store.
type ProductProvider interface {
	List(ctx context.Context, f model.ProductFilter) ([]model.Product, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)
	Related(ctx context.Context, id uuid.UUID, category string, limit int) ([]model.Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type CatalogService struct {
	Products ProductProvider
}

func NewCatalogService(p ProductProvider) *CatalogService {
	return &CatalogService{Products: p}
}

// ProductPage is one page of a listing plus the total number of matches.
type ProductPage struct {
	Products []model.Product
	Total    int64
	Limit    int
	Offset   int
}

func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}

// List returns in-stock products matching f, newest first.
func (s *CatalogService) List(ctx context.Context, f model.ProductFilter) (*ProductPage, error) {
	f.Limit = clampLimit(f.Limit, DefaultPageSize)
	if f.Offset < 0 {
		f.Offset = 0
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return nil, invalid("minPrice", "minPrice cannot exceed maxPrice")
	}
	f.Category = normalizeCategory(f.Category)
	f.IncludeOutOfStock = false

	products, total, err := s.Products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// Get returns a product in any stock state.
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	p, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	return p, err
}

// Related lists in-stock products sharing id's category.
func (s *CatalogService) Related(ctx context.Context, id uuid.UUID, limit int) ([]model.Product, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.Products.Related(ctx, id, p.Category, clampLimit(limit, DefaultRelatedLimit))
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	return s.Products.Categories(ctx)
}

// normalizeCategory matches the form categories are stored in.
func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
