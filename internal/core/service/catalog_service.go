package service

import (
	"context"
	"fmt"

	"github.com/veloshop/storefront/internal/core/domain"
	"github.com/veloshop/storefront/internal/port"
)

// CatalogService serves read-only product views.
type CatalogService struct {
	db port.DatabaseRepository
}

func NewCatalogService(db port.DatabaseRepository) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := s.db.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := s.db.GetProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}
