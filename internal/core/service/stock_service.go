package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/veloshop/storefront/internal/core/domain"
	"github.com/veloshop/storefront/internal/port"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidOperation = errors.New("invalid stock operation")
)

// StockService is the stock oracle: reads serve from the Redis counter when
// present and fall back to the durable count (seeding the counter); writes
// apply to MySQL first and mirror the result into Redis.
type StockService struct {
	db    port.DatabaseRepository
	cache port.CacheRepository
}

func NewStockService(db port.DatabaseRepository, cache port.CacheRepository) *StockService {
	return &StockService{db: db, cache: cache}
}

func (s *StockService) GetStock(ctx context.Context, productID int64) (int, error) {
	stock, found, err := s.cache.GetStock(ctx, productID)
	if err != nil {
		log.Printf("stock: cache read for product %d failed, using database: %v", productID, err)
	} else if found {
		return stock, nil
	}

	stock, found, err = s.db.GetInventory(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("read inventory: %w", err)
	}
	if !found {
		return 0, ErrProductNotFound
	}

	if err := s.cache.SetStock(ctx, productID, stock); err != nil {
		log.Printf("stock: seeding cache for product %d failed: %v", productID, err)
	}
	return stock, nil
}

// AdjustStock applies op to the product's inventory and returns the
// post-adjustment count. decrease floors at zero, set clamps a negative input
// to zero, increase is unbounded.
func (s *StockService) AdjustStock(ctx context.Context, productID int64, quantity int, op domain.StockOperation) (int, error) {
	if !op.Valid() {
		return 0, ErrInvalidOperation
	}

	stock, found, err := s.db.AdjustInventory(ctx, productID, quantity, op)
	if err != nil {
		return 0, fmt.Errorf("adjust inventory: %w", err)
	}
	if !found {
		return 0, ErrProductNotFound
	}

	if err := s.cache.SetStock(ctx, productID, stock); err != nil {
		log.Printf("stock: mirroring product %d to cache failed: %v", productID, err)
	}
	return stock, nil
}
