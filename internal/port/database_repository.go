package port

import (
	"context"

	"github.com/veloshop/storefront/internal/core/domain"
)

type DatabaseRepository interface {
	// ListProducts returns the visible catalog.
	ListProducts(ctx context.Context) ([]domain.Product, error)

	// GetProduct retrieves one product, nil when absent.
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)

	// GetInventory returns the durable stock count for a product, with
	// found=false when the product does not exist.
	GetInventory(ctx context.Context, productID int64) (stock int, found bool, err error)

	// AdjustInventory applies op to the durable count in a single conditional
	// statement and returns the post-adjustment value. found=false when the
	// product does not exist.
	AdjustInventory(ctx context.Context, productID int64, quantity int, op domain.StockOperation) (stock int, found bool, err error)

	// CreateOrder persists the order and decrements durable inventory for
	// every line in one transaction.
	CreateOrder(ctx context.Context, order domain.Order) error
}
