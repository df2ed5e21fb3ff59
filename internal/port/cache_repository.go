package port

import "context"

type CacheRepository interface {
	// GetStock returns the cached stock count, with found=false on a cache miss.
	GetStock(ctx context.Context, productID int64) (stock int, found bool, err error)

	// SetStock overwrites the cached stock count.
	SetStock(ctx context.Context, productID int64, quantity int) error

	// DecrementStock atomically decreases stock, returns false if insufficient.
	DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error)

	// IncrementStock restores stock (compensation on checkout failure).
	IncrementStock(ctx context.Context, productID int64, quantity int) error

	// SetIdempotency sets a key for idempotency check, returns false if already exists.
	SetIdempotency(ctx context.Context, key string) (bool, error)
}
