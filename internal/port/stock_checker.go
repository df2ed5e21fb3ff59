package port

import "context"

// StockChecker is what the cart needs from the stock oracle: a point-in-time
// capacity for one product. Implementations may be in-process or a network
// client; the cart treats any error as "capacity unknown".
type StockChecker interface {
	GetStock(ctx context.Context, productID int64) (int, error)
}
