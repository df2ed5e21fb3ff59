package port

import (
	"context"
	"errors"
)

// ErrCartNotStored reports that no serialized cart exists under a key.
var ErrCartNotStored = errors.New("cart not stored")

// CartStorage is the durable key-value surface carts are serialized to on
// every mutation and rehydrated from at session start.
type CartStorage interface {
	// GetCart returns the serialized cart for key, or ErrCartNotStored.
	GetCart(ctx context.Context, key string) (string, error)

	// SaveCart overwrites the serialized cart for key.
	SaveCart(ctx context.Context, key, value string) error

	// DeleteCart drops the stored cart for key; absent keys are a no-op.
	DeleteCart(ctx context.Context, key string) error
}
