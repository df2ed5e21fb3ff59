package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/veloshop/storefront/internal/core/domain"
	"github.com/veloshop/storefront/internal/port"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// fallbackStock bounds an add when the oracle answers but reports no usable
// count. Oracle failures skip the bound entirely and accept the request.
const fallbackStock = 10

// CartService owns the cart of every active session. Each mutation is written
// through to durable storage before returning, so a restarted session picks up
// the last committed cart. Saves run outside the internal lock: two racing
// mutations of one session may persist out of order and the last write wins.
// Stock capacity is consulted best-effort: an unreachable oracle never blocks
// a mutation.
type CartService struct {
	stock   port.StockChecker
	storage port.CartStorage

	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCartService(stock port.StockChecker, storage port.CartStorage) *CartService {
	return &CartService{
		stock:   stock,
		storage: storage,
		carts:   make(map[string]*domain.Cart),
	}
}

// AddToCart merges line into the session's cart, clamped to the oracle's
// current capacity. It reports the quantity actually in the cart afterwards
// and whether the request was limited by stock.
func (s *CartService) AddToCart(ctx context.Context, sessionID string, line domain.CartLine) (applied int, limited bool, err error) {
	if line.Quantity <= 0 {
		return 0, false, ErrInvalidQuantity
	}

	capacity, known := s.capacity(ctx, line.ProductID)

	s.mu.Lock()
	cart := s.load(ctx, sessionID)
	requested := line.Quantity
	if i := cart.Find(line.ProductID); i != -1 {
		requested += cart.Lines[i].Quantity
	}
	applied, limited = domain.ClampQuantity(requested, capacity, known)
	cart.Upsert(line, applied)
	snapshot, marshalErr := json.Marshal(cart)
	s.mu.Unlock()

	if marshalErr != nil {
		return applied, limited, fmt.Errorf("marshal cart: %w", marshalErr)
	}
	if err := s.storage.SaveCart(ctx, sessionID, string(snapshot)); err != nil {
		return applied, limited, fmt.Errorf("persist cart: %w", err)
	}
	return applied, limited, nil
}

// UpdateQuantity sets the quantity of an existing line, clamped to capacity.
// A quantity <= 0 removes the line; an absent product is a no-op and never
// materializes a line.
func (s *CartService) UpdateQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (applied int, limited bool, err error) {
	if quantity <= 0 {
		return 0, false, s.RemoveItem(ctx, sessionID, productID)
	}

	s.mu.Lock()
	cart := s.load(ctx, sessionID)
	i := cart.Find(productID)
	s.mu.Unlock()
	if i == -1 {
		return 0, false, nil
	}

	capacity, known := s.capacity(ctx, productID)

	s.mu.Lock()
	cart = s.load(ctx, sessionID)
	if i := cart.Find(productID); i != -1 {
		applied, limited = domain.ClampQuantity(quantity, capacity, known)
		cart.Lines[i].Quantity = applied
	}
	snapshot, marshalErr := json.Marshal(cart)
	s.mu.Unlock()

	if marshalErr != nil {
		return applied, limited, fmt.Errorf("marshal cart: %w", marshalErr)
	}
	if err := s.storage.SaveCart(ctx, sessionID, string(snapshot)); err != nil {
		return applied, limited, fmt.Errorf("persist cart: %w", err)
	}
	return applied, limited, nil
}

// RemoveItem deletes the line for productID; removing an absent product is a
// no-op.
func (s *CartService) RemoveItem(ctx context.Context, sessionID string, productID int64) error {
	s.mu.Lock()
	cart := s.load(ctx, sessionID)
	cart.Remove(productID)
	snapshot, marshalErr := json.Marshal(cart)
	s.mu.Unlock()

	if marshalErr != nil {
		return fmt.Errorf("marshal cart: %w", marshalErr)
	}
	if err := s.storage.SaveCart(ctx, sessionID, string(snapshot)); err != nil {
		return fmt.Errorf("persist cart: %w", err)
	}
	return nil
}

// ClearCart empties the session's cart and drops the stored copy.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	cart := s.load(ctx, sessionID)
	cart.Clear()
	s.mu.Unlock()

	if err := s.storage.DeleteCart(ctx, sessionID); err != nil {
		return fmt.Errorf("clear stored cart: %w", err)
	}
	return nil
}

// GetCart returns a copy of the session's cart.
func (s *CartService) GetCart(ctx context.Context, sessionID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := s.load(ctx, sessionID)
	copied := domain.Cart{Lines: make([]domain.CartLine, len(cart.Lines))}
	copy(copied.Lines, cart.Lines)
	return copied
}

// capacity asks the oracle for the product's stock. Any failure degrades to
// "capacity unknown": the cart accepts the user's request as given.
func (s *CartService) capacity(ctx context.Context, productID int64) (int, bool) {
	stock, err := s.stock.GetStock(ctx, productID)
	if err != nil {
		log.Printf("cart: stock check for product %d failed, proceeding unchecked: %v", productID, err)
		return 0, false
	}
	if stock < 0 {
		return fallbackStock, true
	}
	return stock, true
}

// load returns the in-memory cart for sessionID, rehydrating it from storage
// on first touch. A stored cart that fails to parse is logged and discarded;
// the session starts empty. Callers must hold s.mu.
func (s *CartService) load(ctx context.Context, sessionID string) *domain.Cart {
	if cart, ok := s.carts[sessionID]; ok {
		return cart
	}
	cart := &domain.Cart{}
	raw, err := s.storage.GetCart(ctx, sessionID)
	switch {
	case errors.Is(err, port.ErrCartNotStored):
	case err != nil:
		log.Printf("cart: loading session %s failed, starting empty: %v", sessionID, err)
	default:
		if err := json.Unmarshal([]byte(raw), cart); err != nil {
			log.Printf("cart: discarding unreadable stored cart for session %s: %v", sessionID, err)
			cart = &domain.Cart{}
		}
	}
	s.carts[sessionID] = cart
	return cart
}
