package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/veloshop/storefront/internal/core/domain"
	"github.com/veloshop/storefront/internal/port"
)

var (
	ErrDuplicateRequest  = errors.New("duplicate request")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyCart         = errors.New("cart is empty")
	ErrShuttingDown      = errors.New("checkout is shutting down")
)

// CheckoutService turns a cart into an order. Every line is reserved against
// the Redis counters before the order is accepted; if any line cannot be fully
// reserved, the reservations already taken are returned and checkout fails.
// Accepted orders are queued for asynchronous persistence.
type CheckoutService struct {
	cache      port.CacheRepository
	cart       *CartService
	orderQueue chan domain.Order

	mu      sync.Mutex
	closed  bool
	pending sync.WaitGroup
}

func NewCheckoutService(cache port.CacheRepository, cart *CartService, queueSize int) *CheckoutService {
	return &CheckoutService{
		cache:      cache,
		cart:       cart,
		orderQueue: make(chan domain.Order, queueSize),
	}
}

func (s *CheckoutService) Checkout(ctx context.Context, sessionID, requestID string) (string, error) {
	cart := s.cart.GetCart(ctx, sessionID)
	if len(cart.Lines) == 0 {
		return "", ErrEmptyCart
	}

	idempotencyKey := fmt.Sprintf("checkout:%s", requestID)
	ok, err := s.cache.SetIdempotency(ctx, idempotencyKey)
	if err != nil {
		return "", fmt.Errorf("idempotency check failed: %w", err)
	}
	if !ok {
		return "", ErrDuplicateRequest
	}

	if err := s.reserve(ctx, cart.Lines); err != nil {
		return "", err
	}

	order := domain.OrderFromCart(uuid.NewString(), sessionID, &cart, time.Now())
	if err := s.enqueue(order); err != nil {
		s.release(ctx, cart.Lines)
		return "", err
	}

	if err := s.cart.ClearCart(ctx, sessionID); err != nil {
		log.Printf("checkout: clearing cart for session %s failed: %v", sessionID, err)
	}

	return order.ID, nil
}

// reserve decrements the stock counter for every line concurrently. Partial
// reservations are compensated by re-incrementing before the error returns.
func (s *CheckoutService) reserve(ctx context.Context, lines []domain.CartLine) error {
	type result struct {
		ok  bool
		err error
	}
	results := make([]result, len(lines))

	var wg sync.WaitGroup
	for i, line := range lines {
		wg.Add(1)
		go func(i int, line domain.CartLine) {
			defer wg.Done()
			ok, err := s.cache.DecrementStock(ctx, line.ProductID, line.Quantity)
			results[i] = result{ok: ok, err: err}
		}(i, line)
	}
	wg.Wait()

	failed := -1
	for i, r := range results {
		if r.err != nil || !r.ok {
			failed = i
			break
		}
	}
	if failed == -1 {
		return nil
	}

	taken := make([]domain.CartLine, 0, len(lines))
	for i, r := range results {
		if r.err == nil && r.ok {
			taken = append(taken, lines[i])
		}
	}
	s.release(ctx, taken)

	if err := results[failed].err; err != nil {
		return fmt.Errorf("stock reservation for product %d failed: %w", lines[failed].ProductID, err)
	}
	return fmt.Errorf("product %d: %w", lines[failed].ProductID, ErrInsufficientStock)
}

// release returns reservations to the stock counters.
func (s *CheckoutService) release(ctx context.Context, lines []domain.CartLine) {
	for _, line := range lines {
		if err := s.cache.IncrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			log.Printf("checkout: CRITICAL compensation failed for product %d: %v", line.ProductID, err)
		}
	}
}

// enqueue hands the order to the persistence workers. After Close it refuses
// with ErrShuttingDown instead of sending on the closed queue.
func (s *CheckoutService) enqueue(order domain.Order) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrShuttingDown
	}
	s.pending.Add(1)
	s.mu.Unlock()
	defer s.pending.Done()

	s.orderQueue <- order
	return nil
}

func (s *CheckoutService) GetOrderQueue() <-chan domain.Order {
	return s.orderQueue
}

// Close stops accepting checkouts, waits for in-flight enqueues, then closes
// the queue so the workers drain and exit.
func (s *CheckoutService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.pending.Wait()
	close(s.orderQueue)
}
