package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/veloshop/storefront/internal/core/domain"
)

// Mock CacheRepository
type mockCacheRepo struct {
	mu             sync.Mutex
	stock          map[int64]int
	idempotencySet map[string]bool
	decrementErr   error
}

func newMockCacheRepo(stock map[int64]int) *mockCacheRepo {
	return &mockCacheRepo{
		stock:          stock,
		idempotencySet: make(map[string]bool),
	}
}

func (m *mockCacheRepo) GetStock(ctx context.Context, productID int64) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stock[productID]
	return s, ok, nil
}

func (m *mockCacheRepo) SetStock(ctx context.Context, productID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[productID] = quantity
	return nil
}

func (m *mockCacheRepo) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.decrementErr != nil {
		return false, m.decrementErr
	}
	if m.stock[productID] >= quantity {
		m.stock[productID] -= quantity
		return true, nil
	}
	return false, nil
}

func (m *mockCacheRepo) IncrementStock(ctx context.Context, productID int64, quantity int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stock[productID] += quantity
	return nil
}

func (m *mockCacheRepo) SetIdempotency(ctx context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.idempotencySet[key] {
		return false, nil
	}
	m.idempotencySet[key] = true
	return true, nil
}

func (m *mockCacheRepo) stockOf(productID int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stock[productID]
}

func newCheckoutFixture(t *testing.T, stock map[int64]int, queueSize int) (*CheckoutService, *CartService, *mockCacheRepo) {
	t.Helper()
	cache := newMockCacheRepo(stock)
	checkerStock := make(map[int64]int, len(stock))
	for id, s := range stock {
		checkerStock[id] = s
	}
	cart := NewCartService(&mockStockChecker{stock: checkerStock}, newMockCartStorage())
	return NewCheckoutService(cache, cart, queueSize), cart, cache
}

func TestCheckout_Success(t *testing.T) {
	svc, cart, cache := newCheckoutFixture(t, map[int64]int{1: 10, 2: 10}, 100)
	defer svc.Close()
	ctx := context.Background()

	cart.AddToCart(ctx, "s1", testLine(1, "10.00", 2))
	cart.AddToCart(ctx, "s1", testLine(2, "5.00", 1))

	orderID, err := svc.Checkout(ctx, "s1", "req-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orderID == "" {
		t.Error("expected non-empty order ID")
	}

	order := <-svc.GetOrderQueue()
	if order.ID != orderID {
		t.Errorf("expected queued order %s, got %s", orderID, order.ID)
	}
	if len(order.Lines) != 2 {
		t.Errorf("expected 2 order lines, got %d", len(order.Lines))
	}
	if order.Status != domain.OrderStatusPending {
		t.Errorf("expected pending status, got %s", order.Status)
	}
	if !order.Total.Equal(decimal.RequireFromString("25")) {
		t.Errorf("expected total 25, got %s", order.Total)
	}

	if cache.stockOf(1) != 8 || cache.stockOf(2) != 9 {
		t.Errorf("expected reserved stock (8, 9), got (%d, %d)", cache.stockOf(1), cache.stockOf(2))
	}
	if c := cart.GetCart(ctx, "s1"); len(c.Lines) != 0 {
		t.Errorf("expected cart cleared after checkout, got %+v", c.Lines)
	}
}

func TestCheckout_EmptyCart(t *testing.T) {
	svc, _, _ := newCheckoutFixture(t, map[int64]int{}, 100)
	defer svc.Close()

	_, err := svc.Checkout(context.Background(), "s1", "req-1")
	if !errors.Is(err, ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got: %v", err)
	}
}

func TestCheckout_DuplicateRequest(t *testing.T) {
	svc, cart, _ := newCheckoutFixture(t, map[int64]int{1: 10}, 100)
	defer svc.Close()
	ctx := context.Background()

	go func() {
		for range svc.GetOrderQueue() {
		}
	}()

	cart.AddToCart(ctx, "s1", testLine(1, "10.00", 1))
	if _, err := svc.Checkout(ctx, "s1", "req-1"); err != nil {
		t.Fatalf("first checkout failed: %v", err)
	}

	cart.AddToCart(ctx, "s1", testLine(1, "10.00", 1))
	_, err := svc.Checkout(ctx, "s1", "req-1")
	if !errors.Is(err, ErrDuplicateRequest) {
		t.Errorf("expected ErrDuplicateRequest, got: %v", err)
	}
}

func TestCheckout_InsufficientStockCompensates(t *testing.T) {
	// Product 2 cannot cover the cart; the reservation taken for product 1
	// must be returned and the cart left intact. The cart is filled through
	// a failing oracle so the add-time clamp does not hide the shortage.
	cache := newMockCacheRepo(map[int64]int{1: 10, 2: 0})
	cart := NewCartService(&mockStockChecker{err: errors.New("oracle down")}, newMockCartStorage())
	svc := NewCheckoutService(cache, cart, 100)
	defer svc.Close()
	ctx := context.Background()

	cart.AddToCart(ctx, "s1", testLine(1, "10.00", 2))
	cart.AddToCart(ctx, "s1", testLine(2, "5.00", 1))

	_, err := svc.Checkout(ctx, "s1", "req-9")
	if !errors.Is(err, ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got: %v", err)
	}

	if cache.stockOf(1) != 10 {
		t.Errorf("expected product 1 stock restored to 10, got %d", cache.stockOf(1))
	}
	if c := cart.GetCart(ctx, "s1"); len(c.Lines) != 2 {
		t.Errorf("cart must survive a failed checkout, got %+v", c.Lines)
	}
	select {
	case order := <-svc.GetOrderQueue():
		t.Errorf("no order should be queued, got %s", order.ID)
	default:
	}
}

func TestCheckout_ReservationError(t *testing.T) {
	svc, cart, cache := newCheckoutFixture(t, map[int64]int{1: 10}, 100)
	defer svc.Close()
	ctx := context.Background()

	cart.AddToCart(ctx, "s1", testLine(1, "10.00", 1))
	cache.mu.Lock()
	cache.decrementErr = errors.New("redis down")
	cache.mu.Unlock()

	_, err := svc.Checkout(ctx, "s1", "req-1")
	if err == nil {
		t.Fatal("expected error when reservation fails")
	}
	if errors.Is(err, ErrInsufficientStock) {
		t.Errorf("transport failure must not read as sold out: %v", err)
	}
}

func TestCheckout_AfterCloseRejected(t *testing.T) {
	svc, cart, cache := newCheckoutFixture(t, map[int64]int{1: 10}, 100)
	ctx := context.Background()

	cart.AddToCart(ctx, "s1", testLine(1, "10.00", 2))
	svc.Close()

	// A checkout racing shutdown must fail cleanly, not send on the closed
	// queue, and must hand its reservation back.
	_, err := svc.Checkout(ctx, "s1", "req-late")
	if !errors.Is(err, ErrShuttingDown) {
		t.Fatalf("expected ErrShuttingDown, got: %v", err)
	}
	if cache.stockOf(1) != 10 {
		t.Errorf("expected reservation returned, got stock %d", cache.stockOf(1))
	}
	if c := cart.GetCart(ctx, "s1"); len(c.Lines) != 1 {
		t.Errorf("cart must survive a refused checkout, got %+v", c.Lines)
	}
}

func TestCheckout_ConcurrentNoOversell(t *testing.T) {
	initialStock := 20
	totalSessions := 50

	// Carts are filled through a failing oracle so the race is decided by
	// the reservation, not the add-time clamp.
	cache := newMockCacheRepo(map[int64]int{1: initialStock})
	cart := NewCartService(&mockStockChecker{err: errors.New("oracle down")}, newMockCartStorage())
	svc := NewCheckoutService(cache, cart, 1000)
	defer svc.Close()
	ctx := context.Background()

	go func() {
		for range svc.GetOrderQueue() {
		}
	}()

	for i := 0; i < totalSessions; i++ {
		cart.AddToCart(ctx, fmt.Sprintf("s-%d", i), testLine(1, "10.00", 1))
	}

	var successCount, failCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < totalSessions; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("s-%d", i)
			_, err := svc.Checkout(ctx, sessionID, fmt.Sprintf("req-%d", i))
			if err == nil {
				successCount.Add(1)
			} else {
				failCount.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if successCount.Load() != int32(initialStock) {
		t.Errorf("expected %d successes, got %d", initialStock, successCount.Load())
	}
	if failCount.Load() != int32(totalSessions-initialStock) {
		t.Errorf("expected %d failures, got %d", totalSessions-initialStock, failCount.Load())
	}
	if cache.stockOf(1) != 0 {
		t.Errorf("expected stock 0, got %d", cache.stockOf(1))
	}
}
