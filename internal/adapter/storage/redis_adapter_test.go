package storage

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/veloshop/storefront/internal/port"
)

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestDecrementStock_Success(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	// Setup
	client.Del(ctx, "stock:9001")
	adapter.SetStock(ctx, 9001, 10)

	// Test
	ok, err := adapter.DecrementStock(ctx, 9001, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected success")
	}

	// Verify
	stock, found, err := adapter.GetStock(ctx, 9001)
	if err != nil || !found {
		t.Fatalf("unexpected read result: found=%v err=%v", found, err)
	}
	if stock != 7 {
		t.Errorf("expected stock 7, got %d", stock)
	}
}

func TestDecrementStock_Insufficient(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:9002")
	adapter.SetStock(ctx, 9002, 2)

	ok, err := adapter.DecrementStock(ctx, 9002, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected failure on insufficient stock")
	}

	stock, _, _ := adapter.GetStock(ctx, 9002)
	if stock != 2 {
		t.Errorf("stock must be untouched, expected 2, got %d", stock)
	}
}

func TestDecrementStock_MissingKey(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:9003")

	ok, err := adapter.DecrementStock(ctx, 9003, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected failure on missing counter")
	}
}

func TestDecrementStock_ConcurrentNeverNegative(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	initialStock := 20
	totalRequests := 50

	client.Del(ctx, "stock:9004")
	adapter.SetStock(ctx, 9004, initialStock)

	var successCount atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := adapter.DecrementStock(ctx, 9004, 1)
			if err == nil && ok {
				successCount.Add(1)
			}
		}()
	}
	wg.Wait()

	if successCount.Load() != int32(initialStock) {
		t.Errorf("expected %d successes, got %d", initialStock, successCount.Load())
	}
	stock, _, _ := adapter.GetStock(ctx, 9004)
	if stock != 0 {
		t.Errorf("expected stock 0, got %d", stock)
	}
}

func TestIncrementStock_RestoresReservation(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:9005")
	adapter.SetStock(ctx, 9005, 5)

	adapter.DecrementStock(ctx, 9005, 3)
	if err := adapter.IncrementStock(ctx, 9005, 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stock, _, _ := adapter.GetStock(ctx, 9005)
	if stock != 5 {
		t.Errorf("expected stock 5, got %d", stock)
	}
}

func TestGetStock_Miss(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "stock:9006")

	_, found, err := adapter.GetStock(ctx, 9006)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Error("expected miss")
	}
}

func TestSetIdempotency_SecondCallFails(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "checkout:test-req")

	ok, err := adapter.SetIdempotency(ctx, "checkout:test-req")
	if err != nil || !ok {
		t.Fatalf("first set should succeed: ok=%v err=%v", ok, err)
	}
	ok, err = adapter.SetIdempotency(ctx, "checkout:test-req")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("second set should report duplicate")
	}
}

func TestCartStorage_RoundTrip(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	adapter := NewRedisAdapter(client)

	client.Del(ctx, "cart:test-session")

	if _, err := adapter.GetCart(ctx, "test-session"); err != port.ErrCartNotStored {
		t.Errorf("expected ErrCartNotStored, got: %v", err)
	}

	payload := `{"lines":[{"product_id":1,"name":"a","unit_price":"9.99","image_url":"","quantity":2}]}`
	if err := adapter.SaveCart(ctx, "test-session", payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := adapter.GetCart(ctx, "test-session")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != payload {
		t.Errorf("expected stored payload back, got %q", got)
	}

	if err := adapter.DeleteCart(ctx, "test-session"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := adapter.GetCart(ctx, "test-session"); err != port.ErrCartNotStored {
		t.Errorf("expected ErrCartNotStored after delete, got: %v", err)
	}
}
