// Stress driver for a running server: hammers the cart and checkout endpoints
// with concurrent sessions competing for one product and reports whether the
// final stock count is consistent with the number of accepted orders.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/veloshop/storefront/internal/adapter/stockhttp"
	"github.com/veloshop/storefront/internal/core/domain"
)

const (
	baseURL       = "http://localhost:8080"
	productID     = 1
	initialStock  = 20
	totalRequests = 50
	quantity      = 1
)

func main() {
	ctx := context.Background()
	client := stockhttp.NewClient(baseURL, &http.Client{Timeout: 5 * time.Second})

	if _, err := client.AdjustStock(ctx, productID, initialStock, domain.StockSet); err != nil {
		log.Fatalf("failed to set initial stock: %v", err)
	}
	log.Printf("initialized stock: product %d = %d", productID, initialStock)

	var accepted, soldOut, failed atomic.Int32
	var wg sync.WaitGroup

	start := time.Now()
	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sessionID := fmt.Sprintf("stress-%d-%d", start.UnixNano(), i)

			applied, err := addToCart(sessionID)
			if err != nil {
				log.Printf("session %s: add to cart failed: %v", sessionID, err)
				failed.Add(1)
				return
			}
			if applied == 0 {
				// Stock check clamped the add to nothing; nothing to check out.
				soldOut.Add(1)
				return
			}

			status, err := checkout(sessionID)
			switch {
			case err != nil:
				log.Printf("session %s: checkout failed: %v", sessionID, err)
				failed.Add(1)
			case status == http.StatusOK:
				accepted.Add(1)
			case status == http.StatusGone:
				soldOut.Add(1)
			default:
				log.Printf("session %s: unexpected checkout status %d", sessionID, status)
				failed.Add(1)
			}
		}(i)
	}
	wg.Wait()
	elapsed := time.Since(start)

	remaining, err := client.GetStock(ctx, productID)
	if err != nil {
		log.Fatalf("failed to read final stock: %v", err)
	}

	fmt.Printf("requests:  %d in %v\n", totalRequests, elapsed)
	fmt.Printf("accepted:  %d\n", accepted.Load())
	fmt.Printf("sold out:  %d\n", soldOut.Load())
	fmt.Printf("failed:    %d\n", failed.Load())
	fmt.Printf("remaining: %d\n", remaining)

	expected := initialStock - int(accepted.Load())*quantity
	if remaining != expected {
		fmt.Printf("INCONSISTENT: expected remaining %d\n", expected)
	} else {
		fmt.Println("consistent: no oversell")
	}
}

func addToCart(sessionID string) (int, error) {
	payload, _ := json.Marshal(map[string]interface{}{
		"product_id": productID,
		"name":       "stress item",
		"unit_price": "10.00",
		"quantity":   quantity,
	})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/cart/items", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	var body struct {
		Applied int `json:"applied"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, err
	}
	return body.Applied, nil
}

func checkout(sessionID string) (int, error) {
	payload, _ := json.Marshal(map[string]string{"request_id": sessionID})

	req, err := http.NewRequest(http.MethodPost, baseURL+"/api/checkout", bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Session-ID", sessionID)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	return resp.StatusCode, nil
}
