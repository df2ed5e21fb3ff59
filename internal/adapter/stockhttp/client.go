// Package stockhttp is an HTTP client for the stock endpoints, usable wherever
// a port.StockChecker is expected.
package stockhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/veloshop/storefront/internal/core/domain"
)

var ErrProductNotFound = errors.New("product not found")

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// GetStock returns the current stock count. When the endpoint answers 200 but
// omits the count, -1 is returned with a nil error; callers treating the
// result as a capacity substitute their own default.
func (c *Client) GetStock(ctx context.Context, productID int64) (int, error) {
	url := fmt.Sprintf("%s/api/products/%d/stock", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("stock request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("stock request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Stock *int `json:"stock"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode stock response: %w", err)
	}
	if body.Stock == nil {
		return -1, nil
	}
	return *body.Stock, nil
}

// AdjustStock applies op to the product's stock and returns the resulting
// count.
func (c *Client) AdjustStock(ctx context.Context, productID int64, quantity int, op domain.StockOperation) (int, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"quantity":  quantity,
		"operation": string(op),
	})
	if err != nil {
		return 0, err
	}

	url := fmt.Sprintf("%s/api/products/%d/stock", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("stock request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return 0, ErrProductNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("stock request: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Stock int `json:"stock"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("decode stock response: %w", err)
	}
	return body.Stock, nil
}
