package stockhttp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veloshop/storefront/internal/core/domain"
)

func TestGetStock_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/products/7/stock" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"stock":42}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	stock, err := client.GetStock(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	if stock != 42 {
		t.Errorf("expected 42, got %d", stock)
	}
}

func TestGetStock_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.GetStock(context.Background(), 1); !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestGetStock_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.GetStock(context.Background(), 1); err == nil {
		t.Error("expected error for 500 response")
	}
}

func TestGetStock_MissingCount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	stock, err := client.GetStock(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	if stock != -1 {
		t.Errorf("expected -1 when count is omitted, got %d", stock)
	}
}

func TestGetStock_ZeroIsNotMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"stock":0}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	stock, err := client.GetStock(context.Background(), 1)
	if err != nil {
		t.Fatalf("GetStock failed: %v", err)
	}
	if stock != 0 {
		t.Errorf("expected 0, got %d", stock)
	}
}

func TestAdjustStock_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		var req struct {
			Quantity  int    `json:"quantity"`
			Operation string `json:"operation"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Quantity != 5 || req.Operation != "set" {
			t.Errorf("unexpected payload: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"stock":5}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	stock, err := client.AdjustStock(context.Background(), 3, 5, domain.StockSet)
	if err != nil {
		t.Fatalf("AdjustStock failed: %v", err)
	}
	if stock != 5 {
		t.Errorf("expected 5, got %d", stock)
	}
}
