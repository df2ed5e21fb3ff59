package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/veloshop/storefront/internal/core/domain"
	"github.com/veloshop/storefront/internal/core/service"
)

const sessionHeader = "X-Session-ID"

type HTTPHandler struct {
	catalog  *service.CatalogService
	stock    *service.StockService
	cart     *service.CartService
	checkout *service.CheckoutService
}

func NewHTTPHandler(catalog *service.CatalogService, stock *service.StockService, cart *service.CartService, checkout *service.CheckoutService) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, stock: stock, cart: cart, checkout: checkout}
}

// Register wires every route onto mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.HealthCheck)

	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("GET /api/products/{id}/stock", h.GetStock)
	mux.HandleFunc("PUT /api/products/{id}/stock", h.AdjustStock)

	mux.HandleFunc("GET /api/cart", h.GetCart)
	mux.HandleFunc("DELETE /api/cart", h.ClearCart)
	mux.HandleFunc("POST /api/cart/items", h.AddToCart)
	mux.HandleFunc("PUT /api/cart/items/{id}", h.UpdateQuantity)
	mux.HandleFunc("DELETE /api/cart/items/{id}", h.RemoveItem)

	mux.HandleFunc("POST /api/checkout", h.Checkout)
}

type productResponse struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url"`
	Category  string          `json:"category"`
	Inventory int             `json:"inventory"`
}

type stockResponse struct {
	Stock int `json:"stock"`
}

type adjustStockRequest struct {
	Quantity  int    `json:"quantity"`
	Operation string `json:"operation"`
}

type cartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	Subtotal  decimal.Decimal   `json:"subtotal"`
	ItemCount int               `json:"item_count"`
}

type addItemRequest struct {
	ProductID int64           `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	ImageURL  string          `json:"image_url"`
	Quantity  int             `json:"quantity"`
}

type mutationResponse struct {
	Applied int  `json:"applied"`
	Limited bool `json:"limited"`
}

type checkoutRequest struct {
	RequestID string `json:"request_id"`
}

type checkoutResponse struct {
	OrderID string `json:"order_id"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	product, err := h.catalog.GetProduct(r.Context(), id)
	if errors.Is(err, service.ErrProductNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "product not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, toProductResponse(*product))
}

func (h *HTTPHandler) GetStock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	stock, err := h.stock.GetStock(r.Context(), id)
	if errors.Is(err, service.ErrProductNotFound) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "product not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, stockResponse{Stock: stock})
}

func (h *HTTPHandler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req adjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	stock, err := h.stock.AdjustStock(r.Context(), id, req.Quantity, domain.StockOperation(req.Operation))
	switch {
	case errors.Is(err, service.ErrInvalidOperation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid parameters"})
	case errors.Is(err, service.ErrProductNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "product not found"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	default:
		writeJSON(w, http.StatusOK, stockResponse{Stock: stock})
	}
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	cart := h.cart.GetCart(r.Context(), sessionID)
	writeJSON(w, http.StatusOK, toCartResponse(cart))
}

func (h *HTTPHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.ProductID <= 0 || req.Quantity <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		return
	}
	applied, limited, err := h.cart.AddToCart(r.Context(), sessionID, domain.CartLine{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		ImageURL:  req.ImageURL,
		Quantity:  req.Quantity,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Applied: applied, Limited: limited})
}

func (h *HTTPHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	id, ok := productID(w, r)
	if !ok {
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	applied, limited, err := h.cart.UpdateQuantity(r.Context(), sessionID, id, req.Quantity)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{Applied: applied, Limited: limited})
}

func (h *HTTPHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	id, ok := productID(w, r)
	if !ok {
		return
	}
	if err := h.cart.RemoveItem(r.Context(), sessionID, id); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	if err := h.cart.ClearCart(r.Context(), sessionID); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session(w, r)
	if !ok {
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.RequestID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing required fields"})
		return
	}

	orderID, err := h.checkout.Checkout(r.Context(), sessionID, req.RequestID)
	switch {
	case errors.Is(err, service.ErrEmptyCart):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "cart is empty"})
	case errors.Is(err, service.ErrDuplicateRequest):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "duplicate request"})
	case errors.Is(err, service.ErrInsufficientStock):
		writeJSON(w, http.StatusGone, errorResponse{Error: "sold out"})
	case errors.Is(err, service.ErrShuttingDown):
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "shutting down"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	default:
		writeJSON(w, http.StatusOK, checkoutResponse{OrderID: orderID})
	}
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:        p.ID,
		Name:      p.Name,
		Slug:      p.Slug,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
		Inventory: p.Inventory,
	}
}

func toCartResponse(cart domain.Cart) cartResponse {
	lines := cart.Lines
	if lines == nil {
		lines = []domain.CartLine{}
	}
	return cartResponse{
		Lines:     lines,
		Subtotal:  cart.Subtotal(),
		ItemCount: cart.ItemCount(),
	}
}

func session(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "missing session id"})
		return "", false
	}
	return sessionID, true
}

func productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
