package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type OrderLine struct {
	ProductID int64
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type Order struct {
	ID        string
	SessionID string
	Lines     []OrderLine
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderFromCart snapshots the cart into a pending order.
func OrderFromCart(id, sessionID string, cart *Cart, now time.Time) Order {
	lines := make([]OrderLine, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, OrderLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}
	return Order{
		ID:        id,
		SessionID: sessionID,
		Lines:     lines,
		Total:     cart.Subtotal(),
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
