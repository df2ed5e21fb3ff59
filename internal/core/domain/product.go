package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        int64
	Name      string
	Slug      string
	Price     decimal.Decimal
	ImageURL  string
	Category  string
	Inventory int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// StockOperation is a mutation applied to a product's inventory count.
type StockOperation string

const (
	StockIncrease StockOperation = "increase"
	StockDecrease StockOperation = "decrease"
	StockSet      StockOperation = "set"
)

func (op StockOperation) Valid() bool {
	switch op {
	case StockIncrease, StockDecrease, StockSet:
		return true
	}
	return false
}

// Apply computes the new inventory count. decrease floors at zero and set
// clamps a negative target to zero; increase is unbounded.
func (op StockOperation) Apply(current, quantity int) int {
	switch op {
	case StockIncrease:
		return current + quantity
	case StockDecrease:
		return max(current-quantity, 0)
	case StockSet:
		return max(quantity, 0)
	}
	return current
}
