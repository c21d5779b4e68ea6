package order

import (
	"time"

	"github.com/bluelight/shop/internal/service/models/currency"
	"github.com/bluelight/shop/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// Order represents a completed checkout persisted in the system.
// Total is rounded to 2 decimal places, half away from zero; per-item
// prices are intentionally not stored, only the aggregate.
type Order struct {
	ID            string                `json:"id"`
	Email         string                `json:"email,omitempty"`
	Total         decimal.Decimal       `json:"total"`
	TotalCurrency currency.Currency     `json:"totalCurrency"`
	Status        Status                `json:"status"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
	OrderItems    []orderitem.OrderItem `json:"orderItems"`
}
