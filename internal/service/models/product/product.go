package product

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product. Checkout only cares about Price;
// the rest of the fields describe the product to the storefront.
type Product struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	InStock     bool            `json:"in_stock"`
	Image       string          `json:"image"`
	Tint        string          `json:"tint"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// NotFoundError reports a product id that does not resolve to an
// existing product. Checkout aborts with this error before any write.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ID)
}
