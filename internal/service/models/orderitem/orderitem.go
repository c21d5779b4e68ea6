package orderitem

// OrderItem represents a (product, quantity) line within an order. The
// unit price is resolved at checkout time and folded into the order
// total; it is not stored on the line.
type OrderItem struct {
	ID        int64  `json:"id"`
	OrderID   string `json:"orderId"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
