package cart

// Item is a single product/quantity pair submitted for checkout.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart is the transient list of items (plus optional contact email)
// submitted for checkout. It is consumed by a single checkout call and
// never persisted as-is.
type Cart struct {
	Items []Item `json:"items"`
	Email string `json:"email,omitempty"`
}
