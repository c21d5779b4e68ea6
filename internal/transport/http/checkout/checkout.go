package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/bluelight/shop/internal/service/models/cart"
	"github.com/bluelight/shop/internal/service/models/order"
	"github.com/bluelight/shop/internal/service/models/product"
	"github.com/go-playground/validator/v10"
)

// service is an interface for the service layer.
type service interface {
	Checkout(ctx context.Context, c cart.Cart) (*order.Order, error)
}

// itemInCheckoutRequest represents a cart item in a checkout request.
type itemInCheckoutRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"   validate:"gt=0"`
}

// checkoutRequest represents a checkout request. Empty carts and
// non-positive quantities are rejected here, before the service runs.
type checkoutRequest struct {
	Items []itemInCheckoutRequest `json:"items" validate:"required,min=1,dive"`
	Email string                  `json:"email"`
}

// Validate validates the checkout request.
func (r *checkoutRequest) Validate() error {
	return validator.New().Struct(r)
}

// toModel converts checkoutRequest to cart.Cart.
func (r *checkoutRequest) toModel() cart.Cart {
	items := make([]cart.Item, len(r.Items))
	for i, item := range r.Items {
		items[i] = cart.Item{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	return cart.Cart{
		Items: items,
		Email: r.Email,
	}
}

// checkoutResponse is the success payload.
type checkoutResponse struct {
	Ok      bool        `json:"ok"`
	OrderID string      `json:"order_id"`
	Total   json.Number `json:"total"`
}

// Checkout handles the checkout request.
func Checkout(w http.ResponseWriter, r *http.Request, service service) {
	req := checkoutRequest{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to decode request body", http.StatusBadRequest)
		slog.Error("Error decoding request body for checkout", "error", err)

		return
	}

	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error validating request body for checkout", "error", err)

		return
	}

	created, err := service.Checkout(r.Context(), req.toModel())
	if err != nil {
		var notFound *product.NotFoundError
		if errors.As(err, &notFound) {
			http.Error(w, notFound.Error(), http.StatusNotFound)
			slog.Info("Checkout rejected: unknown product", "product_id", notFound.ID)

			return
		}

		// Internals are logged, not exposed
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		slog.Error("Error performing checkout", "error", err)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	response := checkoutResponse{
		Ok:      true,
		OrderID: created.ID,
		Total:   json.Number(created.Total.StringFixed(2)),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error sending response for checkout", "error", err)
	}
}
