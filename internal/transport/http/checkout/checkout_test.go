package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bluelight/shop/internal/service/models/cart"
	"github.com/bluelight/shop/internal/service/models/order"
	"github.com/bluelight/shop/internal/service/models/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock service for testing.
type mockService struct {
	checkoutFunc func(ctx context.Context, c cart.Cart) (*order.Order, error)
	calls        int
}

func (m *mockService) Checkout(ctx context.Context, c cart.Cart) (*order.Order, error) {
	m.calls++
	if m.checkoutFunc != nil {
		return m.checkoutFunc(ctx, c)
	}
	return &order.Order{
		ID:     "3f6f2f7e-0000-0000-0000-000000000001",
		Email:  c.Email,
		Total:  decimal.RequireFromString("45.50"),
		Status: order.StatusPaid,
	}, nil
}

func doCheckout(svc *mockService, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(body))
	w := httptest.NewRecorder()
	Checkout(w, req, svc)
	return w
}

func TestCheckoutSuccess(t *testing.T) {
	svc := &mockService{}

	w := doCheckout(svc, `{
		"items": [
			{"product_id": "A", "quantity": 2},
			{"product_id": "B", "quantity": 1}
		],
		"email": "gamer@example.com"
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp struct {
		Ok      bool        `json:"ok"`
		OrderID string      `json:"order_id"`
		Total   json.Number `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.Equal(t, "3f6f2f7e-0000-0000-0000-000000000001", resp.OrderID)
	assert.Equal(t, json.Number("45.50"), resp.Total)
	assert.Equal(t, 1, svc.calls)
}

func TestCheckoutPassesCartToService(t *testing.T) {
	var got cart.Cart
	svc := &mockService{
		checkoutFunc: func(_ context.Context, c cart.Cart) (*order.Order, error) {
			got = c
			return &order.Order{ID: "id", Total: decimal.Zero}, nil
		},
	}

	w := doCheckout(svc, `{"items": [{"product_id": "A", "quantity": 2}], "email": "x@y.z"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, got.Items, 1)
	assert.Equal(t, cart.Item{ProductID: "A", Quantity: 2}, got.Items[0])
	assert.Equal(t, "x@y.z", got.Email)
}

func TestCheckoutUnknownProduct(t *testing.T) {
	svc := &mockService{
		checkoutFunc: func(_ context.Context, _ cart.Cart) (*order.Order, error) {
			return nil, &product.NotFoundError{ID: "Z"}
		},
	}

	w := doCheckout(svc, `{"items": [{"product_id": "Z", "quantity": 1}]}`)

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Z")
}

func TestCheckoutRejectsMalformedInput(t *testing.T) {
	tests := map[string]string{
		"empty items":       `{"items": []}`,
		"missing items":     `{"email": "x@y.z"}`,
		"zero quantity":     `{"items": [{"product_id": "A", "quantity": 0}]}`,
		"negative quantity": `{"items": [{"product_id": "A", "quantity": -2}]}`,
		"empty product id":  `{"items": [{"product_id": "", "quantity": 1}]}`,
		"bad json":          `{"items": [`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &mockService{}

			w := doCheckout(svc, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, svc.calls, "service must not run for invalid input")
		})
	}
}

func TestCheckoutInternalErrorIsSanitized(t *testing.T) {
	svc := &mockService{
		checkoutFunc: func(_ context.Context, _ cart.Cart) (*order.Order, error) {
			return nil, assert.AnError
		},
	}

	w := doCheckout(svc, `{"items": [{"product_id": "A", "quantity": 1}]}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), assert.AnError.Error())
}
