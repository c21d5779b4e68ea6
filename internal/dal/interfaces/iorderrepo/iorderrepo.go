package iorderrepo

import (
	"context"

	"github.com/bluelight/shop/internal/service/models/order"
)

// IOrderRepository is an interface for order postgres repository.
type IOrderRepository interface {
	// Insert persists a new order and returns it with the generated id.
	Insert(ctx context.Context, o order.Order) (*order.Order, error)

	// Query retrieves orders based on filter criteria.
	Query(ctx context.Context, filter *order.QueryOrdersModel) ([]order.Order, error)
}
