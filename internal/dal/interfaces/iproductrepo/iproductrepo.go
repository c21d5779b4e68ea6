package iproductrepo

import (
	"context"

	"github.com/bluelight/shop/internal/service/models/product"
)

// IProductRepository is an interface for product postgres repository.
type IProductRepository interface {
	// Query retrieves products based on filter criteria.
	Query(ctx context.Context, filter *product.QueryProductsModel) ([]product.Product, error)

	// FindByID retrieves a single product, returning *product.NotFoundError
	// when the id does not resolve.
	FindByID(ctx context.Context, id string) (*product.Product, error)

	// BulkInsert inserts products and returns them with generated ids.
	BulkInsert(ctx context.Context, products []product.Product) ([]product.Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int64, error)
}
