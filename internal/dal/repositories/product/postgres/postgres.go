package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/bluelight/shop/internal/service/models/product"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// ProductDal represents product data access layer model
type ProductDal struct {
	Id          string          `db:"id"`
	Title       string          `db:"title"`
	Description string          `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Category    string          `db:"category"`
	InStock     bool            `db:"in_stock"`
	Image       string          `db:"image"`
	Tint        string          `db:"tint"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

// ToModel converts ProductDal to service layer Product model
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:          p.Id,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		InStock:     p.InStock,
		Image:       p.Image,
		Tint:        p.Tint,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type PostgresProductRepository struct {
	conn sqlx.ExtContext
}

func NewPostgresProductRepository(pgClient sqlx.ExtContext) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: pgClient,
	}
}

// Query retrieves products based on filter criteria
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	builder := sq.Select(
		"id",
		"title",
		"description",
		"price",
		"category",
		"in_stock",
		"image",
		"tint",
		"created_at",
		"updated_at",
	).
		From("products").
		OrderBy("created_at").
		PlaceholderFormat(sq.Dollar)

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build products query: %w", err)
	}

	var dals []ProductDal
	if err := sqlx.SelectContext(ctx, r.conn, &dals, query, args...); err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}

	result := make([]product.Product, 0, len(dals))
	for i := range dals {
		result = append(result, *dals[i].ToModel())
	}

	return result, nil
}

// FindByID retrieves a single product by id. Returns *product.NotFoundError
// when the id does not resolve to an existing product.
func (r *PostgresProductRepository) FindByID(
	ctx context.Context,
	id string,
) (*product.Product, error) {
	products, err := r.Query(ctx, &product.QueryProductsModel{Ids: []string{id}})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &product.NotFoundError{ID: id}
	}

	return &products[0], nil
}

// BulkInsert inserts products, assigning generated ids, and returns them
func (r *PostgresProductRepository) BulkInsert(
	ctx context.Context,
	products []product.Product,
) ([]product.Product, error) {
	if len(products) == 0 {
		return []product.Product{}, nil
	}

	builder := sq.Insert("products").
		Columns(
			"id",
			"title",
			"description",
			"price",
			"category",
			"in_stock",
			"image",
			"tint",
			"created_at",
			"updated_at",
		).
		PlaceholderFormat(sq.Dollar)

	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.NewString()
		}
		builder = builder.Values(
			products[i].ID,
			products[i].Title,
			products[i].Description,
			products[i].Price,
			products[i].Category,
			products[i].InStock,
			products[i].Image,
			products[i].Tint,
			products[i].CreatedAt,
			products[i].UpdatedAt,
		)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build products insert: %w", err)
	}

	if _, err := r.conn.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to bulk insert products: %w", err)
	}

	return products, nil
}

// Count returns the total number of products
func (r *PostgresProductRepository) Count(ctx context.Context) (int64, error) {
	query, args, err := sq.Select("COUNT(*)").From("products").ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build products count query: %w", err)
	}

	var count int64
	if err := sqlx.GetContext(ctx, r.conn, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}

	return count, nil
}
