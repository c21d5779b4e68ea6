package postgresrepo

import (
	"context"
	"fmt"

	"github.com/bluelight/shop/internal/service/models/orderitem"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// OrderItemDal represents order item data access layer model.
type OrderItemDal struct {
	Id        int64  `db:"id"`
	OrderId   string `db:"order_id"`
	ProductId string `db:"product_id"`
	Quantity  int    `db:"quantity"`
}

// ToModel converts OrderItemDal to service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:        oi.Id,
		OrderID:   oi.OrderId,
		ProductID: oi.ProductId,
		Quantity:  oi.Quantity,
	}
}

type PostgresOrderItemRepository struct {
	conn sqlx.ExtContext
}

func NewPostgresOrderItemRepository(pgClient sqlx.ExtContext) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: pgClient,
	}
}

// BulkInsert inserts multiple order items and returns them with generated ids
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	sql := `
		INSERT INTO order_items (
			order_id,
			product_id,
			quantity
		)
		SELECT
			order_id,
			product_id,
			quantity
		FROM unnest($1::text[], $2::text[], $3::int[])
		AS t(order_id, product_id, quantity)
		RETURNING
			id,
			order_id,
			product_id,
			quantity
	`

	orderIds := make([]string, len(orderItems))
	productIds := make([]string, len(orderItems))
	quantities := make([]int64, len(orderItems))

	for i, item := range orderItems {
		orderIds[i] = item.OrderID
		productIds[i] = item.ProductID
		quantities[i] = int64(item.Quantity)
	}

	rows, err := r.conn.QueryContext(ctx, sql,
		pq.Array(orderIds),
		pq.Array(productIds),
		pq.Array(quantities))
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		dal := OrderItemDal{}
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	sql := `
		SELECT
			id,
			order_id,
			product_id,
			quantity
		FROM order_items
		WHERE order_id = ANY($1::text[])
		ORDER BY id
	`

	rows, err := r.conn.QueryContext(ctx, sql, pq.Array(filter.OrderIds))
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.Quantity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
