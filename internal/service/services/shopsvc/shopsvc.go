package shopsvc

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/bluelight/shop/internal/dal/interfaces/iorderitemrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/iorderrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/ioutboxrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/iproductrepo"
	"github.com/bluelight/shop/internal/dal/postgres"
	"github.com/bluelight/shop/internal/dal/uow"
	"github.com/bluelight/shop/internal/service/models/cart"
	"github.com/bluelight/shop/internal/service/models/currency"
	"github.com/bluelight/shop/internal/service/models/diagnostics"
	"github.com/bluelight/shop/internal/service/models/order"
	"github.com/bluelight/shop/internal/service/models/orderitem"
	"github.com/bluelight/shop/internal/service/models/outbox"
	"github.com/bluelight/shop/internal/service/models/product"
	"github.com/shopspring/decimal"
)

const (
	ordersExchange         = "orders"
	routingKeyOrderCreated = "order.created"
	outboxMaxRetries       = 5
)

// ShopService is a service for the product catalog and checkout.
type ShopService struct {
	pgClient   *postgres.Client
	uowFactory func() unitOfWork
}

func (s *ShopService) newUOW() unitOfWork {
	if s.uowFactory != nil {
		return s.uowFactory()
	}
	return uow.NewUnitOfWork(s.pgClient)
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ProductRepository() iproductrepo.IProductRepository
	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the ShopService.
type option func(*ShopService)

// MustNewShopService creates a new ShopService.
func MustNewShopService(opts ...option) *ShopService {
	s := &ShopService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithPostgresClient sets the Postgres client for the ShopService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *ShopService) {
		s.pgClient = pgClient
	}
}

// orderCreatedEvent is the payload written to the outbox on checkout.
type orderCreatedEvent struct {
	Event   string      `json:"event"`
	OrderID string      `json:"order_id"`
	Email   string      `json:"email,omitempty"`
	Total   string      `json:"total"`
	Items   []cart.Item `json:"items"`
}

// Checkout resolves each cart item's price, computes the order total
// (rounded to 2 decimal places, half away from zero) and persists the
// order, its items and an order.created outbox event in one transaction.
//
// Any unresolvable product id aborts the whole operation with
// *product.NotFoundError before anything is written. There is no
// idempotency key: resubmitting an identical cart creates a second,
// independent order.
func (s *ShopService) Checkout(ctx context.Context, c cart.Cart) (*order.Order, error) {
	now := time.Now()

	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = work.Rollback()
		}
	}()

	ids := make([]string, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.ProductID
	}

	var products []product.Product
	if len(ids) > 0 {
		var err error
		products, err = work.ProductRepository().Query(ctx, &product.QueryProductsModel{Ids: ids})
		if err != nil {
			return nil, err
		}
	}

	priceByID := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		priceByID[p.ID] = p.Price
	}

	total := decimal.Zero
	for _, item := range c.Items {
		price, ok := priceByID[item.ProductID]
		if !ok {
			return nil, &product.NotFoundError{ID: item.ProductID}
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	total = total.Round(2)

	inserted, err := work.OrderRepository().Insert(ctx, order.Order{
		Email:         c.Email,
		Total:         total,
		TotalCurrency: currency.CurrencyUSD,
		Status:        order.StatusPaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return nil, err
	}

	items := make([]orderitem.OrderItem, len(c.Items))
	for i, item := range c.Items {
		items[i] = orderitem.OrderItem{
			OrderID:   inserted.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}
	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return nil, err
	}
	inserted.OrderItems = items

	payload, err := json.Marshal(orderCreatedEvent{
		Event:   routingKeyOrderCreated,
		OrderID: inserted.ID,
		Email:   inserted.Email,
		Total:   inserted.Total.StringFixed(2),
		Items:   c.Items,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order.created event: %w", err)
	}

	err = work.OutboxRepository().Insert(ctx, outbox.Message{
		ExchangeName: ordersExchange,
		RoutingKey:   routingKeyOrderCreated,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   outboxMaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
	if err != nil {
		return nil, err
	}

	if err := work.Commit(); err != nil {
		return nil, err
	}
	committed = true

	return inserted, nil
}

// ListProducts retrieves the whole catalog.
func (s *ShopService) ListProducts(ctx context.Context) ([]product.Product, error) {
	work := s.newUOW()

	return work.ProductRepository().Query(ctx, &product.QueryProductsModel{})
}

// SeedProducts inserts the default catalog if the products table is
// empty. Returns the number of products inserted (zero when the catalog
// is already seeded).
func (s *ShopService) SeedProducts(ctx context.Context) (int, error) {
	work := s.newUOW()

	count, err := work.ProductRepository().Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()
	catalog := defaultCatalog()
	for i := range catalog {
		catalog[i].CreatedAt = now
		catalog[i].UpdatedAt = now
	}

	inserted, err := work.ProductRepository().BulkInsert(ctx, catalog)
	if err != nil {
		return 0, err
	}

	return len(inserted), nil
}

// GetOrders retrieves orders with their items based on filter.
func (s *ShopService) GetOrders(
	ctx context.Context,
	filter order.QueryOrdersModel,
) ([]order.Order, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		return []order.Order{}, nil
	}

	orderItemQuery := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		orderItemQuery.OrderIds = append(orderItemQuery.OrderIds, o.ID)
	}
	orderItems, err := work.OrderItemRepository().Query(ctx, orderItemQuery)
	if err != nil {
		return nil, err
	}

	for i := range orders {
		for _, item := range orderItems {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return orders, nil
}

// Diagnostics probes database connectivity and lists up to 10 tables.
func (s *ShopService) Diagnostics(ctx context.Context) diagnostics.Report {
	report := diagnostics.Report{
		Backend:          "running",
		Database:         "unavailable",
		DatabaseURL:      "not set",
		ConnectionStatus: "not connected",
		Tables:           []string{},
	}

	if os.Getenv("SHOP_PG_HOST") != "" {
		report.DatabaseURL = "set"
	}

	if s.pgClient == nil {
		return report
	}

	if err := s.pgClient.Ping(ctx); err != nil {
		report.Database = "error: " + truncate(err.Error(), 50)
		return report
	}

	report.Database = "connected"
	report.ConnectionStatus = "connected"
	report.DatabaseName = s.pgClient.DatabaseName()

	tables, err := s.pgClient.Tables(ctx, 10)
	if err != nil {
		report.Database = "connected, catalog error: " + truncate(err.Error(), 50)
		return report
	}
	report.Tables = tables

	return report
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func defaultCatalog() []product.Product {
	return []product.Product{
		{
			Title:       "Arcade Pro Blue Light Glasses",
			Description: "Retro-styled frames with premium blue light filtering for marathon sessions.",
			Price:       decimal.NewFromInt(69),
			Category:    "gaming",
			InStock:     true,
			Image:       "https://images.unsplash.com/photo-1517336714731-489689fd1ca8?q=80&w=1200&auto=format&fit=crop",
			Tint:        "amber",
		},
		{
			Title:       "Neon Pixel Shields",
			Description: "Ultra-light, anti-glare lenses with vaporwave vibes.",
			Price:       decimal.NewFromInt(89),
			Category:    "gaming",
			InStock:     true,
			Image:       "https://images.unsplash.com/photo-1483985970261-352edc3d1c06?q=80&w=1200&auto=format&fit=crop",
			Tint:        "clear",
		},
		{
			Title:       "CRT Guardian Lenses",
			Description: "Maximum protection with retro flair. Stream-ready.",
			Price:       decimal.NewFromInt(99),
			Category:    "gaming",
			InStock:     true,
			Image:       "https://images.unsplash.com/photo-1512436991641-6745cdb1723f?q=80&w=1200&auto=format&fit=crop",
			Tint:        "rose",
		},
	}
}
