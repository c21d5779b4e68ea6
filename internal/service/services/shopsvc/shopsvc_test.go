package shopsvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/bluelight/shop/internal/dal/interfaces/iorderitemrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/iorderrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/ioutboxrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/iproductrepo"
	"github.com/bluelight/shop/internal/service/models/cart"
	"github.com/bluelight/shop/internal/service/models/order"
	"github.com/bluelight/shop/internal/service/models/orderitem"
	"github.com/bluelight/shop/internal/service/models/outbox"
	"github.com/bluelight/shop/internal/service/models/product"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProductRepo struct {
	products map[string]product.Product
	queryErr error
}

func (m *mockProductRepo) Query(
	_ context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}

	var result []product.Product
	if len(filter.Ids) == 0 {
		for _, p := range m.products {
			result = append(result, p)
		}
		return result, nil
	}
	seen := map[string]bool{}
	for _, id := range filter.Ids {
		if p, ok := m.products[id]; ok && !seen[id] {
			result = append(result, p)
			seen[id] = true
		}
	}
	return result, nil
}

func (m *mockProductRepo) FindByID(ctx context.Context, id string) (*product.Product, error) {
	products, err := m.Query(ctx, &product.QueryProductsModel{Ids: []string{id}})
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, &product.NotFoundError{ID: id}
	}
	return &products[0], nil
}

func (m *mockProductRepo) BulkInsert(
	_ context.Context,
	products []product.Product,
) ([]product.Product, error) {
	for i := range products {
		if products[i].ID == "" {
			products[i].ID = uuid.NewString()
		}
		m.products[products[i].ID] = products[i]
	}
	return products, nil
}

func (m *mockProductRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.products)), nil
}

type mockOrderRepo struct {
	inserted  []order.Order
	insertErr error
}

func (m *mockOrderRepo) Insert(_ context.Context, o order.Order) (*order.Order, error) {
	if m.insertErr != nil {
		return nil, m.insertErr
	}
	o.ID = uuid.NewString()
	m.inserted = append(m.inserted, o)
	return &o, nil
}

func (m *mockOrderRepo) Query(
	_ context.Context,
	_ *order.QueryOrdersModel,
) ([]order.Order, error) {
	return m.inserted, nil
}

type mockOrderItemRepo struct {
	inserted []orderitem.OrderItem
}

func (m *mockOrderItemRepo) BulkInsert(
	_ context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	for i := range items {
		items[i].ID = int64(len(m.inserted) + 1)
		m.inserted = append(m.inserted, items[i])
	}
	return items, nil
}

func (m *mockOrderItemRepo) Query(
	_ context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, item := range m.inserted {
		for _, id := range filter.OrderIds {
			if item.OrderID == id {
				result = append(result, item)
			}
		}
	}
	return result, nil
}

type mockOutboxRepo struct {
	inserted []outbox.Message
}

func (m *mockOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	m.inserted = append(m.inserted, msg)
	return nil
}

func (m *mockOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.Message, error) {
	return m.inserted, nil
}

func (m *mockOutboxRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockOutboxRepo) UpdateRetry(
	_ context.Context, _ int64, _ int, _ string, _ time.Time,
) error {
	return nil
}

type mockUOW struct {
	productRepo   *mockProductRepo
	orderRepo     *mockOrderRepo
	orderItemRepo *mockOrderItemRepo
	outboxRepo    *mockOutboxRepo

	began      bool
	committed  bool
	rolledBack bool
}

func (m *mockUOW) Begin(_ context.Context) error { m.began = true; return nil }
func (m *mockUOW) Commit() error                 { m.committed = true; return nil }
func (m *mockUOW) Rollback() error               { m.rolledBack = true; return nil }

func (m *mockUOW) ProductRepository() iproductrepo.IProductRepository {
	return m.productRepo
}

func (m *mockUOW) OrderRepository() iorderrepo.IOrderRepository {
	return m.orderRepo
}

func (m *mockUOW) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return m.orderItemRepo
}

func (m *mockUOW) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return m.outboxRepo
}

func newTestService(products ...product.Product) (*ShopService, *mockUOW) {
	work := &mockUOW{
		productRepo:   &mockProductRepo{products: map[string]product.Product{}},
		orderRepo:     &mockOrderRepo{},
		orderItemRepo: &mockOrderItemRepo{},
		outboxRepo:    &mockOutboxRepo{},
	}
	for _, p := range products {
		work.productRepo.products[p.ID] = p
	}

	svc := MustNewShopService()
	svc.uowFactory = func() unitOfWork { return work }

	return svc, work
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCheckoutComputesTotal(t *testing.T) {
	svc, work := newTestService(
		product.Product{ID: "A", Title: "Arcade Pro", Price: price("10.00")},
		product.Product{ID: "B", Title: "Neon Pixel", Price: price("25.50")},
	)

	created, err := svc.Checkout(context.Background(), cart.Cart{
		Items: []cart.Item{
			{ProductID: "A", Quantity: 2},
			{ProductID: "B", Quantity: 1},
		},
		Email: "gamer@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "45.50", created.Total.StringFixed(2))
	assert.Equal(t, "gamer@example.com", created.Email)
	assert.Equal(t, order.StatusPaid, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.True(t, work.committed)
	assert.False(t, work.rolledBack)
}

func TestCheckoutRoundsHalfAwayFromZero(t *testing.T) {
	svc, _ := newTestService(
		product.Product{ID: "A", Price: price("0.333")},
	)

	created, err := svc.Checkout(context.Background(), cart.Cart{
		Items: []cart.Item{{ProductID: "A", Quantity: 2}},
	})

	require.NoError(t, err)
	// 0.666 rounds up to 0.67
	assert.Equal(t, "0.67", created.Total.StringFixed(2))
}

func TestCheckoutMissingProductAborts(t *testing.T) {
	for name, items := range map[string][]cart.Item{
		"missing first": {
			{ProductID: "Z", Quantity: 1},
			{ProductID: "A", Quantity: 1},
		},
		"missing last": {
			{ProductID: "A", Quantity: 1},
			{ProductID: "Z", Quantity: 1},
		},
	} {
		t.Run(name, func(t *testing.T) {
			svc, work := newTestService(
				product.Product{ID: "A", Price: price("10.00")},
			)

			created, err := svc.Checkout(context.Background(), cart.Cart{Items: items})

			require.Error(t, err)
			var notFound *product.NotFoundError
			require.ErrorAs(t, err, &notFound)
			assert.Equal(t, "Z", notFound.ID)
			assert.Nil(t, created)

			// No order, item or event may survive the failed lookup
			assert.Empty(t, work.orderRepo.inserted)
			assert.Empty(t, work.orderItemRepo.inserted)
			assert.Empty(t, work.outboxRepo.inserted)
			assert.False(t, work.committed)
			assert.True(t, work.rolledBack)
		})
	}
}

func TestCheckoutPersistsItemsWithoutPrices(t *testing.T) {
	svc, work := newTestService(
		product.Product{ID: "A", Price: price("10.00")},
		product.Product{ID: "B", Price: price("25.50")},
	)

	created, err := svc.Checkout(context.Background(), cart.Cart{
		Items: []cart.Item{
			{ProductID: "A", Quantity: 2},
			{ProductID: "B", Quantity: 1},
		},
	})

	require.NoError(t, err)
	require.Len(t, work.orderItemRepo.inserted, 2)
	assert.Equal(t, "A", work.orderItemRepo.inserted[0].ProductID)
	assert.Equal(t, 2, work.orderItemRepo.inserted[0].Quantity)
	assert.Equal(t, "B", work.orderItemRepo.inserted[1].ProductID)
	assert.Equal(t, 1, work.orderItemRepo.inserted[1].Quantity)
	for _, item := range work.orderItemRepo.inserted {
		assert.Equal(t, created.ID, item.OrderID)
	}
}

func TestCheckoutTwiceCreatesDistinctOrders(t *testing.T) {
	svc, _ := newTestService(
		product.Product{ID: "A", Price: price("10.00")},
	)

	c := cart.Cart{Items: []cart.Item{{ProductID: "A", Quantity: 3}}}

	first, err := svc.Checkout(context.Background(), c)
	require.NoError(t, err)
	second, err := svc.Checkout(context.Background(), c)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, first.Total.Equal(second.Total))
}

func TestCheckoutWritesOutboxEvent(t *testing.T) {
	svc, work := newTestService(
		product.Product{ID: "A", Price: price("10.00")},
		product.Product{ID: "B", Price: price("25.50")},
	)

	created, err := svc.Checkout(context.Background(), cart.Cart{
		Items: []cart.Item{
			{ProductID: "A", Quantity: 2},
			{ProductID: "B", Quantity: 1},
		},
		Email: "gamer@example.com",
	})
	require.NoError(t, err)

	require.Len(t, work.outboxRepo.inserted, 1)
	msg := work.outboxRepo.inserted[0]
	assert.Equal(t, "orders", msg.ExchangeName)
	assert.Equal(t, "order.created", msg.RoutingKey)
	assert.Equal(t, "application/json", msg.ContentType)

	var event orderCreatedEvent
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, "order.created", event.Event)
	assert.Equal(t, created.ID, event.OrderID)
	assert.Equal(t, "45.50", event.Total)
	assert.Len(t, event.Items, 2)
}

func TestCheckoutRollsBackOnPersistenceFailure(t *testing.T) {
	svc, work := newTestService(
		product.Product{ID: "A", Price: price("10.00")},
	)
	work.orderRepo.insertErr = errors.New("connection reset")

	created, err := svc.Checkout(context.Background(), cart.Cart{
		Items: []cart.Item{{ProductID: "A", Quantity: 1}},
	})

	require.Error(t, err)
	assert.Nil(t, created)
	assert.Empty(t, work.orderItemRepo.inserted)
	assert.Empty(t, work.outboxRepo.inserted)
	assert.False(t, work.committed)
	assert.True(t, work.rolledBack)
}

func TestSeedProductsOnlyOnce(t *testing.T) {
	svc, work := newTestService()

	count, err := svc.SeedProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Len(t, work.productRepo.products, 3)

	count, err = svc.SeedProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Len(t, work.productRepo.products, 3)
}

func TestGetOrdersAttachesItems(t *testing.T) {
	svc, _ := newTestService(
		product.Product{ID: "A", Price: price("10.00")},
	)

	created, err := svc.Checkout(context.Background(), cart.Cart{
		Items: []cart.Item{{ProductID: "A", Quantity: 2}},
		Email: "gamer@example.com",
	})
	require.NoError(t, err)

	orders, err := svc.GetOrders(context.Background(), order.QueryOrdersModel{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, created.ID, orders[0].ID)
	require.Len(t, orders[0].OrderItems, 1)
	assert.Equal(t, "A", orders[0].OrderItems[0].ProductID)
	assert.Equal(t, 2, orders[0].OrderItems[0].Quantity)
}
