package uow

import (
	"context"

	"github.com/bluelight/shop/internal/dal/interfaces/iorderitemrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/iorderrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/ioutboxrepo"
	"github.com/bluelight/shop/internal/dal/interfaces/iproductrepo"
	"github.com/bluelight/shop/internal/dal/postgres"
	orderrepo "github.com/bluelight/shop/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/bluelight/shop/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/bluelight/shop/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/bluelight/shop/internal/dal/repositories/product/postgres"

	"github.com/jmoiron/sqlx"
)

type unitOfWork struct {
	db            *sqlx.DB
	tx            *sqlx.Tx
	productRepo   iproductrepo.IProductRepository
	orderRepo     iorderrepo.IOrderRepository
	orderItemRepo iorderitemrepo.IOrderItemRepository
	outboxRepo    ioutboxrepo.IOutboxRepository
}

func (u *unitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepo
}

func (u *unitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepo
}

func (u *unitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepo
}

func (u *unitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepo
}

func NewUnitOfWork(db *postgres.Client) *unitOfWork {
	return &unitOfWork{
		db:            db.DB(),
		productRepo:   productrepo.NewPostgresProductRepository(db.DB()),
		orderRepo:     orderrepo.NewPostgresOrderRepository(db.DB()),
		orderItemRepo: orderitemrepo.NewPostgresOrderItemRepository(db.DB()),
		outboxRepo:    outboxrepo.NewPostgresOutboxRepository(db.DB()),
	}
}

func (u *unitOfWork) Begin(ctx context.Context) error {
	tx, err := u.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	u.tx = tx
	// Repositories bound to the transaction
	u.productRepo = productrepo.NewPostgresProductRepository(tx)
	u.orderRepo = orderrepo.NewPostgresOrderRepository(tx)
	u.orderItemRepo = orderitemrepo.NewPostgresOrderItemRepository(tx)
	u.outboxRepo = outboxrepo.NewPostgresOutboxRepository(tx)

	return nil
}

func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit()
}

func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback()
}
