package repository

import (
	"context"
	"fmt"

	"SareeStoreAPI/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CheckoutWriter is the set of writes an order assembly performs. All of
// them run on the same transaction.
type CheckoutWriter interface {
	// UpsertCustomer resolves c by email, creating the row when missing.
	UpsertCustomer(ctx context.Context, c *model.Customer) error
	CreateAddress(ctx context.Context, a *model.Address) error
	CreateOrder(ctx context.Context, o *model.Order) error
	CreateOrderItems(ctx context.Context, items []model.OrderItem) error
}

type CheckoutRepository struct {
	DB *pgxpool.Pool
}

func NewCheckoutRepository(db *pgxpool.Pool) *CheckoutRepository {
	return &CheckoutRepository{DB: db}
}

// WithinTx runs fn inside a single transaction. Any error returned by fn
// rolls back every row written through the CheckoutWriter.
func (r *CheckoutRepository) WithinTx(ctx context.Context, fn func(w CheckoutWriter) error) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	w := &checkoutWriter{
		customers: NewCustomerRepository(tx),
		orders:    NewOrderRepository(tx),
	}
	if err := fn(w); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type checkoutWriter struct {
	customers *CustomerRepository
	orders    *OrderRepository
}

func (w *checkoutWriter) UpsertCustomer(ctx context.Context, c *model.Customer) error {
	return w.customers.Upsert(ctx, c)
}

func (w *checkoutWriter) CreateAddress(ctx context.Context, a *model.Address) error {
	return w.customers.CreateAddress(ctx, a)
}

func (w *checkoutWriter) CreateOrder(ctx context.Context, o *model.Order) error {
	return w.orders.Create(ctx, o)
}

func (w *checkoutWriter) CreateOrderItems(ctx context.Context, items []model.OrderItem) error {
	return w.orders.CreateItems(ctx, items)
}
