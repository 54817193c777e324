package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const orderColumns = `id, order_number, customer_id, shipping_address_id, subtotal, shipping_cost, total_amount, status, payment_status, created_at, updated_at`

type OrderRepository struct {
	DB DBTX
}

func NewOrderRepository(db DBTX) *OrderRepository {
	return &OrderRepository{DB: db}
}

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(
		&o.OrderID,
		&o.OrderNumber,
		&o.CustomerID,
		&o.ShippingAddressID,
		&o.Subtotal,
		&o.ShippingCost,
		&o.TotalAmount,
		&o.Status,
		&o.PaymentStatus,
		&o.CreatedAt,
		&o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	out := []model.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

// Create inserts the order header and fills in its id.
func (r *OrderRepository) Create(ctx context.Context, o *model.Order) error {
	now := time.Now()
	query := `
		INSERT INTO orders (order_number, customer_id, shipping_address_id, subtotal, shipping_cost, total_amount, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		o.OrderNumber, o.CustomerID, o.ShippingAddressID, o.Subtotal, o.ShippingCost,
		o.TotalAmount, o.Status, o.PaymentStatus, now,
	).Scan(&o.OrderID)
	if err != nil {
		return translate(err)
	}
	o.CreatedAt = &now
	o.UpdatedAt = &now
	return nil
}

// CreateItems inserts all order items with a single INSERT statement.
func (r *OrderRepository) CreateItems(ctx context.Context, items []model.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	var sb strings.Builder
	args := make([]any, 0, len(items)*5)
	sb.WriteString("INSERT INTO order_items (order_id, product_id, quantity, unit_price, total_price) VALUES ")
	for i, it := range items {
		if i > 0 {
			sb.WriteString(",")
		}
		// placeholders: ($1,$2,$3,$4,$5), ($6,...), ...
		pi := i*5 + 1
		sb.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)", pi, pi+1, pi+2, pi+3, pi+4))
		args = append(args, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice)
	}
	_, err := r.DB.Exec(ctx, sb.String(), args...)
	return translate(err)
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

func (r *OrderRepository) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE order_number=$1`, number))
	if err != nil {
		return nil, translate(err)
	}
	return o, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+orderColumns+` FROM orders WHERE customer_id=$1 ORDER BY created_at DESC`, customerID)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

// List returns a page of all orders (admin), optionally filtered by status.
func (r *OrderRepository) List(ctx context.Context, status string, limit, offset int) ([]model.Order, int64, error) {
	where := ""
	args := []any{}
	if status != "" {
		where = " WHERE status=$1"
		args = append(args, status)
	}

	var total int64
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM orders`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM orders%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, err
	}
	list, err := collectOrders(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetItems returns the order items joined with their product rows.
func (r *OrderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.total_price,
		       p.id, p.name, p.description, p.price, p.category, p.images, p.stock_quantity, p.in_stock,
		       p.sku, p.material, p.color, p.created_at, p.updated_at
		FROM order_items oi
		JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id=$1
	`
	rows, err := r.DB.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.OrderItem{}
	for rows.Next() {
		var it model.OrderItem
		var p model.Product
		if err := rows.Scan(
			&it.OrderItemID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice,
			&p.ProductID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images, &p.StockQuantity, &p.InStock,
			&p.SKU, &p.Material, &p.Color, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		it.Product = &p
		items = append(items, it)
	}
	return items, rows.Err()
}

// UpdateStatus sets status and/or payment_status. No transition rules apply.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, u model.OrderStatusUpdate) error {
	query := `
		UPDATE orders
		SET status=COALESCE($1, status),
		    payment_status=COALESCE($2, payment_status),
		    updated_at=$3
		WHERE id=$4
	`
	tag, err := r.DB.Exec(ctx, query, u.Status, u.PaymentStatus, time.Now(), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	query := `SELECT COUNT(*) FROM orders WHERE ($1 = '' OR status = $1)`
	err := r.DB.QueryRow(ctx, query, status).Scan(&n)
	return n, err
}

// Revenue sums the totals of every order that was not cancelled.
func (r *OrderRepository) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status <> $1`
	err := r.DB.QueryRow(ctx, query, model.OrderStatusCancelled).Scan(&total)
	return total, err
}
