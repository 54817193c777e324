package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"SareeStoreAPI/internal/events"
	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderProvider interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.Order, error)
	List(ctx context.Context, status string, limit, offset int) ([]model.Order, int64, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, u model.OrderStatusUpdate) error
	CountByStatus(ctx context.Context, status string) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
}

type CustomerProvider interface {
	Create(ctx context.Context, c *model.Customer) error
	GetByEmail(ctx context.Context, email string) (*model.Customer, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	ListAll(ctx context.Context) ([]model.Customer, error)
	Count(ctx context.Context) (int64, error)
	GetAddress(ctx context.Context, id uuid.UUID) (*model.Address, error)
}

type OrderService struct {
	Orders    OrderProvider
	Customers CustomerProvider
	Events    EventPublisher
}

func NewOrderService(o OrderProvider, c CustomerProvider) *OrderService {
	return &OrderService{Orders: o, Customers: c}
}

// Detail assembles an order with its customer, address and items. Only a
// missing order is reported as not found.
func (s *OrderService) Detail(ctx context.Context, id uuid.UUID) (*model.OrderDetail, error) {
	o, err := s.Orders.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, o)
}

// Track looks an order up by its public number.
func (s *OrderService) Track(ctx context.Context, number string) (*model.OrderDetail, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return nil, invalid("orderNumber", "order number is required")
	}
	o, err := s.Orders.GetByNumber(ctx, number)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, o)
}

func (s *OrderService) assemble(ctx context.Context, o *model.Order) (*model.OrderDetail, error) {
	c, err := s.Customers.GetByID(ctx, o.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("load customer: %w", err)
	}
	a, err := s.Customers.GetAddress(ctx, o.ShippingAddressID)
	if err != nil {
		return nil, fmt.Errorf("load address: %w", err)
	}
	items, err := s.Orders.GetItems(ctx, o.OrderID)
	if err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	return &model.OrderDetail{Order: *o, Customer: *c, Address: *a, Items: items}, nil
}

// ListByEmail returns a customer's orders, newest first. Unknown emails get
// an empty list.
func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]model.Order, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, invalid("email", "email is required")
	}
	c, err := s.Customers.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.Order{}, nil
	}
	if err != nil {
		return nil, err
	}
	return s.Orders.ListByCustomer(ctx, c.CustomerID)
}

type OrderPage struct {
	Orders []model.Order
	Total  int64
	Limit  int
	Offset int
}

// List is the admin listing, optionally narrowed to one status.
func (s *OrderService) List(ctx context.Context, status string, limit, offset int) (*OrderPage, error) {
	if status != "" && !slices.Contains(model.OrderStatuses, status) {
		return nil, invalid("status", "invalid status: "+status)
	}
	limit = clampLimit(limit, DefaultPageSize)
	if offset < 0 {
		offset = 0
	}
	orders, total, err := s.Orders.List(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	return &OrderPage{Orders: orders, Total: total, Limit: limit, Offset: offset}, nil
}

// UpdateStatus sets the order and/or payment status. Any allowed value may
// follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, id uuid.UUID, u model.OrderStatusUpdate) (*model.Order, error) {
	if u.Status == nil && u.PaymentStatus == nil {
		return nil, invalid("status", "status or paymentStatus is required")
	}
	if u.Status != nil && !slices.Contains(model.OrderStatuses, *u.Status) {
		return nil, invalid("status", "invalid status: "+*u.Status)
	}
	if u.PaymentStatus != nil && !slices.Contains(model.PaymentStatuses, *u.PaymentStatus) {
		return nil, invalid("paymentStatus", "invalid payment status: "+*u.PaymentStatus)
	}

	err := s.Orders.UpdateStatus(ctx, id, u)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	o, err := s.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	logger.Info().
		Str("order_number", o.OrderNumber).
		Str("status", o.Status).
		Str("payment_status", o.PaymentStatus).
		Msg("order status updated")

	if s.Events != nil {
		ev := events.OrderEvent{
			Type:          events.OrderStatusUpdated,
			OrderID:       o.OrderID,
			OrderNumber:   o.OrderNumber,
			Status:        o.Status,
			PaymentStatus: o.PaymentStatus,
			TotalAmount:   o.TotalAmount,
			OccurredAt:    time.Now().UTC(),
		}
		if err := s.Events.Publish(ctx, ev); err != nil {
			logger.Warn().Err(err).Str("order_number", o.OrderNumber).Msg("publish order.status_updated")
		}
	}
	return o, nil
}
