package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"SareeStoreAPI/internal/events"
	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CheckoutStore runs the order writes as one unit.
type CheckoutStore interface {
	WithinTx(ctx context.Context, fn func(w repository.CheckoutWriter) error) error
}

// IdempotencyGuard remembers checkout keys. Reserve returns false for a key
// already seen.
type IdempotencyGuard interface {
	Reserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, e events.OrderEvent) error
}

// CheckoutItem is one cart line as submitted. Price is what the client
// displayed; the catalog price is what gets charged.
type CheckoutItem struct {
	ProductID uuid.UUID
	Price     float64
}

type CheckoutRequest struct {
	Address        ShippingAddress
	Items          []CheckoutItem
	ShippingCost   float64
	IdempotencyKey string
}

type CheckoutResult struct {
	OrderID      uuid.UUID
	OrderNumber  string
	Subtotal     decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

type CheckoutService struct {
	Store    CheckoutStore
	Products ProductProvider
	Shipping *ShippingService

	// Optional collaborators; nil disables them.
	Guard     IdempotencyGuard
	Validator EmailValidator
	Events    EventPublisher

	Now         func() time.Time
	OrderNumber func(time.Time) string
}

func NewCheckoutService(store CheckoutStore, products ProductProvider, shipping *ShippingService) *CheckoutService {
	return &CheckoutService{
		Store:       store,
		Products:    products,
		Shipping:    shipping,
		Now:         time.Now,
		OrderNumber: NewOrderNumber,
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// priceItems resolves every submitted line against the catalog.
func (s *CheckoutService) priceItems(ctx context.Context, items []CheckoutItem) ([]model.OrderItem, decimal.Decimal, error) {
	if len(items) == 0 {
		return nil, decimal.Zero, invalid("items", "cart is empty")
	}
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, it := range items {
		if it.ProductID == uuid.Nil {
			return nil, decimal.Zero, invalid("items", "productId is required")
		}
		if seen[it.ProductID] {
			return nil, decimal.Zero, invalid("items", fmt.Sprintf("product %s appears more than once", it.ProductID))
		}
		seen[it.ProductID] = true
		ids = append(ids, it.ProductID)
	}

	products, err := s.Products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ProductID] = p
	}

	subtotal := decimal.Zero
	out := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, decimal.Zero, invalid("items", fmt.Sprintf("unknown product %s", it.ProductID))
		}
		if !p.InStock {
			return nil, decimal.Zero, fmt.Errorf("%w: %s", ErrOutOfStock, p.Name)
		}
		if it.Price != 0 && it.Price != p.Price {
			logger.Warn().
				Str("product_id", p.ProductID.String()).
				Float64("client_price", it.Price).
				Float64("catalog_price", p.Price).
				Msg("client price differs from catalog")
		}
		price := decimal.NewFromFloat(p.Price)
		subtotal = subtotal.Add(price)
		out = append(out, model.OrderItem{
			ProductID:  p.ProductID,
			Quantity:   1,
			UnitPrice:  p.Price,
			TotalPrice: p.Price,
		})
	}
	return out, subtotal, nil
}

func (s *CheckoutService) checkEmail(ctx context.Context, email string) error {
	if s.Validator == nil {
		return nil
	}
	err := s.Validator.Validate(ctx, email)
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrEmailRejected) {
		return invalid("email", err.Error())
	}
	logger.Warn().Err(err).Msg("email reputation check unavailable, continuing")
	return nil
}

// Checkout validates the request, prices it from the catalog and writes the
// customer, address, order and items in one transaction.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResult, error) {
	if err := ValidateAddress(req.Address); err != nil {
		return nil, err
	}
	addr := req.Address
	email := strings.ToLower(strings.TrimSpace(addr.Email))

	items, subtotal, err := s.priceItems(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	shipping, err := s.Shipping.Quote(ctx, addr.Country, addr.State)
	if err != nil {
		return nil, err
	}
	if req.ShippingCost != 0 && !decimal.NewFromFloat(req.ShippingCost).Equal(shipping) {
		logger.Warn().
			Float64("client_shipping", req.ShippingCost).
			Str("shipping", shipping.String()).
			Msg("client shipping cost differs from zone rate")
	}

	if err := s.checkEmail(ctx, email); err != nil {
		return nil, err
	}

	if req.IdempotencyKey != "" && s.Guard != nil {
		ok, err := s.Guard.Reserve(ctx, req.IdempotencyKey)
		switch {
		case err != nil:
			logger.Warn().Err(err).Msg("idempotency guard unavailable, continuing")
		case !ok:
			return nil, ErrDuplicateRequest
		}
	}

	total := subtotal.Add(shipping).Round(2)
	order := model.Order{
		OrderNumber:   s.OrderNumber(s.Now()),
		Subtotal:      subtotal.Round(2).InexactFloat64(),
		ShippingCost:  shipping.Round(2).InexactFloat64(),
		TotalAmount:   total.InexactFloat64(),
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}

	err = s.Store.WithinTx(ctx, func(w repository.CheckoutWriter) error {
		customer := &model.Customer{Email: email, FullName: optional(addr.FullName), Phone: optional(addr.Phone)}
		if err := w.UpsertCustomer(ctx, customer); err != nil {
			return fmt.Errorf("customer: %w", err)
		}

		address := model.Address{
			CustomerID:   customer.CustomerID,
			FullName:     strings.TrimSpace(addr.FullName),
			Phone:        strings.TrimSpace(addr.Phone),
			AddressLine1: strings.TrimSpace(addr.AddressLine1),
			AddressLine2: optional(addr.AddressLine2),
			City:         strings.TrimSpace(addr.City),
			State:        strings.TrimSpace(addr.State),
			PostalCode:   strings.TrimSpace(addr.PostalCode),
			Country:      strings.TrimSpace(addr.Country),
		}
		if err := w.CreateAddress(ctx, &address); err != nil {
			return fmt.Errorf("address: %w", err)
		}

		order.CustomerID = customer.CustomerID
		order.ShippingAddressID = address.AddressID
		if err := w.CreateOrder(ctx, &order); err != nil {
			return fmt.Errorf("order: %w", err)
		}

		for i := range items {
			items[i].OrderID = order.OrderID
		}
		if err := w.CreateOrderItems(ctx, items); err != nil {
			return fmt.Errorf("order items: %w", err)
		}
		return nil
	})
	if err != nil {
		logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("checkout rolled back")
		if req.IdempotencyKey != "" && s.Guard != nil {
			if rerr := s.Guard.Release(ctx, req.IdempotencyKey); rerr != nil {
				logger.Warn().Err(rerr).Msg("release idempotency key")
			}
		}
		return nil, err
	}

	logger.Info().
		Str("order_id", order.OrderID.String()).
		Str("order_number", order.OrderNumber).
		Str("total", total.StringFixed(2)).
		Msg("order created")

	if s.Events != nil {
		ev := events.OrderEvent{
			Type:          events.OrderCreated,
			OrderID:       order.OrderID,
			OrderNumber:   order.OrderNumber,
			Status:        order.Status,
			PaymentStatus: order.PaymentStatus,
			TotalAmount:   order.TotalAmount,
			OccurredAt:    s.Now().UTC(),
		}
		if err := s.Events.Publish(ctx, ev); err != nil {
			logger.Warn().Err(err).Str("order_number", order.OrderNumber).Msg("publish order.created")
		}
	}

	return &CheckoutResult{
		OrderID:      order.OrderID,
		OrderNumber:  order.OrderNumber,
		Subtotal:     subtotal.Round(2),
		ShippingCost: shipping.Round(2),
		Total:        total,
	}, nil
}
