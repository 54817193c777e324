package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"

	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// OrderStatuses lists every value an admin may set. Any value can follow any other.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var PaymentStatuses = []string{
	PaymentStatusPending,
	PaymentStatusPaid,
	PaymentStatusFailed,
	PaymentStatusRefunded,
}

// Order represents an entry in the orders table
type Order struct {
	OrderID           uuid.UUID  `json:"id"`
	OrderNumber       string     `json:"order_number"`
	CustomerID        uuid.UUID  `json:"customer_id"`
	ShippingAddressID uuid.UUID  `json:"shipping_address_id"`
	Subtotal          float64    `json:"subtotal"`
	ShippingCost      float64    `json:"shipping_cost"`
	TotalAmount       float64    `json:"total_amount"`
	Status            string     `json:"status"`
	PaymentStatus     string     `json:"payment_status"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	UpdatedAt         *time.Time `json:"updated_at,omitempty"`
}

// OrderItem represents a row in the order_items table. Quantity is always 1:
// every saree is a single piece of stock.
type OrderItem struct {
	OrderItemID uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`

	// Product is filled by joined reads only.
	Product *Product `json:"product,omitempty"`
}

// OrderDetail is the assembled view returned by order retrieval.
type OrderDetail struct {
	Order    Order
	Customer Customer
	Address  Address
	Items    []OrderItem
}

// OrderStatusUpdate carries the admin-editable fields; nil means unchanged.
type OrderStatusUpdate struct {
	Status        *string
	PaymentStatus *string
}
