package model

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem is unique per (customer, product); the store enforces it.
type WishlistItem struct {
	WishlistItemID uuid.UUID  `json:"id"`
	CustomerID     uuid.UUID  `json:"customer_id"`
	ProductID      uuid.UUID  `json:"product_id"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`

	Product *Product `json:"product,omitempty"`
}
