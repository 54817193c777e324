package model

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ProductID     uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	Price         float64    `json:"price"`
	Category      string     `json:"category"`
	Images        []string   `json:"images"`
	StockQuantity int        `json:"stock_quantity"`
	InStock       bool       `json:"in_stock"`
	SKU           *string    `json:"sku,omitempty"`
	Material      *string    `json:"material,omitempty"`
	Color         *string    `json:"color,omitempty"`
	CreatedAt     *time.Time `json:"created_at,omitempty"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// ProductFilter narrows a catalog listing. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Limit    int
	Offset   int

	// IncludeOutOfStock is only set by the admin listing.
	IncludeOutOfStock bool
}
