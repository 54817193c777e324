package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	CustomerID uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	FullName   *string    `json:"full_name,omitempty"`
	Phone      *string    `json:"phone,omitempty"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// Address is written once per order; addresses are never reused.
type Address struct {
	AddressID    uuid.UUID  `json:"id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	FullName     string     `json:"full_name"`
	Phone        string     `json:"phone"`
	AddressLine1 string     `json:"address_line1"`
	AddressLine2 *string    `json:"address_line2,omitempty"`
	City         string     `json:"city"`
	State        string     `json:"state"`
	PostalCode   string     `json:"postal_code"`
	Country      string     `json:"country"`
	CreatedAt    *time.Time `json:"created_at,omitempty"`
}
