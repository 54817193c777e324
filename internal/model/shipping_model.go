package model

import "github.com/google/uuid"

// ShippingZone is a named rate bucket covering a set of states.
type ShippingZone struct {
	ZoneID        uuid.UUID `json:"id"`
	ZoneName      string    `json:"zone_name"`
	States        []string  `json:"states"`
	BaseCharge    float64   `json:"base_charge"`
	EstimatedDays string    `json:"estimated_days"`
	IsActive      bool      `json:"is_active"`
}
