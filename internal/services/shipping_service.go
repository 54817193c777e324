package services

import (
	"context"
	"errors"
	"strings"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShippingZoneStore interface {
	FindActiveByState(ctx context.Context, state string) (*model.ShippingZone, error)
	List(ctx context.Context, activeOnly bool) ([]model.ShippingZone, error)
	Create(ctx context.Context, z *model.ShippingZone) error
	Update(ctx context.Context, z *model.ShippingZone) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ShippingZone, error)
}

type ShippingService struct {
	Zones             ShippingZoneStore
	InternationalRate decimal.Decimal
}

func NewShippingService(z ShippingZoneStore, internationalRate float64) *ShippingService {
	return &ShippingService{Zones: z, InternationalRate: decimal.NewFromFloat(internationalRate)}
}

// Calculate finds the active zone serving state.
func (s *ShippingService) Calculate(ctx context.Context, state string) (*model.ShippingZone, error) {
	state = strings.TrimSpace(state)
	if state == "" {
		return nil, invalid("state", "state is required")
	}
	z, err := s.Zones.FindActiveByState(ctx, state)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrShippingUnavailable
	}
	if err != nil {
		return nil, err
	}
	return z, nil
}

// Quote prices delivery to country and state: the zone charge at home, the
// flat international rate elsewhere.
func (s *ShippingService) Quote(ctx context.Context, country, state string) (decimal.Decimal, error) {
	if !IsDomestic(country) {
		return s.InternationalRate, nil
	}
	z, err := s.Calculate(ctx, state)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromFloat(z.BaseCharge), nil
}

// ActiveZones lists the zones shown to shoppers.
func (s *ShippingService) ActiveZones(ctx context.Context) ([]model.ShippingZone, error) {
	return s.Zones.List(ctx, true)
}

func (s *ShippingService) AllZones(ctx context.Context) ([]model.ShippingZone, error) {
	return s.Zones.List(ctx, false)
}

func validateZone(z *model.ShippingZone) error {
	z.ZoneName = strings.TrimSpace(z.ZoneName)
	if z.ZoneName == "" {
		return invalid("zoneName", "zone name is required")
	}
	states := make([]string, 0, len(z.States))
	for _, st := range z.States {
		if st = strings.TrimSpace(st); st != "" {
			states = append(states, st)
		}
	}
	z.States = states
	if len(z.States) == 0 {
		return invalid("states", "at least one state is required")
	}
	if z.BaseCharge < 0 {
		return invalid("baseCharge", "base charge cannot be negative")
	}
	return nil
}

func (s *ShippingService) CreateZone(ctx context.Context, z model.ShippingZone) (*model.ShippingZone, error) {
	if err := validateZone(&z); err != nil {
		return nil, err
	}
	if err := s.Zones.Create(ctx, &z); err != nil {
		return nil, err
	}
	return &z, nil
}

func (s *ShippingService) UpdateZone(ctx context.Context, z model.ShippingZone) (*model.ShippingZone, error) {
	if err := validateZone(&z); err != nil {
		return nil, err
	}
	err := s.Zones.Update(ctx, &z)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, err
	}
	return &z, nil
}
