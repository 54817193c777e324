package services

import (
	"context"
	"testing"
	"time"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedZones(db *memstore.DB) (south, metro model.ShippingZone) {
	south = db.SeedZone(model.ShippingZone{ZoneName: "South", States: []string{"Tamil Nadu", "Kerala", "Karnataka"}, BaseCharge: 150, EstimatedDays: "3-5", IsActive: true})
	metro = db.SeedZone(model.ShippingZone{ZoneName: "Metro", States: []string{"Karnataka", "Maharashtra"}, BaseCharge: 100, EstimatedDays: "2-3", IsActive: true})
	db.SeedZone(model.ShippingZone{ZoneName: "North East", States: []string{"Assam"}, BaseCharge: 300, EstimatedDays: "7-10", IsActive: false})
	return
}

func TestShippingService_Calculate(t *testing.T) {
	db := memstore.New()
	south, metro := seedZones(db)
	svc := NewShippingService(db.Shipping(), 2500)
	ctx := context.Background()

	testCases := []struct {
		name         string
		state        string
		expectedZone uuid.UUID
		expectedErr  error
	}{
		{name: "Exact match", state: "Kerala", expectedZone: south.ZoneID},
		{name: "Case and whitespace insensitive", state: "  tamil nadu ", expectedZone: south.ZoneID},
		{name: "Overlap picks cheapest", state: "Karnataka", expectedZone: metro.ZoneID},
		{name: "Inactive zone ignored", state: "Assam", expectedErr: ErrShippingUnavailable},
		{name: "Unknown state", state: "Atlantis", expectedErr: ErrShippingUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			z, err := svc.Calculate(ctx, tc.state)
			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				assert.EqualError(t, err, "shipping not available for this location")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectedZone, z.ZoneID)
		})
	}

	_, err := svc.Calculate(ctx, " ")
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)
}

func TestShippingService_Quote(t *testing.T) {
	db := memstore.New()
	seedZones(db)
	svc := NewShippingService(db.Shipping(), 2500)
	ctx := context.Background()

	cost, err := svc.Quote(ctx, "India", "Kerala")
	require.NoError(t, err)
	assert.Equal(t, "150", cost.String())

	cost, err = svc.Quote(ctx, "Singapore", "Central")
	require.NoError(t, err)
	assert.Equal(t, "2500", cost.String())

	_, err = svc.Quote(ctx, "IN", "Atlantis")
	assert.ErrorIs(t, err, ErrShippingUnavailable)
}

func TestShippingService_Zones(t *testing.T) {
	db := memstore.New()
	seedZones(db)
	svc := NewShippingService(db.Shipping(), 2500)
	ctx := context.Background()

	active, err := svc.ActiveZones(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
	assert.Equal(t, "Metro", active[0].ZoneName)

	all, err := svc.AllZones(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestShippingService_CreateUpdateZone(t *testing.T) {
	db := memstore.New()
	svc := NewShippingService(db.Shipping(), 2500)
	ctx := context.Background()

	_, err := svc.CreateZone(ctx, model.ShippingZone{ZoneName: "West", States: []string{" ", ""}})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "states", vErr.Field)

	z, err := svc.CreateZone(ctx, model.ShippingZone{ZoneName: " West ", States: []string{" Gujarat "}, BaseCharge: 120, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "West", z.ZoneName)
	assert.Equal(t, []string{"Gujarat"}, z.States)

	found, err := svc.Calculate(ctx, "gujarat")
	require.NoError(t, err)
	assert.Equal(t, z.ZoneID, found.ZoneID)

	z.IsActive = false
	_, err = svc.UpdateZone(ctx, *z)
	require.NoError(t, err)
	_, err = svc.Calculate(ctx, "Gujarat")
	assert.ErrorIs(t, err, ErrShippingUnavailable)

	_, err = svc.UpdateZone(ctx, model.ShippingZone{ZoneID: uuid.New(), ZoneName: "Ghost", States: []string{"X"}})
	assert.ErrorIs(t, err, ErrZoneNotFound)
}

func TestNewOrderNumber(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	n := NewOrderNumber(now)
	assert.Regexp(t, `^ORD-1700000000123-[A-Z0-9]{9}$`, n)
	assert.NotEqual(t, n, NewOrderNumber(now))
}
