package repository

import (
	"context"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const zoneColumns = `id, zone_name, states, base_charge, estimated_days, is_active`

type ShippingRepository struct {
	DB DBTX
}

func NewShippingRepository(db DBTX) *ShippingRepository {
	return &ShippingRepository{DB: db}
}

func scanZone(row pgx.Row) (*model.ShippingZone, error) {
	var z model.ShippingZone
	if err := row.Scan(&z.ZoneID, &z.ZoneName, &z.States, &z.BaseCharge, &z.EstimatedDays, &z.IsActive); err != nil {
		return nil, err
	}
	if z.States == nil {
		z.States = []string{}
	}
	return &z, nil
}

func collectZones(rows pgx.Rows) ([]model.ShippingZone, error) {
	defer rows.Close()

	out := []model.ShippingZone{}
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *z)
	}
	return out, rows.Err()
}

// FindActiveByState returns the cheapest active zone listing the state.
func (r *ShippingRepository) FindActiveByState(ctx context.Context, state string) (*model.ShippingZone, error) {
	query := `
		SELECT ` + zoneColumns + `
		FROM shipping_zones
		WHERE is_active = TRUE
		  AND EXISTS (SELECT 1 FROM unnest(states) s WHERE lower(trim(s)) = lower(trim($1)))
		ORDER BY base_charge ASC
		LIMIT 1
	`
	z, err := scanZone(r.DB.QueryRow(ctx, query, state))
	if err != nil {
		return nil, translate(err)
	}
	return z, nil
}

func (r *ShippingRepository) List(ctx context.Context, activeOnly bool) ([]model.ShippingZone, error) {
	query := `SELECT ` + zoneColumns + ` FROM shipping_zones WHERE ($1 = FALSE OR is_active = TRUE) ORDER BY base_charge, zone_name`
	rows, err := r.DB.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, err
	}
	return collectZones(rows)
}

func (r *ShippingRepository) Create(ctx context.Context, z *model.ShippingZone) error {
	query := `
		INSERT INTO shipping_zones (zone_name, states, base_charge, estimated_days, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query, z.ZoneName, z.States, z.BaseCharge, z.EstimatedDays, z.IsActive).Scan(&z.ZoneID)
	return translate(err)
}

func (r *ShippingRepository) Update(ctx context.Context, z *model.ShippingZone) error {
	query := `UPDATE shipping_zones SET zone_name=$1, states=$2, base_charge=$3, estimated_days=$4, is_active=$5 WHERE id=$6`
	tag, err := r.DB.Exec(ctx, query, z.ZoneName, z.States, z.BaseCharge, z.EstimatedDays, z.IsActive, z.ZoneID)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ShippingRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ShippingZone, error) {
	z, err := scanZone(r.DB.QueryRow(ctx, `SELECT `+zoneColumns+` FROM shipping_zones WHERE id=$1`, id))
	if err != nil {
		return nil, translate(err)
	}
	return z, nil
}
