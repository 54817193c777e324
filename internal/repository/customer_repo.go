package repository

import (
	"context"
	"time"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type CustomerRepository struct {
	DB DBTX
}

func NewCustomerRepository(db DBTX) *CustomerRepository {
	return &CustomerRepository{DB: db}
}

func scanCustomer(row pgx.Row) (*model.Customer, error) {
	var c model.Customer
	if err := row.Scan(&c.CustomerID, &c.Email, &c.FullName, &c.Phone, &c.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

// Create inserts a customer row and fills in its id.
func (r *CustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	query := `
		INSERT INTO customers (email, full_name, phone, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	if err := r.DB.QueryRow(ctx, query, c.Email, c.FullName, c.Phone, time.Now()).Scan(&c.CustomerID); err != nil {
		return translate(err)
	}
	return nil
}

// Upsert inserts a customer or, when the email is already taken, leaves the
// existing row as it is and fills in its id. Safe against concurrent inserts
// of the same email.
func (r *CustomerRepository) Upsert(ctx context.Context, c *model.Customer) error {
	query := `
		INSERT INTO customers (email, full_name, phone, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id
	`
	if err := r.DB.QueryRow(ctx, query, c.Email, c.FullName, c.Phone, time.Now()).Scan(&c.CustomerID); err != nil {
		return translate(err)
	}
	return nil
}

// GetByEmail returns a customer by email (case-insensitive)
func (r *CustomerRepository) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	query := `SELECT id, email, full_name, phone, created_at FROM customers WHERE lower(email)=lower($1)`
	return scanCustomer(r.DB.QueryRow(ctx, query, email))
}

func (r *CustomerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := `SELECT id, email, full_name, phone, created_at FROM customers WHERE id=$1`
	return scanCustomer(r.DB.QueryRow(ctx, query, id))
}

// ListAll returns all customers (admin use), newest first.
func (r *CustomerRepository) ListAll(ctx context.Context) ([]model.Customer, error) {
	query := `SELECT id, email, full_name, phone, created_at FROM customers ORDER BY created_at DESC`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Customer{}
	for rows.Next() {
		var c model.Customer
		if err := rows.Scan(&c.CustomerID, &c.Email, &c.FullName, &c.Phone, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CustomerRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM customers`).Scan(&n)
	return n, err
}

// CreateAddress inserts a shipping address. Addresses are not deduplicated.
func (r *CustomerRepository) CreateAddress(ctx context.Context, a *model.Address) error {
	query := `
		INSERT INTO addresses (customer_id, full_name, phone, address_line1, address_line2, city, state, postal_code, country, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		a.CustomerID, a.FullName, a.Phone, a.AddressLine1, a.AddressLine2,
		a.City, a.State, a.PostalCode, a.Country, time.Now(),
	).Scan(&a.AddressID)
	return translate(err)
}

func (r *CustomerRepository) GetAddress(ctx context.Context, id uuid.UUID) (*model.Address, error) {
	var a model.Address
	query := `
		SELECT id, customer_id, full_name, phone, address_line1, address_line2, city, state, postal_code, country, created_at
		FROM addresses
		WHERE id=$1
	`
	err := r.DB.QueryRow(ctx, query, id).Scan(
		&a.AddressID, &a.CustomerID, &a.FullName, &a.Phone, &a.AddressLine1, &a.AddressLine2,
		&a.City, &a.State, &a.PostalCode, &a.Country, &a.CreatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &a, nil
}
