package repository

import (
	"context"
	"time"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
)

type UserRepository struct {
	DB DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{DB: db}
}

// Create inserts a new user and fills in its id. Duplicate emails return ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, u *model.User) error {
	now := time.Now()
	query := `INSERT INTO users (email, password_hash, full_name, is_admin, created_at) VALUES ($1, $2, $3, $4, $5) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, u.Email, u.PasswordHash, u.FullName, u.IsAdmin, now).Scan(&u.UserID); err != nil {
		return translate(err)
	}
	u.CreatedAt = &now
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, password_hash, full_name, is_admin, created_at FROM users WHERE lower(email)=lower($1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&u.UserID, &u.Email, &u.PasswordHash, &u.FullName, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var u model.User
	query := `SELECT id, email, full_name, is_admin, created_at FROM users WHERE id=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&u.UserID, &u.Email, &u.FullName, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
