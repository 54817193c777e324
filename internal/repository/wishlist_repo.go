package repository

import (
	"context"
	"time"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
)

type WishlistRepository struct {
	DB DBTX
}

func NewWishlistRepository(db DBTX) *WishlistRepository {
	return &WishlistRepository{DB: db}
}

// ListByCustomer returns the wishlist joined with product rows, newest first.
func (r *WishlistRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]model.WishlistItem, error) {
	query := `
		SELECT w.id, w.customer_id, w.product_id, w.created_at,
		       p.id, p.name, p.description, p.price, p.category, p.images, p.stock_quantity, p.in_stock,
		       p.sku, p.material, p.color, p.created_at, p.updated_at
		FROM wishlist_items w
		JOIN products p ON p.id = w.product_id
		WHERE w.customer_id=$1
		ORDER BY w.created_at DESC
	`
	rows, err := r.DB.Query(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []model.WishlistItem{}
	for rows.Next() {
		var w model.WishlistItem
		var p model.Product
		if err := rows.Scan(
			&w.WishlistItemID, &w.CustomerID, &w.ProductID, &w.CreatedAt,
			&p.ProductID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Images, &p.StockQuantity, &p.InStock,
			&p.SKU, &p.Material, &p.Color, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		w.Product = &p
		list = append(list, w)
	}
	return list, rows.Err()
}

// Add inserts a wishlist row. A second add of the same pair returns ErrDuplicate
// from the (customer_id, product_id) unique constraint.
func (r *WishlistRepository) Add(ctx context.Context, customerID, productID uuid.UUID) (*model.WishlistItem, error) {
	now := time.Now()
	w := model.WishlistItem{CustomerID: customerID, ProductID: productID, CreatedAt: &now}
	query := `INSERT INTO wishlist_items (customer_id, product_id, created_at) VALUES ($1, $2, $3) RETURNING id`
	if err := r.DB.QueryRow(ctx, query, customerID, productID, now).Scan(&w.WishlistItemID); err != nil {
		return nil, translate(err)
	}
	return &w, nil
}

// Remove deletes the pair if present. Removing a missing pair is not an error.
func (r *WishlistRepository) Remove(ctx context.Context, customerID, productID uuid.UUID) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM wishlist_items WHERE customer_id=$1 AND product_id=$2`, customerID, productID)
	return err
}
