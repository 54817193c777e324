package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"SareeStoreAPI/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, name, description, price, category, images, stock_quantity, in_stock, sku, material, color, created_at, updated_at`

type ProductRepository struct {
	DB DBTX
}

func NewProductRepository(db DBTX) *ProductRepository {
	return &ProductRepository{DB: db}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var p model.Product
	if err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Category,
		&p.Images,
		&p.StockQuantity,
		&p.InStock,
		&p.SKU,
		&p.Material,
		&p.Color,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]model.Product, error) {
	defer rows.Close()

	list := []model.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *p)
	}
	return list, rows.Err()
}

// likeEscaper makes search text match literally inside an ILIKE pattern.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// buildProductWhere turns a filter into a WHERE clause with positional args.
func buildProductWhere(f model.ProductFilter) (string, []any) {
	var conds []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !f.IncludeOutOfStock {
		conds = append(conds, "in_stock = TRUE")
	}
	if f.Category != "" {
		conds = append(conds, "category = "+next(f.Category))
	}
	if f.MinPrice != nil {
		conds = append(conds, "price >= "+next(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		conds = append(conds, "price <= "+next(*f.MaxPrice))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		p := next(likeEscaper.Replace(s))
		conds = append(conds, fmt.Sprintf(`(name ILIKE '%%' || %s || '%%' ESCAPE '\' OR description ILIKE '%%' || %s || '%%' ESCAPE '\')`, p, p))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// List returns one page of products matching the filter, newest first, plus the total match count.
func (r *ProductRepository) List(ctx context.Context, f model.ProductFilter) ([]model.Product, int64, error) {
	where, args := buildProductWhere(f)

	var total int64
	if err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM products%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		productColumns, where, len(args)+1, len(args)+2)
	rows, err := r.DB.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	list, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1`
	p, err := scanProduct(r.DB.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err)
	}
	return p, nil
}

// GetByIDs returns the products that exist among ids; missing ids are simply absent.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}
	strIDs := make([]string, len(ids))
	for i, id := range ids {
		strIDs[i] = id.String()
	}
	rows, err := r.DB.Query(ctx, `SELECT `+productColumns+` FROM products WHERE id = ANY($1::uuid[])`, strIDs)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

// Related lists in-stock products of the same category, excluding the product itself.
func (r *ProductRepository) Related(ctx context.Context, id uuid.UUID, category string, limit int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products
		WHERE category=$1 AND id<>$2 AND in_stock = TRUE
		ORDER BY created_at DESC
		LIMIT $3
	`
	rows, err := r.DB.Query(ctx, query, category, id, limit)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *ProductRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.DB.Query(ctx, `SELECT DISTINCT category FROM products WHERE in_stock = TRUE ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *ProductRepository) Create(ctx context.Context, p *model.Product) (uuid.UUID, error) {
	var id uuid.UUID
	query := `
		INSERT INTO products (name, description, price, category, images, stock_quantity, in_stock, sku, material, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id
	`
	err := r.DB.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.Category, p.Images,
		p.StockQuantity, p.InStock, p.SKU, p.Material, p.Color, time.Now(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, translate(err)
	}
	return id, nil
}

func (r *ProductRepository) Update(ctx context.Context, p *model.Product) error {
	query := `
		UPDATE products
		SET name=$1, description=$2, price=$3, category=$4, images=$5,
		    stock_quantity=$6, in_stock=$7, sku=$8, material=$9, color=$10, updated_at=$11
		WHERE id=$12
	`
	tag, err := r.DB.Exec(ctx, query,
		p.Name, p.Description, p.Price, p.Category, p.Images,
		p.StockQuantity, p.InStock, p.SKU, p.Material, p.Color, time.Now(), p.ProductID,
	)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return translate(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	return n, err
}
