package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository"

	"github.com/google/uuid"
)

const MaxImageSize = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// AdminProductStore adds the write side to ProductProvider.
type AdminProductStore interface {
	ProductProvider
	Create(ctx context.Context, p *model.Product) (uuid.UUID, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int64, error)
}

type ImageStore interface {
	Upload(ctx context.Context, object, contentType string, data []byte) (string, error)
}

type AdminService struct {
	Products  AdminProductStore
	Orders    OrderProvider
	Customers CustomerProvider
	Messages  ContactStore
	Images    ImageStore
}

func NewAdminService(p AdminProductStore, o OrderProvider, c CustomerProvider, m ContactStore, images ImageStore) *AdminService {
	return &AdminService{Products: p, Orders: o, Customers: c, Messages: m, Images: images}
}

func (s *AdminService) Dashboard(ctx context.Context) (*model.DashboardStats, error) {
	var st model.DashboardStats
	var err error
	if st.TotalProducts, err = s.Products.Count(ctx); err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}
	if st.TotalOrders, err = s.Orders.CountByStatus(ctx, ""); err != nil {
		return nil, fmt.Errorf("count orders: %w", err)
	}
	if st.PendingOrders, err = s.Orders.CountByStatus(ctx, model.OrderStatusPending); err != nil {
		return nil, fmt.Errorf("count pending orders: %w", err)
	}
	if st.TotalCustomers, err = s.Customers.Count(ctx); err != nil {
		return nil, fmt.Errorf("count customers: %w", err)
	}
	if st.UnreadMessages, err = s.Messages.CountUnread(ctx); err != nil {
		return nil, fmt.Errorf("count messages: %w", err)
	}
	rev, err := s.Orders.Revenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("revenue: %w", err)
	}
	st.Revenue = rev.Round(2).InexactFloat64()
	return &st, nil
}

// ListProducts is the back-office listing; it includes out-of-stock rows.
func (s *AdminService) ListProducts(ctx context.Context, f model.ProductFilter) (*ProductPage, error) {
	f.Limit = clampLimit(f.Limit, DefaultPageSize)
	if f.Offset < 0 {
		f.Offset = 0
	}
	f.Category = normalizeCategory(f.Category)
	f.IncludeOutOfStock = true
	products, total, err := s.Products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return &ProductPage{Products: products, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// ProductInput holds the editable product fields.
type ProductInput struct {
	Name          string
	Description   string
	Price         float64
	Category      string
	Images        []string
	StockQuantity int
	SKU           string
	Material      string
	Color         string
}

func (in ProductInput) toProduct() (*model.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, invalid("name", "name is required")
	}
	category := normalizeCategory(in.Category)
	if category == "" {
		return nil, invalid("category", "category is required")
	}
	if in.Price <= 0 {
		return nil, invalid("price", "price must be positive")
	}
	if in.StockQuantity < 0 {
		return nil, invalid("stockQuantity", "stock quantity cannot be negative")
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	return &model.Product{
		Name:          name,
		Description:   optional(in.Description),
		Price:         in.Price,
		Category:      category,
		Images:        images,
		StockQuantity: in.StockQuantity,
		InStock:       in.StockQuantity > 0,
		SKU:           optional(in.SKU),
		Material:      optional(in.Material),
		Color:         optional(in.Color),
	}, nil
}

func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput) (*model.Product, error) {
	p, err := in.toProduct()
	if err != nil {
		return nil, err
	}
	id, err := s.Products.Create(ctx, p)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrSKUTaken
	}
	if err != nil {
		return nil, err
	}
	return s.Products.GetByID(ctx, id)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*model.Product, error) {
	p, err := in.toProduct()
	if err != nil {
		return nil, err
	}
	p.ProductID = id
	err = s.Products.Update(ctx, p)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil, ErrProductNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return nil, ErrSKUTaken
	case err != nil:
		return nil, err
	}
	return s.Products.GetByID(ctx, id)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := s.Products.Delete(ctx, id)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrProductNotFound
	case errors.Is(err, repository.ErrInUse):
		return ErrProductInUse
	}
	return err
}

// UploadImage sniffs data, accepts JPEG, PNG and WEBP up to MaxImageSize and
// stores it under a fresh object name. It returns the public URL.
func (s *AdminService) UploadImage(ctx context.Context, data []byte) (string, error) {
	if len(data) == 0 {
		return "", invalid("file", "file is required")
	}
	if len(data) > MaxImageSize {
		return "", invalid("file", "file too large: max 5MB")
	}
	contentType := http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", invalid("file", "unsupported file type: "+contentType)
	}
	if s.Images == nil {
		return "", errors.New("image storage is not configured")
	}
	object := "products/" + uuid.NewString() + ext
	url, err := s.Images.Upload(ctx, object, contentType, data)
	if err != nil {
		return "", err
	}
	logger.Info().Str("object", object).Int("bytes", len(data)).Msg("product image uploaded")
	return url, nil
}

func (s *AdminService) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return s.Customers.ListAll(ctx)
}
