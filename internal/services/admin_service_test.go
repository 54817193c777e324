package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository/memstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockImages struct {
	object      string
	contentType string
	err         error
}

func (m *mockImages) Upload(_ context.Context, object, contentType string, _ []byte) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.object, m.contentType = object, contentType
	return "https://cdn.example.com/" + object, nil
}

func newAdminService(db *memstore.DB, images ImageStore) *AdminService {
	return NewAdminService(db.Products(), db.Orders(), db.Customers(), db.Contacts(), images)
}

func TestAdminService_Dashboard(t *testing.T) {
	f := newCheckoutFixture(t)
	first := placeOrder(t, f, "a@example.com", f.kanji)
	placeOrder(t, f, "b@example.com", f.banarasi)
	ctx := context.Background()

	orders, _ := newOrderService(f.db)
	cancelled := model.OrderStatusCancelled
	_, err := orders.UpdateStatus(ctx, first.OrderID, model.OrderStatusUpdate{Status: &cancelled})
	require.NoError(t, err)

	_, err = NewContactService(f.db.Contacts()).Submit(ctx, ContactInput{Name: "A", Email: "a@example.com", Message: "hi"})
	require.NoError(t, err)

	st, err := newAdminService(f.db, nil).Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), st.TotalProducts)
	assert.Equal(t, int64(2), st.TotalOrders)
	assert.Equal(t, int64(1), st.PendingOrders)
	assert.Equal(t, int64(2), st.TotalCustomers)
	assert.Equal(t, int64(1), st.UnreadMessages)
	assert.Equal(t, 9150.0, st.Revenue)
}

func TestAdminService_ProductLifecycle(t *testing.T) {
	db := memstore.New()
	svc := newAdminService(db, nil)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, ProductInput{Name: "Mysore Silk Teal", Price: 8200, Category: " Mysore ", StockQuantity: 0, SKU: "MYS-001"})
	require.NoError(t, err)
	assert.False(t, p.InStock)
	assert.Equal(t, "mysore", p.Category)
	assert.Equal(t, []string{}, p.Images)

	_, err = svc.CreateProduct(ctx, ProductInput{Name: "Copy", Price: 1, Category: "mysore", SKU: "MYS-001"})
	assert.ErrorIs(t, err, ErrSKUTaken)

	updated, err := svc.UpdateProduct(ctx, p.ProductID, ProductInput{Name: "Mysore Silk Teal", Price: 8400, Category: "mysore", StockQuantity: 3, SKU: "MYS-001"})
	require.NoError(t, err)
	assert.True(t, updated.InStock)
	assert.Equal(t, 8400.0, updated.Price)

	page, err := svc.ListProducts(ctx, model.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	_, err = svc.UpdateProduct(ctx, uuid.New(), ProductInput{Name: "X", Price: 1, Category: "x"})
	assert.ErrorIs(t, err, ErrProductNotFound)

	require.NoError(t, svc.DeleteProduct(ctx, p.ProductID))
	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ProductID), ErrProductNotFound)
}

func TestAdminService_ListProductsIncludesOutOfStock(t *testing.T) {
	db := memstore.New()
	seedCatalog(db)

	page, err := newAdminService(db, nil).ListProducts(context.Background(), model.ProductFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(4), page.Total)
}

func TestAdminService_DeleteOrderedProduct(t *testing.T) {
	f := newCheckoutFixture(t)
	placeOrder(t, f, "a@example.com", f.kanji)

	err := newAdminService(f.db, nil).DeleteProduct(context.Background(), f.kanji.ProductID)
	assert.ErrorIs(t, err, ErrProductInUse)
	assert.True(t, IsConflict(err))
}

func TestAdminService_ProductValidation(t *testing.T) {
	svc := newAdminService(memstore.New(), nil)

	testCases := []struct {
		name          string
		input         ProductInput
		expectedField string
	}{
		{name: "Missing name", input: ProductInput{Price: 1, Category: "x"}, expectedField: "name"},
		{name: "Missing category", input: ProductInput{Name: "x", Price: 1}, expectedField: "category"},
		{name: "Zero price", input: ProductInput{Name: "x", Category: "x"}, expectedField: "price"},
		{name: "Negative stock", input: ProductInput{Name: "x", Price: 1, Category: "x", StockQuantity: -1}, expectedField: "stockQuantity"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateProduct(context.Background(), tc.input)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.expectedField, vErr.Field)
		})
	}
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestAdminService_UploadImage(t *testing.T) {
	images := &mockImages{}
	svc := newAdminService(memstore.New(), images)
	ctx := context.Background()

	url, err := svc.UploadImage(ctx, pngHeader)
	require.NoError(t, err)
	assert.Equal(t, "image/png", images.contentType)
	assert.True(t, strings.HasPrefix(images.object, "products/"))
	assert.True(t, strings.HasSuffix(images.object, ".png"))
	assert.Equal(t, "https://cdn.example.com/"+images.object, url)

	webp := []byte("RIFF\x00\x00\x00\x00WEBPVP8 ")
	_, err = svc.UploadImage(ctx, webp)
	require.NoError(t, err)
	assert.Equal(t, "image/webp", images.contentType)

	var vErr *ValidationError
	_, err = svc.UploadImage(ctx, []byte("%PDF-1.4 not an image"))
	assert.ErrorAs(t, err, &vErr)

	_, err = svc.UploadImage(ctx, nil)
	assert.ErrorAs(t, err, &vErr)

	big := append(append([]byte{}, pngHeader...), make([]byte, MaxImageSize)...)
	_, err = svc.UploadImage(ctx, big)
	assert.ErrorAs(t, err, &vErr)

	images.err = errors.New("bucket offline")
	_, err = svc.UploadImage(ctx, pngHeader)
	assert.EqualError(t, err, "bucket offline")
}

func TestAdminService_ListCustomers(t *testing.T) {
	f := newCheckoutFixture(t)
	placeOrder(t, f, "a@example.com", f.kanji)
	placeOrder(t, f, "b@example.com", f.banarasi)

	customers, err := newAdminService(f.db, nil).ListCustomers(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "b@example.com", customers[0].Email)
}
