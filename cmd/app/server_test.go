package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"SareeStoreAPI/internal/cache"
	"SareeStoreAPI/internal/cart"
	"SareeStoreAPI/internal/events/eventstest"
	"SareeStoreAPI/internal/middleware"
	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/repository/memstore"
	"SareeStoreAPI/internal/services"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	db       *memstore.DB
	e        *echo.Echo
	jwt      *middleware.JWTManager
	events   *eventstest.Recorder
	auth     *services.AuthService
	kanji    model.Product
	banarasi model.Product
	soldOut  model.Product
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := memstore.New()
	kanji := db.SeedProduct(model.Product{Name: "Kanjivaram Ruby", Price: 15000, Category: "kanjivaram", StockQuantity: 2, InStock: true, Images: []string{"https://cdn.example.com/ruby.jpg"}})
	banarasi := db.SeedProduct(model.Product{Name: "Banarasi Gold", Price: 9000, Category: "banarasi", StockQuantity: 5, InStock: true})
	soldOut := db.SeedProduct(model.Product{Name: "Kanjivaram Onyx", Price: 21000, Category: "kanjivaram", InStock: false})
	db.SeedZone(model.ShippingZone{ZoneName: "South", States: []string{"Tamil Nadu", "Kerala"}, BaseCharge: 150, EstimatedDays: "3-5", IsActive: true})

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	rec := &eventstest.Recorder{}
	shippingSvc := services.NewShippingService(db.Shipping(), 2500)
	checkoutSvc := services.NewCheckoutService(db.Checkout(), db.Products(), shippingSvc)
	checkoutSvc.Guard = cache.NewIdempotencyGuard(rdb, time.Hour)
	checkoutSvc.Events = rec
	orderSvc := services.NewOrderService(db.Orders(), db.Customers())
	orderSvc.Events = rec

	jwt := middleware.NewJWTManager("test-secret", time.Hour)
	a := &app{
		Catalog:  services.NewCatalogService(db.Products()),
		Shipping: shippingSvc,
		Checkout: checkoutSvc,
		Orders:   orderSvc,
		Wishlist: services.NewWishlistService(db.Wishlist(), db.Customers(), db.Products()),
		Contact:  services.NewContactService(db.Contacts()),
		Auth:     services.NewAuthService(db.Users()),
		Admin:    services.NewAdminService(db.Products(), db.Orders(), db.Customers(), db.Contacts(), nil),
		JWT:      jwt,
		Carts:    cart.NewRedisStore(rdb, time.Hour),
	}

	return &testEnv{
		db:       db,
		e:        newServer(a),
		jwt:      jwt,
		events:   rec,
		auth:     a.Auth,
		kanji:    kanji,
		banarasi: banarasi,
		soldOut:  soldOut,
	}
}

// do sends body as JSON (when non-nil) with the given headers.
func (env *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) token(t *testing.T, email string, admin bool) map[string]string {
	t.Helper()
	tok, err := env.jwt.GenerateToken(uuid.New(), email, admin)
	require.NoError(t, err)
	return map[string]string{echo.HeaderAuthorization: "Bearer " + tok}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, rec)["error"]
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])
}
