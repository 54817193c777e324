package main

import (
	"net/http"
	"time"

	"SareeStoreAPI/internal/cart"
	"SareeStoreAPI/internal/middleware"
	"SareeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// app holds everything the routes need.
type app struct {
	Catalog  *services.CatalogService
	Shipping *services.ShippingService
	Checkout *services.CheckoutService
	Orders   *services.OrderService
	Wishlist *services.WishlistService
	Contact  *services.ContactService
	Auth     *services.AuthService
	Admin    *services.AdminService
	JWT      *middleware.JWTManager

	// Carts is nil when no Redis is configured; the cart routes are then absent.
	Carts cart.Store

	Limiter echo.MiddlewareFunc
}

func newServer(a *app) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization,
			cartSessionHeader, idempotencyKeyHeader,
		},
	}))

	limiter := a.Limiter
	if limiter == nil {
		limiter = func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	auth := a.JWT.JWTMiddleware()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":  "ok",
			"service": "saree-store-api",
			"time":    time.Now().Format(time.RFC3339),
		})
	})

	api := e.Group("/api")

	registerProductRoutes(api, a.Catalog)
	if a.Carts != nil {
		registerCartRoutes(api, a.Carts, a.Catalog)
	}
	registerShippingRoutes(api, a.Shipping)
	registerOrderRoutes(api, a.Checkout, a.Orders, limiter)
	registerWishlistRoutes(api, a.Wishlist, auth)
	registerContactRoutes(api, a.Contact, auth, limiter)
	registerAuthRoutes(api, a.Auth, a.JWT)
	registerAdminRoutes(api, a.Admin, a.Orders, a.Shipping, auth)

	return e
}
