package main

import (
	"net/http"

	"SareeStoreAPI/internal/middleware"
	"SareeStoreAPI/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type addWishlistRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

// registerWishlistRoutes mounts the signed-in user's wishlist.
func registerWishlistRoutes(g *echo.Group, ws *services.WishlistService, auth echo.MiddlewareFunc) {
	wg := g.Group("/wishlist", auth)

	wg.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		items, err := ws.List(c.Request().Context(), claims.Email)
		if err != nil {
			return respondError(c, err)
		}
		resp := make([]wishlistItemResponse, 0, len(items))
		for _, it := range items {
			resp = append(resp, toWishlistItemResponse(it))
		}
		return c.JSON(http.StatusOK, echo.Map{"items": resp})
	})

	wg.POST("", func(c echo.Context) error {
		var req addWishlistRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		claims := middleware.GetClaims(c)
		item, err := ws.Add(c.Request().Context(), claims.Email, req.ProductID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, toWishlistItemResponse(*item))
	})

	// always 200 once the product id parses; removing twice is fine
	wg.DELETE("", func(c echo.Context) error {
		id, err := uuid.Parse(c.QueryParam("productId"))
		if err != nil {
			return badRequest(c, "invalid productId")
		}
		claims := middleware.GetClaims(c)
		if err := ws.Remove(c.Request().Context(), claims.Email, id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
