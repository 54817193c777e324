package main

import (
	"net/http"

	"SareeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type calculateShippingRequest struct {
	State string `json:"state"`
}

// registerShippingRoutes mounts shipping lookups. Zones are returned as stored (snake_case).
func registerShippingRoutes(g *echo.Group, ss *services.ShippingService) {
	g.POST("/shipping/calculate", func(c echo.Context) error {
		var req calculateShippingRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		z, err := ss.Calculate(c.Request().Context(), req.State)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, z)
	})

	g.GET("/shipping/zones", func(c echo.Context) error {
		zones, err := ss.ActiveZones(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"zones": zones})
	})
}
