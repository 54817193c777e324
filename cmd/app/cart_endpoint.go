package main

import (
	"net/http"
	"strings"

	"SareeStoreAPI/internal/cart"
	"SareeStoreAPI/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const cartSessionHeader = "X-Cart-Session"

type addCartItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
}

func cartBody(ct *cart.Cart) echo.Map {
	return echo.Map{
		"items":    ct.Items(),
		"count":    ct.Count(),
		"subtotal": ct.Subtotal(),
	}
}

// registerCartRoutes mounts the server-side cart, keyed by the X-Cart-Session header.
//
//	GET    /cart                     -> current cart
//	POST   /cart/items               -> add {productId}
//	DELETE /cart/items/:productId    -> remove one
//	DELETE /cart                     -> clear
func registerCartRoutes(g *echo.Group, store cart.Store, cs *services.CatalogService) {
	session := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if strings.TrimSpace(c.Request().Header.Get(cartSessionHeader)) == "" {
				return badRequest(c, "missing "+cartSessionHeader+" header")
			}
			return next(c)
		}
	}
	sessionID := func(c echo.Context) string {
		return strings.TrimSpace(c.Request().Header.Get(cartSessionHeader))
	}

	cg := g.Group("/cart", session)

	cg.GET("", func(c echo.Context) error {
		ct, err := store.Load(c.Request().Context(), sessionID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cartBody(ct))
	})

	cg.POST("/items", func(c echo.Context) error {
		var req addCartItemRequest
		if err := c.Bind(&req); err != nil || req.ProductID == uuid.Nil {
			return badRequest(c, "productId is required")
		}
		ctx := c.Request().Context()

		p, err := cs.Get(ctx, req.ProductID)
		if err != nil {
			return respondError(c, err)
		}
		if !p.InStock {
			return respondError(c, services.ErrOutOfStock)
		}

		ct, err := store.Load(ctx, sessionID(c))
		if err != nil {
			return respondError(c, err)
		}
		item := cart.Item{ProductID: p.ProductID, Name: p.Name, Price: p.Price, Category: p.Category}
		if len(p.Images) > 0 {
			item.Image = p.Images[0]
		}
		added := ct.Add(item)
		if added {
			if err := store.Save(ctx, sessionID(c), ct); err != nil {
				return respondError(c, err)
			}
		}

		body := cartBody(ct)
		body["added"] = added
		status := http.StatusOK
		if added {
			status = http.StatusCreated
		}
		return c.JSON(status, body)
	})

	cg.DELETE("/items/:productId", func(c echo.Context) error {
		id, err := parseIDParam(c, "productId")
		if err != nil {
			return respondError(c, err)
		}
		ctx := c.Request().Context()
		ct, err := store.Load(ctx, sessionID(c))
		if err != nil {
			return respondError(c, err)
		}
		if ct.Remove(id) {
			if err := store.Save(ctx, sessionID(c), ct); err != nil {
				return respondError(c, err)
			}
		}
		return c.JSON(http.StatusOK, cartBody(ct))
	})

	cg.DELETE("", func(c echo.Context) error {
		if err := store.Delete(c.Request().Context(), sessionID(c)); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, cartBody(cart.New()))
	})
}
