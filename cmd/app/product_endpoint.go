package main

import (
	"net/http"
	"strconv"

	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func parseFloatQuery(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &services.ValidationError{Field: name, Message: "invalid " + name}
	}
	return &v, nil
}

// productFilterFromQuery reads category, minPrice, maxPrice, search, limit and offset.
func productFilterFromQuery(c echo.Context) (model.ProductFilter, error) {
	minPrice, err := parseFloatQuery(c, "minPrice")
	if err != nil {
		return model.ProductFilter{}, err
	}
	maxPrice, err := parseFloatQuery(c, "maxPrice")
	if err != nil {
		return model.ProductFilter{}, err
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	offset, _ := strconv.Atoi(c.QueryParam("offset"))
	return model.ProductFilter{
		Category: c.QueryParam("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Search:   c.QueryParam("search"),
		Limit:    limit,
		Offset:   offset,
	}, nil
}

// registerProductRoutes mounts the public catalog.
//
//	GET /products              -> {products, count, offset, limit}
//	GET /products/categories   -> distinct categories
//	GET /products/:id          -> {product}
//	GET /products/:id/related  -> same category (?limit=4)
func registerProductRoutes(g *echo.Group, cs *services.CatalogService) {
	g.GET("/products", func(c echo.Context) error {
		f, err := productFilterFromQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		page, err := cs.List(c.Request().Context(), f)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"products": toProductResponses(page.Products),
			"count":    page.Total,
			"offset":   page.Offset,
			"limit":    page.Limit,
		})
	})

	g.GET("/products/categories", func(c echo.Context) error {
		cats, err := cs.Categories(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"categories": cats})
	})

	g.GET("/products/:id", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		p, err := cs.Get(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"product": toProductResponse(*p)})
	})

	g.GET("/products/:id/related", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		list, err := cs.Related(c.Request().Context(), id, limit)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"products": toProductResponses(list)})
	})
}
