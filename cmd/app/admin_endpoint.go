package main

import (
	"io"
	"net/http"
	"strconv"

	"SareeStoreAPI/internal/middleware"
	"SareeStoreAPI/internal/model"
	"SareeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type productRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	Category      string   `json:"category"`
	Images        []string `json:"images"`
	StockQuantity int      `json:"stockQuantity"`
	SKU           string   `json:"sku"`
	Material      string   `json:"material"`
	Color         string   `json:"color"`
}

func (r productRequest) toInput() services.ProductInput {
	return services.ProductInput{
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		Category:      r.Category,
		Images:        r.Images,
		StockQuantity: r.StockQuantity,
		SKU:           r.SKU,
		Material:      r.Material,
		Color:         r.Color,
	}
}

type orderStatusRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

type shippingZoneRequest struct {
	ZoneName      string   `json:"zone_name"`
	States        []string `json:"states"`
	BaseCharge    float64  `json:"base_charge"`
	EstimatedDays string   `json:"estimated_days"`
	IsActive      *bool    `json:"is_active"`
}

func (r shippingZoneRequest) toZone() model.ShippingZone {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return model.ShippingZone{
		ZoneName:      r.ZoneName,
		States:        r.States,
		BaseCharge:    r.BaseCharge,
		EstimatedDays: r.EstimatedDays,
		IsActive:      active,
	}
}

// registerAdminRoutes mounts the back office. Every route requires a token
// carrying is_admin.
//
//	GET    /admin/dashboard
//	GET    /admin/orders                 (?status=&limit=&offset=)
//	PATCH  /admin/orders/:id/status      {status?, paymentStatus?}
//	GET    /admin/products, POST /admin/products
//	PUT    /admin/products/:id, DELETE /admin/products/:id
//	POST   /admin/products/images        multipart "file"
//	GET    /admin/customers
//	GET    /admin/shipping-zones, POST /admin/shipping-zones
//	PUT    /admin/shipping-zones/:id
func registerAdminRoutes(g *echo.Group, as *services.AdminService, orderSvc *services.OrderService, ss *services.ShippingService, auth echo.MiddlewareFunc) {
	ag := g.Group("/admin", auth, middleware.AdminOnly)

	ag.GET("/dashboard", func(c echo.Context) error {
		st, err := as.Dashboard(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, dashboardResponse(*st))
	})

	ag.GET("/orders", func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		offset, _ := strconv.Atoi(c.QueryParam("offset"))
		page, err := orderSvc.List(c.Request().Context(), c.QueryParam("status"), limit, offset)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"orders": toOrderResponses(page.Orders),
			"total":  page.Total,
			"limit":  page.Limit,
			"offset": page.Offset,
		})
	})

	ag.PATCH("/orders/:id/status", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req orderStatusRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		o, err := orderSvc.UpdateStatus(c.Request().Context(), id, model.OrderStatusUpdate{
			Status:        req.Status,
			PaymentStatus: req.PaymentStatus,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toOrderResponse(*o))
	})

	ag.GET("/products", func(c echo.Context) error {
		f, err := productFilterFromQuery(c)
		if err != nil {
			return respondError(c, err)
		}
		page, err := as.ListProducts(c.Request().Context(), f)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{
			"products": toProductResponses(page.Products),
			"total":    page.Total,
			"limit":    page.Limit,
			"offset":   page.Offset,
		})
	})

	ag.POST("/products", func(c echo.Context) error {
		var req productRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		p, err := as.CreateProduct(c.Request().Context(), req.toInput())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, toProductResponse(*p))
	})

	ag.PUT("/products/:id", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req productRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		p, err := as.UpdateProduct(c.Request().Context(), id, req.toInput())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toProductResponse(*p))
	})

	ag.DELETE("/products/:id", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := as.DeleteProduct(c.Request().Context(), id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	ag.POST("/products/images", func(c echo.Context) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return badRequest(c, "file is required")
		}
		if fh.Size > services.MaxImageSize {
			return badRequest(c, "file too large: max 5MB")
		}
		f, err := fh.Open()
		if err != nil {
			return respondError(c, err)
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, services.MaxImageSize+1))
		if err != nil {
			return respondError(c, err)
		}
		url, err := as.UploadImage(c.Request().Context(), data)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"url": url})
	})

	ag.GET("/customers", func(c echo.Context) error {
		list, err := as.ListCustomers(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		resp := make([]customerResponse, 0, len(list))
		for _, cu := range list {
			resp = append(resp, toCustomerResponse(cu))
		}
		return c.JSON(http.StatusOK, echo.Map{"customers": resp})
	})

	ag.GET("/shipping-zones", func(c echo.Context) error {
		zones, err := ss.AllZones(c.Request().Context())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"zones": zones})
	})

	ag.POST("/shipping-zones", func(c echo.Context) error {
		var req shippingZoneRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		z, err := ss.CreateZone(c.Request().Context(), req.toZone())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, z)
	})

	ag.PUT("/shipping-zones/:id", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		var req shippingZoneRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		zone := req.toZone()
		zone.ZoneID = id
		z, err := ss.UpdateZone(c.Request().Context(), zone)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, z)
	})
}
