package main

import (
	"net/http"

	"SareeStoreAPI/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const idempotencyKeyHeader = "Idempotency-Key"

type shippingAddressRequest struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postalCode"`
	Country      string `json:"country"`
}

type orderItemRequest struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
}

type createOrderRequest struct {
	ShippingAddress shippingAddressRequest `json:"shippingAddress"`
	Items           []orderItemRequest     `json:"items"`
	ShippingCost    float64                `json:"shippingCost"`
}

func (r createOrderRequest) toCheckout(idempotencyKey string) services.CheckoutRequest {
	a := r.ShippingAddress
	req := services.CheckoutRequest{
		Address: services.ShippingAddress{
			FullName:     a.FullName,
			Email:        a.Email,
			Phone:        a.Phone,
			AddressLine1: a.AddressLine1,
			AddressLine2: a.AddressLine2,
			City:         a.City,
			State:        a.State,
			PostalCode:   a.PostalCode,
			Country:      a.Country,
		},
		ShippingCost:   r.ShippingCost,
		IdempotencyKey: idempotencyKey,
	}
	for _, it := range r.Items {
		req.Items = append(req.Items, services.CheckoutItem{ProductID: it.ProductID, Price: it.Price})
	}
	return req
}

// registerOrderRoutes mounts guest checkout and order lookup.
//
//	POST /orders                      -> checkout (rate limited)
//	GET  /orders?email=               -> orders for an email
//	GET  /orders/track/:orderNumber   -> detail by order number
//	GET  /orders/:id                  -> detail by id
func registerOrderRoutes(g *echo.Group, checkout *services.CheckoutService, orderSvc *services.OrderService, limiter echo.MiddlewareFunc) {
	g.POST("/orders", func(c echo.Context) error {
		var req createOrderRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		res, err := checkout.Checkout(c.Request().Context(), req.toCheckout(c.Request().Header.Get(idempotencyKeyHeader)))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{
			"orderId":     res.OrderID,
			"orderNumber": res.OrderNumber,
		})
	}, limiter)

	g.GET("/orders", func(c echo.Context) error {
		orders, err := orderSvc.ListByEmail(c.Request().Context(), c.QueryParam("email"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"orders": toOrderResponses(orders)})
	})

	g.GET("/orders/track/:orderNumber", func(c echo.Context) error {
		d, err := orderSvc.Track(c.Request().Context(), c.Param("orderNumber"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toOrderDetailResponse(d))
	})

	g.GET("/orders/:id", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		d, err := orderSvc.Detail(c.Request().Context(), id)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toOrderDetailResponse(d))
	})
}
