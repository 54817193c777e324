package main

import (
	"net/http"
	"strconv"

	"SareeStoreAPI/internal/middleware"
	"SareeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// registerContactRoutes mounts the public contact form and the admin inbox.
//
//	POST  /contact            -> submit (rate limited)
//	GET   /contact            -> admin: ?page=&limit=&unread=true
//	PATCH /contact/:id/read   -> admin: mark read
func registerContactRoutes(g *echo.Group, cs *services.ContactService, auth, limiter echo.MiddlewareFunc) {
	g.POST("/contact", func(c echo.Context) error {
		var req contactRequest
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "invalid request body")
		}
		m, err := cs.Submit(c.Request().Context(), services.ContactInput{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Subject: req.Subject,
			Message: req.Message,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusCreated, echo.Map{"success": true, "id": m.MessageID})
	}, limiter)

	g.GET("/contact", func(c echo.Context) error {
		page, _ := strconv.Atoi(c.QueryParam("page"))
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		unread := c.QueryParam("unread") == "true"

		res, err := cs.List(c.Request().Context(), page, limit, unread)
		if err != nil {
			return respondError(c, err)
		}
		msgs := make([]contactResponse, 0, len(res.Messages))
		for _, m := range res.Messages {
			msgs = append(msgs, toContactResponse(m))
		}
		return c.JSON(http.StatusOK, echo.Map{
			"messages": msgs,
			"total":    res.Total,
			"page":     res.Page,
			"limit":    res.Limit,
		})
	}, auth, middleware.AdminOnly)

	g.PATCH("/contact/:id/read", func(c echo.Context) error {
		id, err := parseIDParam(c, "id")
		if err != nil {
			return respondError(c, err)
		}
		if err := cs.MarkRead(c.Request().Context(), id); err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	}, auth, middleware.AdminOnly)
}
