package main

import (
	"net/http"

	"SareeStoreAPI/internal/middleware"
	"SareeStoreAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func registerAuthRoutes(g *echo.Group, authSvc *services.AuthService, jwt *middleware.JWTManager) {
	g.POST("/auth/register", registerHandler(authSvc))
	g.POST("/auth/login", loginHandler(authSvc, jwt))
	g.GET("/auth/me", meHandler(authSvc), jwt.JWTMiddleware())
}

func registerHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(registerRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		u, err := authSvc.Register(c.Request().Context(), req.Email, req.Password, req.FullName)
		if err != nil {
			return respondError(c, err)
		}

		return c.JSON(http.StatusCreated, echo.Map{"user": toUserResponse(*u)})
	}
}

func loginHandler(authSvc *services.AuthService, jwt *middleware.JWTManager) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := new(loginRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": "invalid request",
			})
		}

		user, err := authSvc.Login(c.Request().Context(), req.Email, req.Password)
		if err != nil {
			return respondError(c, err)
		}

		token, err := jwt.GenerateToken(user.UserID, user.Email, user.IsAdmin)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{
				"error": "could not create token",
			})
		}

		return c.JSON(http.StatusOK, echo.Map{
			"token": token,
			"user":  toUserResponse(*user),
		})
	}
}

// meHandler returns the authenticated user's info
func meHandler(authSvc *services.AuthService) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		u, err := authSvc.Me(c.Request().Context(), claims.UserID)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(http.StatusOK, toUserResponse(*u))
	}
}
