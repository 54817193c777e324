package main

import (
	"errors"
	"net/http"

	"SareeStoreAPI/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// respondError writes err as {"error": "..."} with the status its kind maps to.
func respondError(c echo.Context, err error) error {
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": vErr.Error()})
	case errors.Is(err, services.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	case services.IsNotFound(err):
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	case services.IsConflict(err):
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}
	logger.Error().Err(err).Str("path", c.Path()).Str("method", c.Request().Method).Msg("request failed")
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func parseIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, &services.ValidationError{Field: name, Message: "invalid " + name}
	}
	return id, nil
}
