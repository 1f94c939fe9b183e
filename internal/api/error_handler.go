// Package api wires the HTTP surface: router, middleware chain, handlers,
// and the central error handler.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lfsh/market-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors and surfaces their message to the caller, as
//     the legacy API did.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
//
// Handlers mostly convert domain errors themselves so they can format the
// historical Spanish messages; this handler is the fallback for echo's own
// errors and anything a handler let through.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Usuario o contraseña incorrectos"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Usuario no encontrado"
	case errors.Is(err, domain.ErrMarketNotFound):
		return http.StatusNotFound, "Mercado no encontrado"
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, "Producto no encontrado"
	case errors.Is(err, domain.ErrInvalidPrice):
		return http.StatusBadRequest, "Precio debe ser un número positivo"
	case errors.Is(err, domain.ErrNoFieldsToUpdate):
		return http.StatusBadRequest, "No hay campos válidos para actualizar"
	}

	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, err.Error()
}
