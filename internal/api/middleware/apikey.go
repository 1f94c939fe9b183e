package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lfsh/market-api/internal/api/metrics"
	"github.com/lfsh/market-api/internal/core/ports"
)

// msgInvalidKey is the exact error message the API returns for a missing or
// unknown key.
const msgInvalidKey = "API Key inválida o no proporcionada"

// APIKey gates a route group behind a valid API key. The key is read from
// the X-API-Key header first, the api_key query parameter second, and is
// verified against the store before the handler runs. The accepted key is
// injected into the request context under "api_key".
func APIKey(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get("X-API-Key")
			if key == "" {
				key = c.QueryParam("api_key")
			}
			if key == "" {
				metrics.APIKeyChecksTotal.WithLabelValues("missing").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidKey})
			}

			ok, err := auth.VerifyKey(c.Request().Context(), key)
			if err != nil {
				return err
			}
			if !ok {
				metrics.APIKeyChecksTotal.WithLabelValues("invalid").Inc()
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": msgInvalidKey})
			}

			metrics.APIKeyChecksTotal.WithLabelValues("ok").Inc()
			c.Set("api_key", key)
			return next(c)
		}
	}
}
