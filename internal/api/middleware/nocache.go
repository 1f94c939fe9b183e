package middleware

import "github.com/labstack/echo/v4"

// NoCache stamps every response with headers that forbid client and proxy
// caching. The exact header values are load-bearing: clients of the legacy
// service rely on them to never cache the login or dashboard views.
func NoCache() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set("Cache-Control", "no-store, no-cache, must-revalidate, post-check=0, pre-check=0, max-age=0")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "-1")
			return next(c)
		}
	}
}
