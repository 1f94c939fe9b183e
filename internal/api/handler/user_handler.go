package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lfsh/market-api/internal/core/domain"
	"github.com/lfsh/market-api/internal/core/ports"
)

// UserHandler handles the key-holder profile lookup.
type UserHandler struct {
	auth ports.AuthService
}

func NewUserHandler(auth ports.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// Profile handles GET /usuario: it resolves the caller's own user row from
// the API key the middleware already verified. The password never leaves
// the domain type.
//
// @Summary      Get the profile of the key holder
// @Tags         usuario
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /usuario [get]
func (h *UserHandler) Profile(c echo.Context) error {
	key, _ := c.Get("api_key").(string)
	if key == "" {
		key = c.Request().Header.Get("X-API-Key")
		if key == "" {
			key = c.QueryParam("api_key")
		}
	}

	user, err := h.auth.UserByKey(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Usuario no encontrado"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, user)
}
