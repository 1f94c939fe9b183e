package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lfsh/market-api/internal/core/domain"
	"github.com/lfsh/market-api/internal/core/ports"
)

// MarketHandler handles the read-only /api/mercados surface.
type MarketHandler struct {
	service ports.CatalogService
}

func NewMarketHandler(service ports.CatalogService) *MarketHandler {
	return &MarketHandler{service: service}
}

type listMarketsResponse struct {
	Status   string          `json:"status"`
	Count    int             `json:"count"`
	Mercados []domain.Market `json:"mercados"`
}

// List handles GET /api/mercados.
//
// @Summary      List all markets
// @Tags         mercados
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  listMarketsResponse
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/mercados [get]
func (h *MarketHandler) List(c echo.Context) error {
	markets, err := h.service.ListMarkets(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, listMarketsResponse{
		Status:   "success",
		Count:    len(markets),
		Mercados: markets,
	})
}
