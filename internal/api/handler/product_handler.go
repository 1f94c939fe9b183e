package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lfsh/market-api/internal/api/metrics"
	"github.com/lfsh/market-api/internal/core/domain"
	"github.com/lfsh/market-api/internal/core/ports"
)

// ProductHandler handles the /api/productos CRUD surface.
type ProductHandler struct {
	service ports.CatalogService
}

func NewProductHandler(service ports.CatalogService) *ProductHandler {
	return &ProductHandler{service: service}
}

// --- Request / Response types ---

type createProductRequest struct {
	Nombre   *string  `json:"nombre"   validate:"required"`
	IDOrigen *int     `json:"idOrigen" validate:"required"`
	UMedida  *string  `json:"uMedida"  validate:"required"`
	Precio   *float64 `json:"precio"   validate:"required,gte=0"`
}

type updateProductRequest struct {
	Nombre   *string  `json:"nombre"`
	IDOrigen *int     `json:"idOrigen"`
	UMedida  *string  `json:"uMedida"`
	Precio   *float64 `json:"precio"`
}

// productItem is a product as rendered in the paginated listing.
type productItem struct {
	ID       int    `json:"id"`
	Nombre   string `json:"nombre"`
	IDOrigen int    `json:"idOrigen"`
	UMedida  string `json:"uMedida"`
	Precio   int    `json:"precio"`
	Mercado  string `json:"mercado"`
}

// productDict is a product as rendered in the create/update/delete
// envelopes. The listing and the envelopes historically name the market
// field differently; both shapes are preserved.
type productDict struct {
	ID            int    `json:"id"`
	IDOrigen      int    `json:"idOrigen"`
	Nombre        string `json:"nombre"`
	UMedida       string `json:"uMedida"`
	Precio        int    `json:"precio"`
	MercadoNombre string `json:"mercado_nombre"`
}

type listProductsResponse struct {
	Status     string        `json:"status"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	Productos  []productItem `json:"productos"`
}

type productResponse struct {
	Status   string      `json:"status"`
	Message  string      `json:"message"`
	Producto productDict `json:"producto"`
}

type deleteProductResponse struct {
	Status            string      `json:"status"`
	Message           string      `json:"message"`
	ProductoEliminado productDict `json:"producto_eliminado"`
}

func toDict(p *domain.ProductWithMarket) productDict {
	return productDict{
		ID:            p.ID,
		IDOrigen:      p.IDOrigen,
		Nombre:        p.Nombre,
		UMedida:       p.UMedida,
		Precio:        p.Precio,
		MercadoNombre: p.Mercado,
	}
}

// List handles GET /api/productos.
//
// @Summary      List products with their market names
// @Tags         productos
// @Produce      json
// @Security     ApiKeyAuth
// @Param        page      query     int  false  "Page number (default 1)"
// @Param        per_page  query     int  false  "Page size (default 10)"
// @Success      200       {object}  listProductsResponse
// @Failure      401       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/productos [get]
func (h *ProductHandler) List(c echo.Context) error {
	page := intQuery(c, "page", 1)
	perPage := intQuery(c, "per_page", 10)

	result, err := h.service.ListProducts(c.Request().Context(), page, perPage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"status": "error", "message": err.Error(),
		})
	}

	items := make([]productItem, 0, len(result.Items))
	for _, p := range result.Items {
		items = append(items, productItem{
			ID:       p.ID,
			Nombre:   p.Nombre,
			IDOrigen: p.IDOrigen,
			UMedida:  p.UMedida,
			Precio:   p.Precio,
			Mercado:  p.Mercado,
		})
	}

	return c.JSON(http.StatusOK, listProductsResponse{
		Status:     "success",
		Page:       result.Page,
		PerPage:    result.PerPage,
		Total:      result.Total,
		TotalPages: result.TotalPages,
		Productos:  items,
	})
}

// Create handles POST /api/productos.
//
// @Summary      Create a product
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      createProductRequest  true  "Product fields"
// @Success      201   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/productos [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No se proporcionó datos JSON"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	created, err := h.service.CreateProduct(c.Request().Context(), ports.CreateProductInput{
		Nombre:   *req.Nombre,
		IDOrigen: *req.IDOrigen,
		UMedida:  *req.UMedida,
		Precio:   *req.Precio,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMarketNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("Mercado con ID %d no encontrado", *req.IDOrigen),
			})
		case errors.Is(err, domain.ErrInvalidPrice):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Precio debe ser un número positivo"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	metrics.ProductMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, productResponse{
		Status:   "success",
		Message:  "Producto creado exitosamente",
		Producto: toDict(created),
	})
}

// Update handles PUT /api/productos/{id}. Only the supplied fields change.
//
// @Summary      Update a product
// @Tags         productos
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id    path      int                   true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  productResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/productos/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "No se proporcionó datos JSON"})
	}

	updated, err := h.service.UpdateProduct(c.Request().Context(), id, ports.UpdateProductInput{
		Nombre:   req.Nombre,
		IDOrigen: req.IDOrigen,
		UMedida:  req.UMedida,
		Precio:   req.Precio,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoFieldsToUpdate):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "No hay campos válidos para actualizar"})
		case errors.Is(err, domain.ErrProductNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("Producto con ID %d no encontrado", id),
			})
		case errors.Is(err, domain.ErrMarketNotFound):
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("Mercado con ID %d no encontrado", *req.IDOrigen),
			})
		case errors.Is(err, domain.ErrInvalidPrice):
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Precio debe ser un número positivo"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	metrics.ProductMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, productResponse{
		Status:   "success",
		Message:  "Producto actualizado exitosamente",
		Producto: toDict(updated),
	})
}

// Delete handles DELETE /api/productos/{id}, returning the snapshot taken
// before deletion.
//
// @Summary      Delete a product
// @Tags         productos
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id  path      int  true  "Product id"
// @Success      200 {object}  deleteProductResponse
// @Failure      404 {object}  map[string]string
// @Failure      500 {object}  map[string]string
// @Router       /api/productos/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Not Found")
	}

	deleted, err := h.service.DeleteProduct(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{
				"error": fmt.Sprintf("Producto con ID %d no encontrado", id),
			})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	metrics.ProductMutationsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, deleteProductResponse{
		Status:            "success",
		Message:           "Producto eliminado exitosamente",
		ProductoEliminado: toDict(deleted),
	})
}

// intQuery parses an integer query parameter, falling back to def when the
// parameter is absent or not a number.
func intQuery(c echo.Context, name string, def int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}
