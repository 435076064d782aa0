package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shophub/storefront/internal/api/metrics"
	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/core/ports"
)

// CatalogHandler serves the product listing view.
type CatalogHandler struct {
	catalog ports.CatalogService
}

func NewCatalogHandler(catalog ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List runs one catalog load and returns its settled state. A failed fetch
// still answers 200 with the fallback catalog.
//
// @Summary      List products
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  catalogResponse
// @Failure      302
// @Router       /products [get]
func (h *CatalogHandler) List(c echo.Context) error {
	state := h.catalog.Load(c.Request().Context())
	metrics.ObserveCatalogLoad(state)

	products := state.Products
	if products == nil {
		products = []domain.Product{}
	}
	return c.JSON(http.StatusOK, catalogResponse{
		Status:   state.Status,
		Products: products,
		Error:    state.Error,
	})
}
