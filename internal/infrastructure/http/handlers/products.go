package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/core/ports"
)

// ProductHandler serves the raw catalog.
type ProductHandler struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductHandler(repo ports.ProductRepository, log zerolog.Logger) *ProductHandler {
	return &ProductHandler{repo: repo, log: log}
}

// productRecord is the wire layout of one catalog entry. Empty fields are
// omitted so clients see the same sparse records the catalog holds.
type productRecord struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name,omitempty"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
	Image       string  `json:"image,omitempty"`
}

type productsResponse struct {
	Products []productRecord `json:"products"`
}

// List handles GET /products.
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.repo.List(c.Request().Context())
	if err != nil {
		h.log.Error().Err(err).Str("op", "list_products").Msg("catalog query failed")
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
	}

	out := make([]productRecord, 0, len(products))
	for _, p := range products {
		out = append(out, productRecord{
			ID:          p.ID,
			Name:        p.Name,
			Price:       p.Price,
			Description: p.Description,
			Image:       p.Image,
		})
	}
	return c.JSON(http.StatusOK, productsResponse{Products: out})
}

// SeedCatalog returns the development catalog with fresh identifiers. The
// last record is deliberately sparse.
func SeedCatalog() []domain.Product {
	return []domain.Product{
		{
			ID:          uuid.NewString(),
			Name:        "Mechanical Keyboard",
			Price:       149.5,
			Description: "Tenkeyless keyboard with hot-swappable switches",
			Image:       "https://images.unsplash.com/photo-1618384887929-16ec33fab9ef",
		},
		{
			ID:          uuid.NewString(),
			Name:        "Espresso Machine",
			Price:       389,
			Description: "15-bar pump with steam wand",
			Image:       "https://images.unsplash.com/photo-1510707577719-ae7c14805e3a",
		},
		{
			ID:          uuid.NewString(),
			Name:        "Trail Backpack",
			Price:       89.99,
			Description: "28L daypack with rain cover",
		},
		{
			ID: uuid.NewString(),
		},
	}
}
