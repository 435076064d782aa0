package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shophub/storefront/internal/api/metrics"
	"github.com/shophub/storefront/internal/core/domain"
	"github.com/shophub/storefront/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry an add without appending twice.
const HeaderIdempotencyKey = "Idempotency-Key"

// HeaderIdempotentReplay is set on responses to a repeated key.
const HeaderIdempotentReplay = "Idempotent-Replay"

// CartHandler serves the cart view and its mutations.
type CartHandler struct {
	cart ports.CartService
	idem ports.IdempotencyStore
	log  zerolog.Logger
}

func NewCartHandler(cart ports.CartService, idem ports.IdempotencyStore, log zerolog.Logger) *CartHandler {
	return &CartHandler{cart: cart, idem: idem, log: log}
}

// Get returns the cart contents and total.
//
// @Summary      Show cart
// @Tags         cart
// @Produce      json
// @Success      200  {object}  cartResponse
// @Failure      302
// @Router       /cart [get]
func (h *CartHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, h.view())
}

// AddItem appends a product to the cart. Adding a product already in the
// cart appends a second entry.
//
// @Summary      Add a product to the cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key  header    string          false  "Retry key; a repeated key is acknowledged without adding again"
// @Param        body             body      addItemRequest  true   "Product"
// @Success      201              {object}  cartResponse
// @Success      200              {object}  cartResponse
// @Failure      400              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /cart/items [post]
func (h *CartHandler) AddItem(c echo.Context) error {
	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	ctx := c.Request().Context()
	var claimed string
	if key := c.Request().Header.Get(HeaderIdempotencyKey); key != "" && h.idem != nil {
		first, err := h.idem.Claim(ctx, key)
		switch {
		case err != nil:
			// Store unavailable: the add still goes through.
			h.log.Warn().Err(err).Str("op", "cart_add").Msg("idempotency check failed")
		case !first:
			metrics.CartOperationsTotal.WithLabelValues("add_replayed").Inc()
			c.Response().Header().Set(HeaderIdempotentReplay, "true")
			return c.JSON(http.StatusOK, h.view())
		default:
			claimed = key
		}
	}

	if err := h.cart.Add(req.toProduct()); err != nil {
		metrics.CartOperationsTotal.WithLabelValues("add_rejected").Inc()
		if claimed != "" {
			if rerr := h.idem.Release(ctx, claimed); rerr != nil {
				h.log.Warn().Err(rerr).Str("op", "cart_add").Msg("idempotency key release failed")
			}
		}
		return err
	}

	metrics.CartOperationsTotal.WithLabelValues("add").Inc()
	return c.JSON(http.StatusCreated, h.view())
}

// RemoveItem removes every entry with the given product id. Unknown ids are
// not an error.
//
// @Summary      Remove a product from the cart
// @Tags         cart
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  cartResponse
// @Router       /cart/items/{id} [delete]
func (h *CartHandler) RemoveItem(c echo.Context) error {
	h.cart.Remove(c.Param("id"))
	metrics.CartOperationsTotal.WithLabelValues("remove").Inc()
	return c.JSON(http.StatusOK, h.view())
}

// view renders one consistent snapshot of the cart.
func (h *CartHandler) view() cartResponse {
	snap := h.cart.Snapshot()
	items := snap.Items
	if items == nil {
		items = []domain.Product{}
	}
	metrics.CartItems.Set(float64(len(items)))
	return cartResponse{
		Items:        items,
		Total:        snap.Total,
		TotalDisplay: domain.FormatPrice(snap.Total),
		Empty:        snap.Empty,
	}
}
