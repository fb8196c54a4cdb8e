package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"minimart/internal/errors"
	"minimart/internal/service"
)

// CartHandler handles cart endpoints.
type CartHandler struct {
	cartService service.CartService
	log         *logrus.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(cartService service.CartService, log *logrus.Logger) *CartHandler {
	return &CartHandler{cartService: cartService, log: log}
}

// AddToCartRequest represents a cart add payload.
type AddToCartRequest struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  int  `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartRequest represents a cart item quantity overwrite.
type UpdateCartRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// Add godoc
// @Summary Add a product to the cart
// @Tags cart
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body AddToCartRequest true "Product and quantity"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart [post]
func (h *CartHandler) Add(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	var req AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validationMessage(err))
	}

	item, err := h.cartService.Add(c.Request().Context(), identity.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":  "item added to cart",
		"cartItem": item,
	})
}

// View godoc
// @Summary View the cart
// @Tags cart
// @Produce json
// @Security TokenAuth
// @Success 200 {array} service.CartEntry
// @Failure 401 {object} errors.ErrorResponse
// @Router /cart [get]
func (h *CartHandler) View(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	entries, err := h.cartService.View(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entries)
}

// UpdateItem godoc
// @Summary Overwrite the quantity of a cart item
// @Tags cart
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param itemId path int true "Cart item ID"
// @Param request body UpdateCartRequest true "New quantity"
// @Success 200 {object} model.CartItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /cart/{itemId} [put]
func (h *CartHandler) UpdateItem(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	itemID, err := parseUintParam(c, "itemId")
	if err != nil {
		return respondError(c, h.log, errors.ErrCartItemNotFound)
	}

	var req UpdateCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validationMessage(err))
	}

	item, err := h.cartService.UpdateItem(c.Request().Context(), identity.UserID, itemID, req.Quantity)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}
