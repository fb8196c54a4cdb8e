package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"minimart/internal/errors"
	"minimart/internal/model"
	"minimart/internal/service"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	orderService service.OrderService
	log          *logrus.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orderService service.OrderService, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

// UpdateStatusRequest represents an admin order status overwrite.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=PENDING COMPLETED CANCELLED"`
}

// Create godoc
// @Summary Create an order from the cart
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	order, err := h.orderService.Create(c.Request().Context(), identity.UserID)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "order created successfully",
		"order":   order,
	})
}

// List godoc
// @Summary List the caller's orders
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Param status query string false "Filter by status (PENDING or COMPLETED)"
// @Success 200 {array} model.Order
// @Failure 401 {object} errors.ErrorResponse
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	orders, err := h.orderService.List(c.Request().Context(), identity.UserID, c.QueryParam("status"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// Get godoc
// @Summary Get one of the caller's orders
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Param id path int true "Order ID"
// @Success 200 {object} model.Order
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrOrderNotFound)
	}

	order, err := h.orderService.Get(c.Request().Context(), identity.UserID, orderID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, order)
}

// Cancel godoc
// @Summary Cancel one of the caller's orders
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Param id path int true "Order ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) Cancel(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrOrderNotFound)
	}

	if err := h.orderService.Cancel(c.Request().Context(), identity.UserID, orderID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "order cancelled successfully",
	})
}

// ListAll godoc
// @Summary List every order (admin)
// @Tags orders
// @Produce json
// @Security TokenAuth
// @Success 200 {array} model.Order
// @Failure 403 {object} errors.ErrorResponse
// @Router /orders/admin/orders [get]
func (h *OrderHandler) ListAll(c echo.Context) error {
	orders, err := h.orderService.ListAll(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, orders)
}

// UpdateStatus godoc
// @Summary Overwrite an order's status (admin)
// @Tags orders
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Order ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} model.Order
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /orders/admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	orderID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrOrderNotFound)
	}

	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validationMessage(err))
	}

	order, err := h.orderService.UpdateStatus(c.Request().Context(), orderID, model.OrderStatus(req.Status))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, order)
}
