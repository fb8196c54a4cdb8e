package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"minimart/internal/errors"
	"minimart/internal/model"
	"minimart/internal/repository"
	"minimart/internal/service"
)

// ProductHandler handles catalog endpoints, including reviews.
type ProductHandler struct {
	productService service.ProductService
	log            *logrus.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(productService service.ProductService, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{productService: productService, log: log}
}

// ProductRequest represents a product create or update payload. Stock is a
// pointer so an explicit zero passes the required check.
type ProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
	Stock       *int    `json:"stock" validate:"required,gte=0"`
}

// ReviewRequest represents a review payload.
type ReviewRequest struct {
	Rating  *int   `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required"`
}

func (r *ProductRequest) toModel() *model.Product {
	return &model.Product{
		Name:        r.Name,
		Description: r.Description,
		Price:       decimal.NewFromFloat(r.Price),
		Category:    r.Category,
		Stock:       *r.Stock,
	}
}

// Create godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param request body ProductRequest true "Product data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /products/create [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validationMessage(err))
	}

	product, err := h.productService.Create(c.Request().Context(), req.toModel())
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "product created successfully",
		"product": product,
	})
}

// Update godoc
// @Summary Update a product
// @Tags products
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Product ID"
// @Param request body ProductRequest true "Product data"
// @Success 200 {object} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrProductNotFound)
	}

	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validationMessage(err))
	}

	product, err := h.productService.Update(c.Request().Context(), id, req.toModel())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Security TokenAuth
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrProductNotFound)
	}

	if err := h.productService.Delete(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "product deleted successfully",
	})
}

// List godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.productService.List(c.Request().Context())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Get godoc
// @Summary Get a product by ID
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrProductNotFound)
	}

	product, err := h.productService.GetByID(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, product)
}

// Search godoc
// @Summary Search products by name or description
// @Tags products
// @Produce json
// @Param q query string false "Substring to match, case-insensitive"
// @Success 200 {array} model.Product
// @Router /products/search [get]
func (h *ProductHandler) Search(c echo.Context) error {
	products, err := h.productService.Search(c.Request().Context(), c.QueryParam("q"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// Filter godoc
// @Summary Filter products by category and price range
// @Tags products
// @Produce json
// @Param category query string false "Category"
// @Param priceMin query number false "Minimum price"
// @Param priceMax query number false "Maximum price"
// @Success 200 {array} model.Product
// @Failure 400 {object} errors.ErrorResponse
// @Router /products/filter [get]
func (h *ProductHandler) Filter(c echo.Context) error {
	// Absent parameters mean no constraint; zero values are honored as real
	// bounds only when the parameter is present.
	var filter repository.ProductFilter
	params := c.QueryParams()

	if params.Has("category") {
		category := params.Get("category")
		filter.Category = &category
	}
	if params.Has("priceMin") {
		min, err := decimal.NewFromString(params.Get("priceMin"))
		if err != nil {
			return badRequest("priceMin must be a number")
		}
		filter.PriceMin = &min
	}
	if params.Has("priceMax") {
		max, err := decimal.NewFromString(params.Get("priceMax"))
		if err != nil {
			return badRequest("priceMax must be a number")
		}
		filter.PriceMax = &max
	}

	products, err := h.productService.Filter(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, products)
}

// AddReview godoc
// @Summary Add a review to a product
// @Tags products
// @Accept json
// @Produce json
// @Security TokenAuth
// @Param id path int true "Product ID"
// @Param request body ReviewRequest true "Review data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/review [post]
func (h *ProductHandler) AddReview(c echo.Context) error {
	identity, err := requireIdentity(c)
	if err != nil {
		return err
	}

	productID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrProductNotFound)
	}

	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(validationMessage(err))
	}

	review, err := h.productService.AddReview(c.Request().Context(), productID, identity.UserID, *req.Rating, req.Comment)
	if err != nil {
		return respondError(c, h.log, err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "review added successfully",
		"review":  review,
	})
}

// ListReviews godoc
// @Summary List reviews of a product
// @Tags products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} model.Review
// @Router /products/{id}/reviews [get]
func (h *ProductHandler) ListReviews(c echo.Context) error {
	productID, err := parseUintParam(c, "id")
	if err != nil {
		return respondError(c, h.log, errors.ErrProductNotFound)
	}

	reviews, err := h.productService.ListReviews(c.Request().Context(), productID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, reviews)
}

// DeleteReview godoc
// @Summary Delete a review
// @Tags products
// @Produce json
// @Security TokenAuth
// @Param id path int true "Product ID"
// @Param reviewId path int true "Review ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /products/{id}/reviews/{reviewId} [delete]
func (h *ProductHandler) DeleteReview(c echo.Context) error {
	reviewID, err := parseUintParam(c, "reviewId")
	if err != nil {
		return respondError(c, h.log, errors.ErrReviewNotFound)
	}

	if err := h.productService.DeleteReview(c.Request().Context(), reviewID); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "review deleted successfully",
	})
}
