package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"minimart/internal/auth"
	"minimart/internal/config"
	"minimart/internal/handler"
	"minimart/internal/model"
	"minimart/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userRepo repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	productHandler *handler.ProductHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewCustomValidator()

	// Authentication chain: verify the x-auth-token header, then re-read the
	// user from storage so the role is always fresh. The admin gate runs
	// before the handler, so authorization always precedes payload validation.
	authRequired := []echo.MiddlewareFunc{
		auth.TokenMiddleware(cfg.JWTSecret),
		auth.LoadIdentity(userRepo),
	}
	adminOnly := append(append([]echo.MiddlewareFunc{}, authRequired...), auth.RequireRoles(model.RoleAdmin))

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "Welcome to the minimart e-commerce API!")
	})
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Users
	users := api.Group("/users")
	users.POST("/register", authHandler.Register)
	users.POST("/login", authHandler.Login)
	users.GET("/profile", userHandler.GetProfile, authRequired...)
	users.PUT("/profile", userHandler.UpdateProfile, authRequired...)
	users.DELETE("/profile", userHandler.DeleteProfile, authRequired...)

	// Products
	products := api.Group("/products")
	products.POST("/create", productHandler.Create, adminOnly...)
	products.GET("", productHandler.List)
	products.GET("/search", productHandler.Search)
	products.GET("/filter", productHandler.Filter)
	products.GET("/:id", productHandler.Get)
	products.PUT("/:id", productHandler.Update, adminOnly...)
	products.DELETE("/:id", productHandler.Delete, adminOnly...)

	// Reviews
	products.POST("/:id/review", productHandler.AddReview, authRequired...)
	products.GET("/:id/reviews", productHandler.ListReviews)
	products.DELETE("/:id/reviews/:reviewId", productHandler.DeleteReview, adminOnly...)

	// Cart
	cart := api.Group("/cart")
	cart.POST("", cartHandler.Add, authRequired...)
	cart.POST("/create", cartHandler.Add, authRequired...) // legacy alias
	cart.GET("", cartHandler.View, authRequired...)
	cart.PUT("/:itemId", cartHandler.UpdateItem, authRequired...)

	// Orders
	orders := api.Group("/orders")
	orders.POST("", orderHandler.Create, authRequired...)
	orders.GET("", orderHandler.List, authRequired...)
	orders.GET("/admin/orders", orderHandler.ListAll, adminOnly...)
	orders.PUT("/admin/orders/:id/status", orderHandler.UpdateStatus, adminOnly...)
	orders.GET("/:id", orderHandler.Get, authRequired...)
	orders.DELETE("/:id", orderHandler.Cancel, authRequired...)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds the request validator used by the server.
func NewCustomValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
