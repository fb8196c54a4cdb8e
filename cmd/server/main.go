package main

import (
	"net/http"
	"os"

	_ "minimart/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"minimart/internal/auth"
	"minimart/internal/cache"
	"minimart/internal/config"
	"minimart/internal/db"
	"minimart/internal/handler"
	"minimart/internal/logger"
	"minimart/internal/model"
	"minimart/internal/repository"
	"minimart/internal/router"
	"minimart/internal/service"
)

// @title Minimart E-Commerce API
// @version 1.0
// @description Minimal e-commerce backend with token authentication, product catalog, carts, and orders.
// @host localhost:3005
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey TokenAuth
// @in header
// @name x-auth-token
func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Warn("RESET_DB=true detected, dropping all tables")
		tables := []interface{}{
			&model.Review{},
			&model.CartItem{},
			&model.Order{},
			&model.Product{},
			&model.User{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Warnf("failed to drop table (may not exist): %v", err)
			}
		}
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.Review{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	cartRepo := repository.NewCartRepository(gormDB)
	orderRepo := repository.NewOrderRepository(gormDB)
	reviewRepo := repository.NewReviewRepository(gormDB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	productService := service.NewProductService(productRepo, reviewRepo, cacheClient)
	cartService := service.NewCartService(cartRepo, productRepo, cacheClient)
	orderService := service.NewOrderService(orderRepo, cartRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, log)
	userHandler := handler.NewUserHandler(userService, log)
	productHandler := handler.NewProductHandler(productService, log)
	cartHandler := handler.NewCartHandler(cartService, log)
	orderHandler := handler.NewOrderHandler(orderService, log)

	router.Register(
		e,
		cfg,
		userRepo,
		authHandler,
		userHandler,
		productHandler,
		cartHandler,
		orderHandler,
	)

	addr := ":" + cfg.ServerPort
	log.Infof("server listening on %s", addr)
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
