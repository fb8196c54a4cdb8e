package main

import (
	"context"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"minimart/internal/auth"
	"minimart/internal/config"
	"minimart/internal/db"
	"minimart/internal/model"
	"minimart/internal/repository"
)

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.CartItem{},
		&model.Order{},
		&model.Review{},
	); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)

	if err := seedAdmin(ctx, userRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	created, err := seedProducts(ctx, gormDB, productRepo)
	if err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}

	log.Printf("Seed completed successfully, %d products created", created)
}

// seedAdmin ensures an ADMIN account exists. Credentials come from
// ADMIN_EMAIL / ADMIN_PASSWORD with local-only defaults.
func seedAdmin(ctx context.Context, users repository.UserRepository) error {
	email := getEnv("ADMIN_EMAIL", "admin@minimart.local")
	password := getEnv("ADMIN_PASSWORD", "changeme-admin")

	if _, err := users.FindByEmail(ctx, email); err == nil {
		log.Printf("Admin user %s already exists, skipping", email)
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
	}
	if err := users.Create(ctx, admin); err != nil {
		return err
	}
	log.Printf("Admin user %s created", email)
	return nil
}

// seedProducts inserts a demo catalog when the products table is empty.
func seedProducts(ctx context.Context, gormDB *gorm.DB, products repository.ProductRepository) (int, error) {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&model.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		log.Printf("Products table already has %d rows, skipping", count)
		return 0, nil
	}

	demo := []model.Product{
		{Name: "Wireless Mouse", Description: "Ergonomic 2.4GHz wireless mouse", Price: decimal.NewFromFloat(24.99), Category: "electronics", Stock: 120},
		{Name: "Mechanical Keyboard", Description: "Tenkeyless keyboard with brown switches", Price: decimal.NewFromFloat(79.90), Category: "electronics", Stock: 45},
		{Name: "Espresso Beans 1kg", Description: "Medium roast arabica espresso beans", Price: decimal.NewFromFloat(18.50), Category: "grocery", Stock: 200},
		{Name: "Ceramic Mug", Description: "350ml stoneware mug, dishwasher safe", Price: decimal.NewFromFloat(9.95), Category: "kitchen", Stock: 75},
		{Name: "Yoga Mat", Description: "Non-slip 6mm yoga mat", Price: decimal.NewFromFloat(29.00), Category: "sports", Stock: 60},
	}

	created := 0
	for i := range demo {
		if err := products.Create(ctx, &demo[i]); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
