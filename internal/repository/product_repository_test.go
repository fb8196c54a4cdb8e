package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"minimart/internal/model"
)

func productNames(products []model.Product) []string {
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return names
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	seedProduct(t, db, "Wireless Mouse", "electronics", 19.99, 10)
	seedProduct(t, db, "Mechanical Keyboard", "electronics", 89.99, 5)
	seedProduct(t, db, "Standing Desk", "furniture", 299.00, 2)
	seedProduct(t, db, "Office Chair", "furniture", 150.00, 4)
}

func TestProductRepository_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	seedCatalog(t, db)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "matches name case-insensitively",
			query:    "MOUSE",
			expected: []string{"Wireless Mouse"},
		},
		{
			name:     "matches description",
			query:    "standing desk description",
			expected: []string{"Standing Desk"},
		},
		{
			name:     "substring match across products",
			query:    "e",
			expected: []string{"Wireless Mouse", "Mechanical Keyboard", "Standing Desk", "Office Chair"},
		},
		{
			name:     "no match",
			query:    "teapot",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, productNames(products))
		})
	}
}

func TestProductRepository_Filter(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()
	seedCatalog(t, db)

	electronics := "electronics"
	min50 := decimal.NewFromInt(50)
	max200 := decimal.NewFromInt(200)

	tests := []struct {
		name     string
		filter   ProductFilter
		expected []string
	}{
		{
			name:     "no clauses returns everything",
			filter:   ProductFilter{},
			expected: []string{"Wireless Mouse", "Mechanical Keyboard", "Standing Desk", "Office Chair"},
		},
		{
			name:     "category only",
			filter:   ProductFilter{Category: &electronics},
			expected: []string{"Wireless Mouse", "Mechanical Keyboard"},
		},
		{
			name:     "price range only",
			filter:   ProductFilter{PriceMin: &min50, PriceMax: &max200},
			expected: []string{"Mechanical Keyboard", "Office Chair"},
		},
		{
			name:     "clauses combine conjunctively",
			filter:   ProductFilter{Category: &electronics, PriceMin: &min50},
			expected: []string{"Mechanical Keyboard"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products, err := repo.Filter(ctx, tt.filter)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.expected, productNames(products))
		})
	}
}

func TestProductRepository_UpdateStock(t *testing.T) {
	db := newTestDB(t)
	repo := NewProductRepository(db)
	ctx := context.Background()

	product := seedProduct(t, db, "Monitor", "electronics", 220, 8)

	require.NoError(t, repo.UpdateStock(ctx, product.ID, 5))

	fresh, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, fresh.Stock)
}
