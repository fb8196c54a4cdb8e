package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"minimart/internal/errors"
	"minimart/internal/model"
	"minimart/internal/repository"
)

// MockProductRepository is a mock implementation of ProductRepository.
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateStock(ctx context.Context, id uint, newStock int) error {
	args := m.Called(ctx, id, newStock)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Search(ctx context.Context, query string) ([]model.Product, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockProductRepository) Filter(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

// MockCartRepository is a mock implementation of CartRepository. Its
// WithTransaction runs the callback against the mocks themselves, so tests
// observe exactly the writes the transaction would carry.
type MockCartRepository struct {
	mock.Mock
	products *MockProductRepository
}

func (m *MockCartRepository) Create(ctx context.Context, item *model.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartRepository) UpdateQuantity(ctx context.Context, id uint, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockCartRepository) FindByUserAndProduct(ctx context.Context, userID, productID uint) (*model.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.CartItem, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CartItem), args.Error(1)
}

func (m *MockCartRepository) ListByUser(ctx context.Context, userID uint) ([]model.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CartItem), args.Error(1)
}

func (m *MockCartRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) DeleteByUser(ctx context.Context, userID uint) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockCartRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, cart repository.CartRepository, products repository.ProductRepository) error) error {
	return fn(ctx, m, m.products)
}

func TestCartService_Add_NewRow(t *testing.T) {
	products := new(MockProductRepository)
	cart := &MockCartRepository{products: products}

	products.On("FindByIDForUpdate", mock.Anything, uint(10)).
		Return(&model.Product{ID: 10, Stock: 10}, nil)
	cart.On("FindByUserAndProduct", mock.Anything, uint(1), uint(10)).
		Return(nil, gorm.ErrRecordNotFound)
	cart.On("Create", mock.Anything, mock.AnythingOfType("*model.CartItem")).Return(nil)
	products.On("UpdateStock", mock.Anything, uint(10), 7).Return(nil)

	svc := NewCartService(cart, products, nil)
	item, err := svc.Add(context.Background(), 1, 10, 3)

	assert.NoError(t, err)
	assert.Equal(t, uint(1), item.UserID)
	assert.Equal(t, uint(10), item.ProductID)
	assert.Equal(t, 3, item.Quantity)
	cart.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestCartService_Add_IncrementsExistingRow(t *testing.T) {
	products := new(MockProductRepository)
	cart := &MockCartRepository{products: products}

	products.On("FindByIDForUpdate", mock.Anything, uint(10)).
		Return(&model.Product{ID: 10, Stock: 7}, nil)
	cart.On("FindByUserAndProduct", mock.Anything, uint(1), uint(10)).
		Return(&model.CartItem{ID: 4, UserID: 1, ProductID: 10, Quantity: 3}, nil)
	cart.On("UpdateQuantity", mock.Anything, uint(4), 5).Return(nil)
	products.On("UpdateStock", mock.Anything, uint(10), 5).Return(nil)

	svc := NewCartService(cart, products, nil)
	item, err := svc.Add(context.Background(), 1, 10, 2)

	assert.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	cart.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cart.AssertExpectations(t)
	products.AssertExpectations(t)
}

func TestCartService_Add_InsufficientStock(t *testing.T) {
	products := new(MockProductRepository)
	cart := &MockCartRepository{products: products}

	products.On("FindByIDForUpdate", mock.Anything, uint(10)).
		Return(&model.Product{ID: 10, Stock: 2}, nil)

	svc := NewCartService(cart, products, nil)
	item, err := svc.Add(context.Background(), 1, 10, 3)

	assert.ErrorIs(t, err, errors.ErrInsufficientStock)
	assert.Nil(t, item)
	// No writes at all when stock is insufficient.
	cart.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	cart.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_Add_ProductNotFound(t *testing.T) {
	products := new(MockProductRepository)
	cart := &MockCartRepository{products: products}

	products.On("FindByIDForUpdate", mock.Anything, uint(99)).
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewCartService(cart, products, nil)
	_, err := svc.Add(context.Background(), 1, 99, 1)

	assert.ErrorIs(t, err, errors.ErrProductNotFound)
	cart.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCartService_View_ProjectsProductSubset(t *testing.T) {
	products := new(MockProductRepository)
	cart := &MockCartRepository{products: products}

	cart.On("ListByUser", mock.Anything, uint(1)).Return([]model.CartItem{
		{
			ID:       4,
			Quantity: 2,
			Product: model.Product{
				ID:          10,
				Name:        "Wireless Mouse",
				Description: "Ergonomic mouse",
				Price:       decimal.NewFromFloat(24.99),
				Category:    "electronics",
				Stock:       55,
			},
		},
	}, nil)

	svc := NewCartService(cart, products, nil)
	entries, err := svc.View(context.Background(), 1)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, uint(4), entries[0].ID)
	assert.Equal(t, 2, entries[0].Quantity)
	assert.Equal(t, "Wireless Mouse", entries[0].Product.Name)
	assert.Equal(t, "electronics", entries[0].Product.Category)
}

func TestCartService_UpdateItem(t *testing.T) {
	products := new(MockProductRepository)
	cart := &MockCartRepository{products: products}

	cart.On("FindByIDAndUser", mock.Anything, uint(4), uint(1)).
		Return(&model.CartItem{ID: 4, UserID: 1, ProductID: 10, Quantity: 2}, nil)
	// Quantity is overwritten absolutely, with no stock check.
	cart.On("UpdateQuantity", mock.Anything, uint(4), 999).Return(nil)

	svc := NewCartService(cart, products, nil)
	item, err := svc.UpdateItem(context.Background(), 1, 4, 999)

	assert.NoError(t, err)
	assert.Equal(t, 999, item.Quantity)
	products.AssertNotCalled(t, "FindByIDForUpdate", mock.Anything, mock.Anything)
	products.AssertNotCalled(t, "UpdateStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_UpdateItem_NotOwned(t *testing.T) {
	products := new(MockProductRepository)
	cart := &MockCartRepository{products: products}

	cart.On("FindByIDAndUser", mock.Anything, uint(4), uint(2)).
		Return(nil, gorm.ErrRecordNotFound)

	svc := NewCartService(cart, products, nil)
	_, err := svc.UpdateItem(context.Background(), 2, 4, 1)

	assert.ErrorIs(t, err, errors.ErrCartItemNotFound)
	cart.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
}
