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
)

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) Create(ctx context.Context, review *model.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) FindByID(ctx context.Context, id uint) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewRepository) ListByProduct(ctx context.Context, productID uint) ([]model.Review, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestProductService_Update(t *testing.T) {
	t.Run("overwrites fields of an existing product", func(t *testing.T) {
		products := new(MockProductRepository)
		reviews := new(MockReviewRepository)

		products.On("FindByID", mock.Anything, uint(10)).Return(&model.Product{
			ID:       10,
			Name:     "Old name",
			Category: "misc",
			Stock:    1,
		}, nil)
		products.On("Update", mock.Anything, mock.AnythingOfType("*model.Product")).Return(nil)

		svc := NewProductService(products, reviews, nil)
		updated, err := svc.Update(context.Background(), 10, &model.Product{
			Name:        "New name",
			Description: "New description",
			Price:       decimal.NewFromFloat(12.50),
			Category:    "electronics",
			Stock:       7,
		})

		assert.NoError(t, err)
		assert.Equal(t, uint(10), updated.ID)
		assert.Equal(t, "New name", updated.Name)
		assert.Equal(t, "electronics", updated.Category)
		assert.Equal(t, 7, updated.Stock)
		products.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		products := new(MockProductRepository)
		reviews := new(MockReviewRepository)
		products.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProductService(products, reviews, nil)
		_, err := svc.Update(context.Background(), 99, &model.Product{})

		assert.ErrorIs(t, err, errors.ErrProductNotFound)
		products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestProductService_Delete_MissingProduct(t *testing.T) {
	products := new(MockProductRepository)
	reviews := new(MockReviewRepository)
	products.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewProductService(products, reviews, nil)
	err := svc.Delete(context.Background(), 99)

	assert.ErrorIs(t, err, errors.ErrProductNotFound)
	products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestProductService_GetByID_MissingProduct(t *testing.T) {
	products := new(MockProductRepository)
	reviews := new(MockReviewRepository)
	products.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewProductService(products, reviews, nil)
	_, err := svc.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, errors.ErrProductNotFound)
}

func TestProductService_AddReview(t *testing.T) {
	t.Run("attaches review to existing product", func(t *testing.T) {
		products := new(MockProductRepository)
		reviews := new(MockReviewRepository)

		products.On("FindByID", mock.Anything, uint(10)).Return(&model.Product{ID: 10}, nil)
		reviews.On("Create", mock.Anything, mock.AnythingOfType("*model.Review")).Return(nil)

		svc := NewProductService(products, reviews, nil)
		review, err := svc.AddReview(context.Background(), 10, 1, 5, "great mouse")

		assert.NoError(t, err)
		assert.Equal(t, uint(10), review.ProductID)
		assert.Equal(t, uint(1), review.UserID)
		assert.Equal(t, 5, review.Rating)
		reviews.AssertExpectations(t)
	})

	t.Run("missing product", func(t *testing.T) {
		products := new(MockProductRepository)
		reviews := new(MockReviewRepository)
		products.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewProductService(products, reviews, nil)
		_, err := svc.AddReview(context.Background(), 99, 1, 5, "no such product")

		assert.ErrorIs(t, err, errors.ErrProductNotFound)
		reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestProductService_DeleteReview_Missing(t *testing.T) {
	products := new(MockProductRepository)
	reviews := new(MockReviewRepository)
	reviews.On("FindByID", mock.Anything, uint(77)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewProductService(products, reviews, nil)
	err := svc.DeleteReview(context.Background(), 77)

	assert.ErrorIs(t, err, errors.ErrReviewNotFound)
	reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
