package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"minimart/internal/cache"
	"minimart/internal/errors"
	"minimart/internal/model"
	"minimart/internal/repository"
)

// ProductService exposes catalog operations, including the review sub-resource.
type ProductService interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	Update(ctx context.Context, id uint, product *model.Product) (*model.Product, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*model.Product, error)
	List(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	Filter(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error)

	AddReview(ctx context.Context, productID, userID uint, rating int, comment string) (*model.Review, error)
	ListReviews(ctx context.Context, productID uint) ([]model.Review, error)
	DeleteReview(ctx context.Context, reviewID uint) error
}

type productService struct {
	productRepo repository.ProductRepository
	reviewRepo  repository.ReviewRepository
	cache       *cache.Client
}

// NewProductService builds a ProductService with repositories and cache.
func NewProductService(productRepo repository.ProductRepository, reviewRepo repository.ReviewRepository, cache *cache.Client) ProductService {
	return &productService{
		productRepo: productRepo,
		reviewRepo:  reviewRepo,
		cache:       cache,
	}
}

func (s *productService) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

// Update overwrites the writable fields of an existing product.
func (s *productService) Update(ctx context.Context, id uint, product *model.Product) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Category = product.Category
	existing.Stock = product.Stock

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	s.cache.InvalidateProduct(ctx, id)
	return existing, nil
}

func (s *productService) Delete(ctx context.Context, id uint) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrProductNotFound
		}
		return fmt.Errorf("find product: %w", err)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}

	s.cache.InvalidateProduct(ctx, id)
	return nil
}

// GetByID serves from the redis read cache when warm. Stock mutations from
// cart adds invalidate the cached entry.
func (s *productService) GetByID(ctx context.Context, id uint) (*model.Product, error) {
	if cached := s.cache.GetProduct(ctx, id); cached != nil {
		return cached, nil
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	s.cache.SetProduct(ctx, product)
	return product, nil
}

func (s *productService) List(ctx context.Context) ([]model.Product, error) {
	return s.productRepo.List(ctx)
}

func (s *productService) Search(ctx context.Context, query string) ([]model.Product, error) {
	return s.productRepo.Search(ctx, query)
}

func (s *productService) Filter(ctx context.Context, filter repository.ProductFilter) ([]model.Product, error) {
	return s.productRepo.Filter(ctx, filter)
}

// AddReview attaches a review to a product. Users may review the same
// product any number of times.
func (s *productService) AddReview(ctx context.Context, productID, userID uint, rating int, comment string) (*model.Review, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrProductNotFound
		}
		return nil, fmt.Errorf("find product: %w", err)
	}

	review := &model.Review{
		ProductID: productID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return review, nil
}

func (s *productService) ListReviews(ctx context.Context, productID uint) ([]model.Review, error) {
	return s.reviewRepo.ListByProduct(ctx, productID)
}

func (s *productService) DeleteReview(ctx context.Context, reviewID uint) error {
	if _, err := s.reviewRepo.FindByID(ctx, reviewID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrReviewNotFound
		}
		return fmt.Errorf("find review: %w", err)
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	return nil
}
