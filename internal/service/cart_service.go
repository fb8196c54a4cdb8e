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

// CartEntry is a cart row joined with the cart-facing product projection.
type CartEntry struct {
	ID       uint                 `json:"id"`
	Quantity int                  `json:"quantity"`
	Product  model.ProductSummary `json:"product"`
}

// CartService exposes cart operations for the authenticated user.
type CartService interface {
	Add(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, error)
	View(ctx context.Context, userID uint) ([]CartEntry, error)
	UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error)
}

type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	cache       *cache.Client
}

// NewCartService builds a CartService.
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, cache *cache.Client) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		cache:       cache,
	}
}

// Add places quantity units of a product into the user's cart and decrements
// the product stock by the same amount. The upsert and the stock decrement
// run in one transaction with the product row locked, so concurrent adds for
// the same product cannot oversell and a failure leaves both tables untouched.
func (s *cartService) Add(ctx context.Context, userID, productID uint, quantity int) (*model.CartItem, error) {
	var result *model.CartItem

	err := s.cartRepo.WithTransaction(ctx, func(ctx context.Context, cart repository.CartRepository, products repository.ProductRepository) error {
		product, err := products.FindByIDForUpdate(ctx, productID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrProductNotFound
			}
			return fmt.Errorf("find product: %w", err)
		}

		if quantity > product.Stock {
			return errors.ErrInsufficientStock
		}

		item, err := cart.FindByUserAndProduct(ctx, userID, productID)
		switch {
		case err == nil:
			item.Quantity += quantity
			if err := cart.UpdateQuantity(ctx, item.ID, item.Quantity); err != nil {
				return fmt.Errorf("update cart item: %w", err)
			}
		case err == gorm.ErrRecordNotFound:
			item = &model.CartItem{
				UserID:    userID,
				ProductID: productID,
				Quantity:  quantity,
			}
			if err := cart.Create(ctx, item); err != nil {
				return fmt.Errorf("create cart item: %w", err)
			}
		default:
			return fmt.Errorf("find cart item: %w", err)
		}

		if err := products.UpdateStock(ctx, productID, product.Stock-quantity); err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}

		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateProduct(ctx, productID)
	return result, nil
}

// View returns the user's cart rows joined with a subset of product fields.
// Stock and reviews are excluded from the projection.
func (s *cartService) View(ctx context.Context, userID uint) ([]CartEntry, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}

	entries := make([]CartEntry, 0, len(items))
	for _, item := range items {
		entries = append(entries, CartEntry{
			ID:       item.ID,
			Quantity: item.Quantity,
			Product:  item.Product.Summary(),
		})
	}
	return entries, nil
}

// UpdateItem overwrites the quantity of the caller's own cart row. Unlike
// Add, the new quantity is not checked against product stock.
func (s *cartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*model.CartItem, error) {
	item, err := s.cartRepo.FindByIDAndUser(ctx, itemID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCartItemNotFound
		}
		return nil, fmt.Errorf("find cart item: %w", err)
	}

	item.Quantity = quantity
	if err := s.cartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, fmt.Errorf("update cart item: %w", err)
	}
	return item, nil
}
