package service

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"minimart/internal/errors"
	"minimart/internal/model"
	"minimart/internal/repository"
)

// OrderService exposes order operations. The admin-wide operations are
// guarded at the routing layer.
type OrderService interface {
	Create(ctx context.Context, userID uint) (*model.Order, error)
	List(ctx context.Context, userID uint, statusFilter string) ([]model.Order, error)
	Get(ctx context.Context, userID, orderID uint) (*model.Order, error)
	Cancel(ctx context.Context, userID, orderID uint) error
	ListAll(ctx context.Context) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error)
}

type orderService struct {
	orderRepo repository.OrderRepository
	cartRepo  repository.CartRepository
}

// NewOrderService builds an OrderService.
func NewOrderService(orderRepo repository.OrderRepository, cartRepo repository.CartRepository) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// Create snapshots the intent to purchase: a PENDING order is created and
// the cart is cleared, both in one transaction. No line items are copied, so
// the order keeps no record of the products it covered.
func (s *orderService) Create(ctx context.Context, userID uint) (*model.Order, error) {
	var result *model.Order

	err := s.orderRepo.WithTransaction(ctx, func(ctx context.Context, orders repository.OrderRepository, cart repository.CartRepository) error {
		count, err := cart.CountByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("count cart items: %w", err)
		}
		if count == 0 {
			return errors.ErrEmptyCart
		}

		order := &model.Order{
			UserID: userID,
			Status: model.OrderStatusPending,
		}
		if err := orders.Create(ctx, order); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		if err := cart.DeleteByUser(ctx, userID); err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List returns the caller's orders. The status filter is uppercased and only
// PENDING and COMPLETED are honored; anything else means no filter.
func (s *orderService) List(ctx context.Context, userID uint, statusFilter string) ([]model.Order, error) {
	var status *model.OrderStatus
	switch candidate := model.OrderStatus(strings.ToUpper(statusFilter)); candidate {
	case model.OrderStatusPending, model.OrderStatusCompleted:
		status = &candidate
	}

	orders, err := s.orderRepo.ListByUser(ctx, userID, status)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns the caller's own order. A missing order and someone else's
// order produce the same not-found error.
func (s *orderService) Get(ctx context.Context, userID, orderID uint) (*model.Order, error) {
	order, err := s.orderRepo.FindByIDAndUser(ctx, orderID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return order, nil
}

// Cancel deletes the caller's own order. Product stock is not restored.
func (s *orderService) Cancel(ctx context.Context, userID, orderID uint) error {
	affected, err := s.orderRepo.DeleteByIDAndUser(ctx, orderID, userID)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if affected == 0 {
		return errors.ErrOrderNotFound
	}
	return nil
}

func (s *orderService) ListAll(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus overwrites the status unconditionally. There is no transition
// guard, so COMPLETED orders may move back to PENDING.
func (s *orderService) UpdateStatus(ctx context.Context, orderID uint, status model.OrderStatus) (*model.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	order.Status = status
	return order, nil
}
