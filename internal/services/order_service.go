package services

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, userID, productID uint, quantity int) (*models.Order, error)
	GetOrderByID(ctx context.Context, id uint) (*models.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error)
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	CompleteOrder(ctx context.Context, id uint) (*models.Order, error)
	GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	orderItemRepo repository.OrderItemRepository
	productRepo   repository.ProductRepository
}

func NewOrderService(orderRepo repository.OrderRepository, orderItemRepo repository.OrderItemRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{orderRepo: orderRepo, orderItemRepo: orderItemRepo, productRepo: productRepo}
}

// PlaceOrder creates a pending order with a single line. The total is the
// product's current price times quantity and is never recomputed.
func (s *orderService) PlaceOrder(ctx context.Context, userID, productID uint, quantity int) (*models.Order, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	order := &models.Order{
		UserID:     userID,
		TotalPrice: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
		Status:     string(models.OrderPending),
		Items: []models.OrderItem{
			{ProductID: product.ID, Quantity: quantity},
		},
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	order.Items[0].Product = *product
	return order, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if isRecordNotFound(err) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (s *orderService) GetOrdersByUser(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// CompleteOrder moves an order to Completed. Completing a completed order is
// a no-op.
func (s *orderService) CompleteOrder(ctx context.Context, id uint) (*models.Order, error) {
	order, err := s.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsCompleted() {
		return order, nil
	}

	if err := s.orderRepo.UpdateStatus(ctx, id, models.OrderCompleted); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	order.Status = string(models.OrderCompleted)
	return order, nil
}

func (s *orderService) GetOrderItems(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	items, err := s.orderItemRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}
