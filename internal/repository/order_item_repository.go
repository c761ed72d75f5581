package repository

import (
	"cafeteria/internal/models"
	"context"

	"gorm.io/gorm"
)

// OrderItemRepository has no update or delete: items are immutable and live
// as long as their order.
type OrderItemRepository interface {
	Create(ctx context.Context, orderItem *models.OrderItem) error
	GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error)
}

type orderItemRepository struct {
	db *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &orderItemRepository{db: db}
}

func (r *orderItemRepository) Create(ctx context.Context, orderItem *models.OrderItem) error {
	return r.db.WithContext(ctx).Omit("Product").Create(orderItem).Error
}

func (r *orderItemRepository) GetByOrderID(ctx context.Context, orderID uint) ([]models.OrderItem, error) {
	var orderItems []models.OrderItem
	err := r.db.WithContext(ctx).Preload("Product").Where("order_id = ?", orderID).Order("id").Find(&orderItems).Error
	if err != nil {
		return nil, err
	}
	return orderItems, nil
}
