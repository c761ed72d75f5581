package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"not null;index"`
	User       User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TotalPrice decimal.Decimal `json:"total_price" gorm:"type:numeric(12,2);not null"` // frozen at creation
	Status     string          `json:"status" gorm:"size:20;not null;default:'Pending'"`
	Items      []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
)

func (o *Order) IsCompleted() bool {
	return o.Status == string(OrderCompleted)
}
