package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID        uint            `json:"id" gorm:"primaryKey"`
	Name      string          `json:"name" gorm:"size:100;not null"`
	Price     decimal.Decimal `json:"price" gorm:"type:numeric(10,2);not null"`
	Category  string          `json:"category" gorm:"size:50;not null;index"` // Food, Drink
	Image     string          `json:"image" gorm:"size:200"`
	CreatedAt time.Time       `json:"created_at"`
}

type ProductCategory string

const (
	CategoryFood  ProductCategory = "Food"
	CategoryDrink ProductCategory = "Drink"
)

// Categories is the closed set a product may belong to, in display order.
var Categories = []ProductCategory{CategoryFood, CategoryDrink}

func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if string(c) == category {
			return true
		}
	}
	return false
}
