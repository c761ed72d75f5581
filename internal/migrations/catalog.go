package migrations

import (
	"cafeteria/internal/models"

	"github.com/shopspring/decimal"
)

func product(name string, price int64, category models.ProductCategory, image string) models.Product {
	return models.Product{
		Name:     name,
		Price:    decimal.NewFromInt(price),
		Category: string(category),
		Image:    "https://images.unsplash.com/" + image + "?ixlib=rb-4.0.3&auto=format&fit=crop&w=500&q=80",
	}
}

// DefaultCatalog is inserted on first boot when the products table is empty.
func DefaultCatalog() []models.Product {
	return []models.Product{
		product("American Breakfast", 150, models.CategoryFood, "photo-1528137878665-60b3f4f5ce4b"),
		product("Crispy Chicken", 100, models.CategoryFood, "photo-1567620905732-2d1ec7ab7445"),
		product("French Fries", 50, models.CategoryFood, "photo-1532136647-8ec7e5d8d5d3"),
		product("Kung Pao Chicken", 120, models.CategoryFood, "photo-1603360946369-dc9bb6258143"),
		product("Smoky Snack", 80, models.CategoryFood, "photo-1555939594-58056f625634"),
		product("Bhutanese Veg", 90, models.CategoryFood, "photo-1512621776951-a57141f2eefd"),
		product("Chicken Nuggets", 70, models.CategoryFood, "photo-1571091718767-18b5b1457add"),
		product("Chalupas", 110, models.CategoryFood, "photo-1579586141497-7f2568aa3e0c"),
		product("French Fries Supreme", 60, models.CategoryFood, "photo-1532136647-8ec7e5d8d5d3"),
		product("Chalupa Supreme", 130, models.CategoryFood, "photo-1571091718767-18b5b1457add"),
		product("Wisconsin Cheese", 95, models.CategoryFood, "photo-1542994980-2e8fc9a1c5b9"),
		product("Sandwich", 75, models.CategoryFood, "photo-1559056199-641a0ac8b55a"),
		product("Baconator", 140, models.CategoryFood, "photo-1579586141497-7f2568aa3e0c"),
		product("Pepperoni Pizza", 150, models.CategoryFood, "photo-1513104890138-7c749659a591"),
		product("Hot Coffee", 30, models.CategoryDrink, "photo-1494314671902-399b181aab93"),
		product("Iced Tea", 25, models.CategoryDrink, "photo-1512568400610-3f3f73bfed6b"),
		product("Green Tea", 20, models.CategoryDrink, "photo-1576092768241-dec231879fc3"),
		product("Espresso", 40, models.CategoryDrink, "photo-1494314671902-399b181aab93"),
	}
}
