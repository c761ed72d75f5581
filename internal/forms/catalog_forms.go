package forms

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type ProductForm struct {
	Name     string `form:"name" binding:"required,max=100"`
	Price    string `form:"price" binding:"required,numeric"`
	Category string `form:"category" binding:"required,oneof=Food Drink"`
	Image    string `form:"image" binding:"omitempty,url,max=200"`

	PriceValue decimal.Decimal `form:"-"`
}

func (f *ProductForm) Clean(errs Errors) {
	f.Name = strings.TrimSpace(f.Name)
	if f.Name == "" && !errs.Has("name") {
		errs.Add("name", "Name is required.")
	}
	if f.Image != "" && !errs.Has("image") {
		scheme := strings.ToLower(strings.SplitN(f.Image, ":", 2)[0])
		if scheme != "http" && scheme != "https" {
			errs.Add("image", "Image must be an http or https URL.")
		}
	}
	if errs.Has("price") {
		return
	}

	price, err := decimal.NewFromString(strings.TrimSpace(f.Price))
	if err != nil {
		errs.Add("price", "Price must be a number.")
		return
	}
	if !price.IsPositive() {
		errs.Add("price", "Price must be greater than 0.")
		return
	}
	if !price.Equal(price.Round(2)) {
		errs.Add("price", "Price can have at most 2 decimal places.")
		return
	}
	f.PriceValue = price
}

// OrderForm carries raw strings so a bad value is reported as a field
// error instead of a binding failure.
type OrderForm struct {
	ProductID string `form:"product_id" binding:"required,number"`
	Quantity  string `form:"quantity" binding:"required,number"`

	ProductIDValue uint `form:"-"`
	QuantityValue  int  `form:"-"`
}

func (f *OrderForm) Clean(errs Errors) {
	if !errs.Has("product_id") {
		id, err := strconv.ParseUint(f.ProductID, 10, 0)
		if err != nil || id == 0 {
			errs.Add("product_id", "Choose a product from the list.")
		} else {
			f.ProductIDValue = uint(id)
		}
	}

	if !errs.Has("quantity") {
		qty, err := strconv.Atoi(f.Quantity)
		if err != nil || qty < 1 {
			errs.Add("quantity", "Quantity must be at least 1.")
		} else {
			f.QuantityValue = qty
		}
	}
}

// SearchForm never fails: empty fields mean "no filter".
type SearchForm struct {
	Query    string `form:"query"`
	Category string `form:"category"`
}

func (f *SearchForm) Clean(errs Errors) {
	f.Query = strings.TrimSpace(f.Query)
	f.Category = strings.TrimSpace(f.Category)
}
