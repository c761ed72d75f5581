// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"html/template"

	"cafeteria/internal/models"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.html
var files embed.FS

// Templates parses every page. Pages share the "header" and "footer"
// blocks from layout.html.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"price":     FormatPrice,
		"lineTotal": LineTotal,
	}
}

// FormatPrice renders an amount with exactly two decimals.
func FormatPrice(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func LineTotal(item models.OrderItem) decimal.Decimal {
	return item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}
