package handlers

import (
	"errors"
	"net/http"

	"cafeteria/internal/forms"
	"cafeteria/internal/metrics"
	"cafeteria/internal/middleware"
	"cafeteria/internal/services"

	"github.com/gin-gonic/gin"
)

const msgOrderPlaced = "Order placed successfully!"

type OrderHandler struct {
	orderService   services.OrderService
	productService services.ProductService
	pages          *Pages
	metrics        *metrics.Metrics
}

func NewOrderHandler(
	orderService services.OrderService,
	productService services.ProductService,
	pages *Pages,
	m *metrics.Metrics,
) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		productService: productService,
		pages:          pages,
		metrics:        m,
	}
}

// ShowOrderForm preselects ?product_id= when the visitor came from the menu.
func (h *OrderHandler) ShowOrderForm(c *gin.Context) {
	form := &forms.OrderForm{ProductID: c.Query("product_id"), Quantity: "1"}
	h.renderOrderForm(c, form, nil)
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var form forms.OrderForm
	if errs := forms.Bind(c, &form); errs != nil {
		h.renderOrderForm(c, &form, errs)
		return
	}

	userID, _ := middleware.CurrentUserID(c)
	_, err := h.orderService.PlaceOrder(c.Request.Context(), userID, form.ProductIDValue, form.QuantityValue)
	if errors.Is(err, services.ErrProductNotFound) {
		h.renderOrderForm(c, &form, forms.Errors{"product_id": "Choose a product from the list."})
		return
	}
	if err != nil {
		h.pages.Error(c, err)
		return
	}

	h.metrics.OrdersPlaced.Inc()
	h.pages.Flash(c, msgOrderPlaced)
	redirect(c, "/dashboard")
}

func (h *OrderHandler) renderOrderForm(c *gin.Context, form *forms.OrderForm, errs forms.Errors) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		h.pages.Error(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "order.html", "Place an order", gin.H{
		"Form":     form,
		"Errors":   errs,
		"Products": products,
	})
}

// Dashboard lists the current user's own orders.
func (h *OrderHandler) Dashboard(c *gin.Context) {
	userID, _ := middleware.CurrentUserID(c)
	orders, err := h.orderService.GetOrdersByUser(c.Request.Context(), userID)
	if err != nil {
		h.pages.Error(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "dashboard.html", "My orders", gin.H{"Orders": orders})
}
