package handlers

import (
	"net/http"
	"strconv"

	"cafeteria/internal/forms"
	"cafeteria/internal/metrics"
	"cafeteria/internal/models"
	"cafeteria/internal/services"

	"github.com/gin-gonic/gin"
)

const (
	msgProductAdded = "Product added successfully!"
	msgOrderUpdated = "Order updated!"
)

// AdminHandler serves the routes behind middleware.RequireAdmin.
type AdminHandler struct {
	productService services.ProductService
	orderService   services.OrderService
	pages          *Pages
	metrics        *metrics.Metrics
}

func NewAdminHandler(
	productService services.ProductService,
	orderService services.OrderService,
	pages *Pages,
	m *metrics.Metrics,
) *AdminHandler {
	return &AdminHandler{
		productService: productService,
		orderService:   orderService,
		pages:          pages,
		metrics:        m,
	}
}

func (h *AdminHandler) ShowAddProduct(c *gin.Context) {
	h.renderProductForm(c, &forms.ProductForm{}, nil)
}

func (h *AdminHandler) AddProduct(c *gin.Context) {
	var form forms.ProductForm
	if errs := forms.Bind(c, &form); errs != nil {
		h.renderProductForm(c, &form, errs)
		return
	}

	if _, err := h.productService.CreateProduct(c.Request.Context(), form.Name, form.PriceValue, form.Category, form.Image); err != nil {
		h.pages.Error(c, err)
		return
	}

	h.pages.Flash(c, msgProductAdded)
	redirect(c, "/")
}

func (h *AdminHandler) renderProductForm(c *gin.Context, form *forms.ProductForm, errs forms.Errors) {
	h.pages.Render(c, http.StatusOK, "add_product.html", "Add product", gin.H{
		"Form":       form,
		"Errors":     errs,
		"Categories": models.Categories,
	})
}

// ListOrders shows every order in the system, newest first.
func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders(c.Request.Context())
	if err != nil {
		h.pages.Error(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "admin_orders.html", "All orders", gin.H{
		"Orders":       orders,
		"ShowCustomer": true,
		"ShowActions":  true,
	})
}

// CompleteOrder marks an order completed. Repeating it is harmless.
func (h *AdminHandler) CompleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		h.pages.Error(c, services.ErrOrderNotFound)
		return
	}

	if _, err := h.orderService.CompleteOrder(c.Request.Context(), uint(id)); err != nil {
		h.pages.Error(c, err)
		return
	}

	h.metrics.OrdersCompleted.Inc()
	h.pages.Flash(c, msgOrderUpdated)
	redirect(c, "/admin/orders")
}
