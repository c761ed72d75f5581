package handlers

import (
	"net/http"

	"cafeteria/internal/forms"
	"cafeteria/internal/models"
	"cafeteria/internal/services"

	"github.com/gin-gonic/gin"
)

type CatalogHandler struct {
	productService services.ProductService
	pages          *Pages
}

func NewCatalogHandler(productService services.ProductService, pages *Pages) *CatalogHandler {
	return &CatalogHandler{
		productService: productService,
		pages:          pages,
	}
}

// Index lists the whole catalog.
func (h *CatalogHandler) Index(c *gin.Context) {
	products, err := h.productService.ListProducts(c.Request.Context())
	if err != nil {
		h.pages.Error(c, err)
		return
	}
	h.pages.Render(c, http.StatusOK, "index.html", "Menu", gin.H{"Products": products})
}

// Search filters by name substring and exact category. Both come from the
// form body on POST and from the query string on GET; blank means no filter.
func (h *CatalogHandler) Search(c *gin.Context) {
	var form forms.SearchForm
	forms.Bind(c, &form)

	products, err := h.productService.SearchProducts(c.Request.Context(), form.Query, form.Category)
	if err != nil {
		h.pages.Error(c, err)
		return
	}

	h.pages.Render(c, http.StatusOK, "search.html", "Search", gin.H{
		"Form":       &form,
		"Products":   products,
		"Categories": models.Categories,
	})
}
