package handlers

import (
	"html/template"
	"net/http"
	"time"

	"cafeteria/internal/metrics"
	"cafeteria/internal/middleware"
	"cafeteria/internal/services"
	"cafeteria/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// RouterConfig carries everything the HTTP layer depends on.
type RouterConfig struct {
	UserService    services.UserService
	ProductService services.ProductService
	OrderService   services.OrderService
	Sessions       *session.Manager
	Metrics        *metrics.Metrics
	Templates      *template.Template
	Logger         logrus.FieldLogger
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	pages := NewPages(cfg.Sessions, cfg.Logger)

	authHandler := NewAuthHandler(cfg.UserService, cfg.Sessions, pages, cfg.Metrics)
	catalogHandler := NewCatalogHandler(cfg.ProductService, pages)
	orderHandler := NewOrderHandler(cfg.OrderService, cfg.ProductService, pages, cfg.Metrics)
	adminHandler := NewAdminHandler(cfg.ProductService, cfg.OrderService, pages, cfg.Metrics)

	router := gin.New()
	router.SetHTMLTemplate(cfg.Templates)
	router.Use(
		cfg.Metrics.Middleware(),
		middleware.Logger(cfg.Logger),
		middleware.Recovery(cfg.Logger, pages.InternalError),
		middleware.Timeout(cfg.RequestTimeout),
	)
	router.NoRoute(pages.NotFound)

	// Operational endpoints
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"alive": true})
	})
	router.GET("/metrics", cfg.Metrics.Handler())

	// Public pages
	router.GET("/", catalogHandler.Index)
	router.GET("/search", catalogHandler.Search)
	router.POST("/search", catalogHandler.Search)
	router.GET("/register", authHandler.ShowRegister)
	router.POST("/register", authHandler.Register)
	router.GET("/login", authHandler.ShowLogin)
	router.POST("/login", authHandler.Login)

	// Logged-in users
	authed := router.Group("/", middleware.RequireAuth(cfg.Sessions, cfg.UserService, pages.InternalError))
	{
		authed.GET("/logout", authHandler.Logout)
		authed.GET("/dashboard", orderHandler.Dashboard)
		authed.GET("/order", orderHandler.ShowOrderForm)
		authed.POST("/order", orderHandler.PlaceOrder)
	}

	// Admins only
	admin := authed.Group("/admin", middleware.RequireAdmin(pages.Forbidden))
	{
		admin.GET("/products", adminHandler.ShowAddProduct)
		admin.POST("/products", adminHandler.AddProduct)
		admin.GET("/orders", adminHandler.ListOrders)
		admin.POST("/orders/:id/complete", adminHandler.CompleteOrder)
	}

	return router
}
