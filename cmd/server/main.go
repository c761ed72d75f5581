package main

import (
	"cafeteria/internal/config"
	"cafeteria/internal/database"
	"cafeteria/internal/handlers"
	"cafeteria/internal/logging"
	"cafeteria/internal/metrics"
	"cafeteria/internal/migrations"
	"cafeteria/internal/redis"
	"cafeteria/internal/repository"
	"cafeteria/internal/services"
	"cafeteria/internal/session"
	"cafeteria/internal/web"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	ctx := context.Background()
	if err := migrations.RunMigrations(ctx, db, migrations.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	}, log); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	// Initialize session store
	store, closeStore := newSessionStore(ctx, cfg, log)
	defer closeStore()

	sessions := session.NewManager(store, session.Options{
		CookieName: cfg.SessionCookie,
		Secret:     cfg.SecretKey,
		TTL:        cfg.SessionTTL(),
		Secure:     cfg.CookieSecure,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderItemRepo := repository.NewOrderItemRepository(db)

	// Initialize services
	userService := services.NewUserService(userRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, orderItemRepo, productRepo)

	templates, err := web.Templates()
	if err != nil {
		log.WithError(err).Fatal("Failed to parse templates")
	}

	// Setup routes
	router := handlers.NewRouter(handlers.RouterConfig{
		UserService:    userService,
		ProductService: productService,
		OrderService:   orderService,
		Sessions:       sessions,
		Metrics:        metrics.New(),
		Templates:      templates,
		Logger:         log,
		RequestTimeout: cfg.RequestTimeoutDuration(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       cfg.RequestTimeoutDuration() + readHeaderTimeout,
		WriteTimeout:      cfg.RequestTimeoutDuration() + readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	// Start server
	go func() {
		log.WithField("port", cfg.ServerPort).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeoutDuration())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.WithError(err).Error("Failed to close database connection")
		}
	}
	log.Info("Server stopped")
}

// newSessionStore picks Redis or the in-process store from SESSION_STORE.
func newSessionStore(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (session.Store, func()) {
	if cfg.SessionStore == "memory" {
		log.Warn("Using in-memory sessions; logins are lost on restart")
		return session.NewMemoryStore(), func() {}
	}

	redisClient, err := redis.Initialize(ctx, cfg.RedisURL)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to Redis")
	}
	return redisClient, func() {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Error("Failed to close Redis connection")
		}
	}
}
