package migrations

import (
	"cafeteria/internal/models"
	"cafeteria/internal/repository"
	"cafeteria/internal/services"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Options controls the default data created after the schema is migrated.
type Options struct {
	AdminUsername string
	AdminPassword string
}

// RunMigrations creates or updates the schema and inserts default data.
// Existing rows are never dropped.
func RunMigrations(ctx context.Context, db *gorm.DB, opts Options, log logrus.FieldLogger) error {
	log.Info("Running database migrations...")

	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	if err := createDefaultData(ctx, db, opts, log); err != nil {
		return err
	}

	log.Info("Database migrations completed successfully")
	return nil
}

// createDefaultData seeds the catalog and the admin account
func createDefaultData(ctx context.Context, db *gorm.DB, opts Options, log logrus.FieldLogger) error {
	productService := services.NewProductService(repository.NewProductRepository(db))
	userService := services.NewUserService(repository.NewUserRepository(db))

	inserted, err := productService.SeedCatalog(ctx, DefaultCatalog())
	if err != nil {
		return err
	}
	if inserted > 0 {
		log.WithField("count", inserted).Info("Default products added")
	}

	return ensureAdmin(ctx, userService, opts, log)
}

func ensureAdmin(ctx context.Context, userService services.UserService, opts Options, log logrus.FieldLogger) error {
	if opts.AdminUsername == "" || opts.AdminPassword == "" {
		log.Debug("No admin credentials configured, skipping admin bootstrap")
		return nil
	}

	existing, err := userService.GetUserByUsername(ctx, opts.AdminUsername)
	if err == nil {
		if !existing.IsAdmin() {
			log.WithField("username", opts.AdminUsername).Warn("Configured admin username belongs to a customer account")
		}
		return nil
	}
	if !errors.Is(err, services.ErrNotFound) {
		return err
	}

	admin := &models.User{
		Username: opts.AdminUsername,
		Role:     string(models.RoleAdmin),
	}
	if err := userService.CreateUser(ctx, admin, opts.AdminPassword); err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	log.WithField("username", admin.Username).Info("Admin user created")
	return nil
}
