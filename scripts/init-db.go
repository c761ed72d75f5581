package main

import (
	"cafeteria/internal/config"
	"cafeteria/internal/database"
	"cafeteria/internal/logging"
	"cafeteria/internal/migrations"
	"context"
)

// Creates the schema, the default catalog and the admin account, then exits.
// Safe to run repeatedly.
func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	log.Info("Initializing database...")

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL, cfg.DBLogLevel, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := migrations.RunMigrations(context.Background(), db, migrations.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
	}, log); err != nil {
		log.WithError(err).Fatal("Failed to initialize database")
	}

	if cfg.AdminPassword == "" {
		log.Warn("ADMIN_PASSWORD is empty, no admin account was created")
	}
	log.Info("Database initialization completed successfully!")
}
