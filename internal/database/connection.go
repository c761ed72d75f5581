package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqliteScheme = "sqlite://"

// Initialize opens the database named by databaseURL. Postgres DSNs are the
// default; "sqlite://<path>" and "file:" DSNs open SQLite.
func Initialize(databaseURL, logLevel string, log logrus.FieldLogger) (*gorm.DB, error) {
	// Configure GORM
	config := &gorm.Config{
		Logger:         newGormLogger(logLevel, log),
		TranslateError: true,
	}

	// Connect to database
	db, err := gorm.Open(Dialector(databaseURL), config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	if IsSQLite(databaseURL) {
		// SQLite serializes writers; one connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}

	log.WithField("driver", db.Dialector.Name()).Info("Database connected")
	return db, nil
}

// Dialector picks the gorm driver for databaseURL.
func Dialector(databaseURL string) gorm.Dialector {
	if IsSQLite(databaseURL) {
		return sqlite.Open(strings.TrimPrefix(databaseURL, sqliteScheme))
	}
	return postgres.Open(databaseURL)
}

func IsSQLite(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, sqliteScheme) || strings.HasPrefix(databaseURL, "file:")
}

func newGormLogger(level string, log logrus.FieldLogger) logger.Interface {
	return logger.New(log, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  parseGormLevel(level),
		IgnoreRecordNotFoundError: true,
	})
}

func parseGormLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
