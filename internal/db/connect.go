// Package db opens the database connection and keeps the schema and the
// baseline lookup rows in shape.
package db

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"bootstore-backoffice/internal/models"
)

// Connect opens the database named by dsn. A postgres:// DSN uses the
// postgres driver with a short retry loop so the server gets time to come
// up; anything else is treated as a sqlite path.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("db: empty DSN")
	}

	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		var db *gorm.DB
		var err error
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				return db, nil
			}
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("db: connect after retries: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}
	return db, nil
}

// Migrate applies the GORM schema for every model, lookups first so the
// foreign keys have their targets.
func Migrate(db *gorm.DB) error {
	toMigrate := []interface{}{
		&models.Category{}, &models.Manufacturer{}, &models.Supplier{}, &models.Unit{},
		&models.OrderStatus{}, &models.PickupPoint{},
		&models.Role{}, &models.User{},
		&models.Product{}, &models.Order{}, &models.OrderLine{},
	}
	for _, m := range toMigrate {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// ConnectAndMigrate is the single call the command entrypoint uses.
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
