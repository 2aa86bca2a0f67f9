package db

import (
	"fmt"
	"strings"
	"time"

	"github.com/diewo77/clinic-admin/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Connect opens the database selected by the DSN: postgres for URL or
// key=value DSNs, sqlite for anything else (a file path or :memory:). The
// postgres path retries a few times to give the server time to come up.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if isPostgresDSN(dsn) {
		var db *gorm.DB
		var err error
		for i := 0; i < 5; i++ {
			db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
			if err == nil {
				return db, nil
			}
			time.Sleep(2 * time.Second)
		}
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	return db, nil
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") ||
		strings.HasPrefix(lower, "postgresql://") ||
		strings.Contains(lower, "host=")
}

// Migrate applies GORM auto-migrations for every model.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Doctor{},
		&models.Service{},
		&models.Record{},
		&models.Schedule{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// ConnectAndMigrate combines Connect and Migrate.
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
