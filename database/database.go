package database

import (
	"errors"
	"fmt"

	"gallery-admin/internal/domain/catalog"
	"gallery-admin/internal/domain/reports"
	"gallery-admin/internal/domain/users"
	"gallery-admin/internal/domain/works"
	"gallery-admin/internal/store"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to postgres and migrates the gallery tables.
func Open(dsn string, log *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		return nil, errors.New("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&works.Artwork{},
		&users.User{},
		&catalog.Category{},
		&reports.Report{},
	); err != nil {
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	log.Info("connected and migrated", zap.String("driver", "postgres"))
	return db, nil
}

// Stores exposes each table as a whole-collection store.
func Stores(db *gorm.DB) store.Stores {
	return store.Stores{
		Artworks:   NewTable[works.Artwork](db),
		Users:      NewTable[users.User](db),
		Categories: NewTable[catalog.Category](db),
		Reports:    NewTable[reports.Report](db),
	}
}
