package config

import (
	"fmt"

	"github.com/bellapacxx/jetlag-backend/models"
	"github.com/bellapacxx/jetlag-backend/utils/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// SetupDatabase connects to postgres and runs migrations.
func SetupDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("✅ Database connected and migrated")
	return db, nil
}

// Migrate creates or updates every table the backend owns.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Card{},
		&models.GameState{},
		&models.GameHistory{},
		&models.UserStatistics{},
	); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
