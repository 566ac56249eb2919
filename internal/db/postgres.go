package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/trashmob-eco/trashmob-api/internal/config"
)

// NewPostgresDB opens a gorm connection to PostgreSQL and tunes the
// underlying sql.DB pool from configuration.
func NewPostgresDB(cfg *config.Config) (*gorm.DB, error) {
	gormLogLevel := gormlogger.Warn
	if cfg.Server.Mode == "development" {
		gormLogLevel = gormlogger.Info
	}

	database, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.GetPostgresDSN(),
	}), &gorm.Config{
		// TranslateError surfaces duplicate-key and FK violations as
		// gorm sentinel errors independent of the driver.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormLogLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}

	connMaxLifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
	if err != nil {
		connMaxLifetime = time.Hour
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return database, nil
}
