// Package database manages the PostgreSQL connection backing zone and
// catalog-override persistence.
package database

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/chrisharrington/irrigo/internal/models"
	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/constants"
	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	errDBFailed = constants.ErrDatabaseOperation

	maxRetryAttempts = 3
	retryBaseDelay   = time.Second
)

var dbInstance *gorm.DB

// NewConnection opens a PostgreSQL connection with bounded retry, configures
// the pool from cfg, and runs auto-migration for the zone/catalog-override
// models when cfg.EnableAutoMigration is set.
func NewConnection(cfg *types.DatabaseConfig) (*gorm.DB, error) {
	if cfg == nil {
		return nil, irrigoerrors.NewError(errDBFailed, "database configuration is required")
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)

	gormConfig := &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Warn),
		NowFunc: func() time.Time { return time.Now().UTC() },
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= maxRetryAttempts; attempt++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
		if err == nil {
			break
		}
		if attempt < maxRetryAttempts {
			time.Sleep(time.Duration(attempt) * retryBaseDelay)
		}
	}
	if err != nil {
		return nil, irrigoerrors.NewError(errDBFailed, fmt.Sprintf("failed to connect after %d attempts: %v", maxRetryAttempts, err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, irrigoerrors.NewError(errDBFailed, fmt.Sprintf("failed to get database instance: %v", err))
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.MaxConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, irrigoerrors.NewError(errDBFailed, fmt.Sprintf("failed to ping database: %v", err))
	}

	if cfg.EnableAutoMigration {
		if err := db.AutoMigrate(&models.ZoneRecord{}, &models.GrassCatalogOverride{}, &models.SoilCatalogOverride{}); err != nil {
			return nil, irrigoerrors.NewError(errDBFailed, fmt.Sprintf("auto-migration failed: %v", err))
		}
	}

	dbInstance = db
	return db, nil
}

// GetConnection returns the singleton connection established by
// NewConnection, verifying it is still healthy.
func GetConnection() (*gorm.DB, error) {
	if dbInstance == nil {
		return nil, irrigoerrors.NewError(errDBFailed, "database connection not initialized")
	}
	if err := Ping(); err != nil {
		return nil, irrigoerrors.NewError(errDBFailed, fmt.Sprintf("database connection unhealthy: %v", err))
	}
	return dbInstance, nil
}

// CloseConnection releases the underlying connection pool.
func CloseConnection() error {
	if dbInstance == nil {
		return nil
	}
	sqlDB, err := dbInstance.DB()
	if err != nil {
		return irrigoerrors.NewError(errDBFailed, fmt.Sprintf("failed to get database instance: %v", err))
	}
	if err := sqlDB.Close(); err != nil {
		return irrigoerrors.NewError(errDBFailed, fmt.Sprintf("failed to close database connection: %v", err))
	}
	dbInstance = nil
	return nil
}

// Ping verifies database connection health.
func Ping() error {
	if dbInstance == nil {
		return irrigoerrors.NewError(errDBFailed, "database connection not initialized")
	}
	sqlDB, err := dbInstance.DB()
	if err != nil {
		return irrigoerrors.NewError(errDBFailed, fmt.Sprintf("failed to get database instance: %v", err))
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return irrigoerrors.NewError(errDBFailed, fmt.Sprintf("failed to ping database: %v", err))
	}
	return nil
}
