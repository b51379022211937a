// Package repository is the PostgreSQL side of an import: one Repository per connection pool,
// rebound to a transaction for the duration of a file.
package repository

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"moul.io/zapgorm2"

	"droscher.com/BeerImporter/configs"
)

// Repository loads rows through DB. BatchSize caps the rows per INSERT statement; zero means
// defaultBatchSize.
type Repository struct {
	DB        *gorm.DB
	Logger    *zap.Logger
	BatchSize int
}

const (
	maxIdleTime      = 5 * time.Minute
	maxLifetime      = time.Hour
	defaultBatchSize = 100
)

// DSN renders the libpq keyword/value connection string for conf. Sessions always run in UTC
// so imported timestamps are stored as written.
func DSN(conf configs.DB) string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=UTC",
		conf.Host, conf.User, conf.Password, conf.Database, conf.Port)
}

func Open(conf *configs.Config, logger *zap.Logger) (*Repository, error) {
	gormLogger := zapgorm2.New(logger)
	gormLogger.SetAsDefault()

	db, err := gorm.Open(postgres.Open(DSN(conf.DB)), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s:%d/%s: %w", conf.DB.Host, conf.DB.Port, conf.DB.Database, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(conf.DB.MaxIdleConnections)
	sqlDB.SetMaxOpenConns(conf.DB.MaxOpenConnections)
	sqlDB.SetConnMaxIdleTime(maxIdleTime)
	sqlDB.SetConnMaxLifetime(maxLifetime)

	logger.Debug("connected to database", zap.String("host", conf.DB.Host), zap.String("database", conf.DB.Database),
		zap.Int("batch_size", conf.Import.BatchSize))

	return &Repository{DB: db, Logger: logger, BatchSize: conf.Import.BatchSize}, nil
}

func (r *Repository) Close() {
	if sqlDB, err := r.DB.DB(); err == nil && sqlDB != nil {
		if err := sqlDB.Close(); err != nil {
			r.Logger.Warn("error closing database", zap.Error(err))
		}
	}
}
