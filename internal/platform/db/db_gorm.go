// Package db はGORMによるPostgreSQL接続の確立とマイグレーションを提供します。
package db

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	gpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	authentity "swing_backend/internal/feature/auth/domain/entity"
	pricesadapters "swing_backend/internal/feature/prices/adapters"
)

// retryInterval is the wait between connection attempts.
const retryInterval = 3 * time.Second

// Config holds database connection settings.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	// InstanceName is the Cloud SQL instance connection name.
	// When set, the connection goes through the Cloud SQL Unix socket
	// instead of TCP.
	InstanceName string
}

// LoadConfigFromEnv loads database configuration from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
	}
}

// BuildDSN builds a PostgreSQL DSN string from the given configuration.
// InstanceName takes precedence over Host/Port.
func BuildDSN(cfg Config) string {
	if cfg.InstanceName != "" {
		return fmt.Sprintf("host=/cloudsql/%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
			cfg.InstanceName, cfg.User, cfg.Password, cfg.Name)
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
}

// Opener opens a gorm.DB for the given DSN. Factored out for testing.
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry attempts to open a database connection, retrying until
// the timeout elapses. Container orchestration can start the application
// before the database accepts connections, so a cold start needs retries.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("database connect failed after %v: %w", timeout, err)
		}
		slog.Warn("database connect failed, retrying", "error", err)
		time.Sleep(retryInterval)
	}
}

// OpenDB establishes the application database connection and, when
// RUN_MIGRATIONS=true, runs schema migrations for all persisted models.
func OpenDB() *gorm.DB {
	cfg := LoadConfigFromEnv()

	db, err := ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
		return gorm.Open(gpostgres.Open(dsn), &gorm.Config{})
	})
	if err != nil {
		log.Fatalf("DB connect failed: %v", err)
	}

	if os.Getenv("RUN_MIGRATIONS") == "true" {
		// マイグレーション（User, PricePoint）
		if err := db.AutoMigrate(
			&authentity.User{},
			&pricesadapters.PricePointModel{},
		); err != nil {
			log.Fatalf("failed to migrate: %v", err)
		}
	}

	return db
}
