// Package config loads and validates the scheduler service's configuration
// from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	defaultDBHost        = "localhost"
	defaultDBPort        = 5432
	defaultDBUser        = "postgres"
	defaultDBName        = "irrigo"
	defaultDBSSLMode     = "disable"
	defaultDBConnTimeout = "30s"
	defaultMaxOpenConns  = 25
	defaultMaxIdleConns  = 25

	envDBHost         = "DB_HOST"
	envDBPort         = "DB_PORT"
	envDBUser         = "DB_USER"
	envDBPassword     = "DB_PASSWORD"
	envDBName         = "DB_NAME"
	envDBSSLMode      = "DB_SSL_MODE"
	envDBConnTimeout  = "DB_CONN_TIMEOUT"
	envDBMaxOpenConns = "DB_MAX_OPEN_CONNS"
	envDBMaxIdleConns = "DB_MAX_IDLE_CONNS"

	minPasswordLength = 8
	maxPort           = 65535
	minPort           = 1
	maxConnTimeout    = 300 * time.Second
	minConnTimeout    = 1 * time.Second
)

var validSSLModes = map[string]bool{
	"disable":     true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

// LoadDatabaseConfig loads PostgreSQL configuration from the environment.
// The password has no default: the zero value forces an explicit operator
// decision rather than a silently-empty credential.
func LoadDatabaseConfig() (*types.DatabaseConfig, error) {
	port, err := strconv.Atoi(getEnvOrDefault(envDBPort, strconv.Itoa(defaultDBPort)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envDBPort, err)
	}

	timeout, err := time.ParseDuration(getEnvOrDefault(envDBConnTimeout, defaultDBConnTimeout))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envDBConnTimeout, err)
	}

	maxOpen, err := strconv.Atoi(getEnvOrDefault(envDBMaxOpenConns, strconv.Itoa(defaultMaxOpenConns)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envDBMaxOpenConns, err)
	}

	maxIdle, err := strconv.Atoi(getEnvOrDefault(envDBMaxIdleConns, strconv.Itoa(defaultMaxIdleConns)))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", envDBMaxIdleConns, err)
	}

	cfg := &types.DatabaseConfig{
		Host:            getEnvOrDefault(envDBHost, defaultDBHost),
		Port:            port,
		User:            getEnvOrDefault(envDBUser, defaultDBUser),
		Password:        os.Getenv(envDBPassword),
		DBName:          getEnvOrDefault(envDBName, defaultDBName),
		SSLMode:         strings.ToLower(getEnvOrDefault(envDBSSLMode, defaultDBSSLMode)),
		ConnTimeout:     timeout,
		MaxOpenConns:    maxOpen,
		MaxIdleConns:    maxIdle,
		MaxConnLifetime: 30 * time.Minute,

		EnableAutoMigration: getEnvBoolOrDefault("DB_AUTO_MIGRATE", false),
	}

	if err := ValidateDatabaseConfig(cfg); err != nil {
		return nil, fmt.Errorf("database configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateDatabaseConfig rejects database configuration that would fail at
// connection time or silently relax a security posture.
func ValidateDatabaseConfig(cfg *types.DatabaseConfig) error {
	if cfg == nil {
		return fmt.Errorf("database configuration is nil")
	}
	if strings.TrimSpace(cfg.Host) == "" {
		return fmt.Errorf("database host cannot be empty")
	}
	if cfg.Port < minPort || cfg.Port > maxPort {
		return fmt.Errorf("invalid port number %d: must be between %d and %d", cfg.Port, minPort, maxPort)
	}
	if strings.TrimSpace(cfg.User) == "" {
		return fmt.Errorf("database user cannot be empty")
	}
	if len(cfg.Password) < minPasswordLength {
		return fmt.Errorf("database password must be at least %d characters long", minPasswordLength)
	}
	if strings.TrimSpace(cfg.DBName) == "" {
		return fmt.Errorf("database name cannot be empty")
	}
	if strings.ContainsAny(cfg.DBName, " ;'\"") {
		return fmt.Errorf("database name contains invalid characters")
	}
	if !validSSLModes[cfg.SSLMode] {
		return fmt.Errorf("invalid SSL mode %q: must be one of disable, require, verify-ca, verify-full", cfg.SSLMode)
	}
	if cfg.ConnTimeout < minConnTimeout || cfg.ConnTimeout > maxConnTimeout {
		return fmt.Errorf("connection timeout must be between %v and %v", minConnTimeout, maxConnTimeout)
	}
	if cfg.MaxOpenConns < 1 {
		return fmt.Errorf("max open connections must be at least 1")
	}
	if cfg.MaxIdleConns < 1 {
		return fmt.Errorf("max idle connections must be at least 1")
	}
	if cfg.MaxIdleConns > cfg.MaxOpenConns {
		return fmt.Errorf("max idle connections (%d) cannot exceed max open connections (%d)", cfg.MaxIdleConns, cfg.MaxOpenConns)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
