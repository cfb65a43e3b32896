package config

import (
	"time"

	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	defaultRedisHost         = "localhost"
	defaultRedisPort         = 6379
	defaultRedisDB           = 0
	defaultConnTimeout       = 5 * time.Second
	defaultRedisReadTimeout  = 3 * time.Second
	defaultRedisWriteTimeout = 3 * time.Second
	defaultMaxRetries        = 3
	defaultPoolSize          = 10

	minTimeout  = 1 * time.Millisecond
	maxTimeout  = 30 * time.Second
	minPoolSize = 2
	maxPoolSize = 1000
	minRetries  = 0
	maxRetries  = 10
)

// LoadRedisConfig loads the Redis cache configuration used by
// internal/weather's forecast cache.
func LoadRedisConfig() (*types.RedisConfig, error) {
	cfg := &types.RedisConfig{
		Host:         getEnvOrDefault("REDIS_HOST", defaultRedisHost),
		Port:         getEnvIntOrDefault("REDIS_PORT", defaultRedisPort),
		Password:     getEnvOrDefault("REDIS_PASSWORD", ""),
		DB:           getEnvIntOrDefault("REDIS_DB", defaultRedisDB),
		ConnTimeout:  getDurationOrDefault("REDIS_CONN_TIMEOUT", defaultConnTimeout),
		ReadTimeout:  getDurationOrDefault("REDIS_READ_TIMEOUT", defaultRedisReadTimeout),
		WriteTimeout: getDurationOrDefault("REDIS_WRITE_TIMEOUT", defaultRedisWriteTimeout),
		MaxRetries:   getEnvIntOrDefault("REDIS_MAX_RETRIES", defaultMaxRetries),
		PoolSize:     getEnvIntOrDefault("REDIS_POOL_SIZE", defaultPoolSize),
		EnableTLS:    getEnvBoolOrDefault("REDIS_TLS_ENABLED", false),
	}

	if err := ValidateRedisConfig(cfg); err != nil {
		return nil, irrigoerrors.WrapError(err, "failed to validate Redis configuration")
	}

	return cfg, nil
}

// ValidateRedisConfig performs bounds checking on Redis configuration.
func ValidateRedisConfig(cfg *types.RedisConfig) error {
	if cfg == nil {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis configuration cannot be nil")
	}
	if cfg.Host == "" {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis host cannot be empty")
	}
	if cfg.Port < minPort || cfg.Port > maxPort {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis port must be between 1 and 65535")
	}
	if cfg.DB < 0 {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis database number cannot be negative")
	}
	if err := validateTimeout("connection", cfg.ConnTimeout); err != nil {
		return err
	}
	if err := validateTimeout("read", cfg.ReadTimeout); err != nil {
		return err
	}
	if err := validateTimeout("write", cfg.WriteTimeout); err != nil {
		return err
	}
	if cfg.PoolSize < minPoolSize || cfg.PoolSize > maxPoolSize {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis pool size must be between 2 and 1000")
	}
	if cfg.MaxRetries < minRetries || cfg.MaxRetries > maxRetries {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis max retries must be between 0 and 10")
	}
	return nil
}

func validateTimeout(timeoutType string, timeout time.Duration) error {
	if timeout <= 0 {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis "+timeoutType+" timeout must be positive")
	}
	if timeout > maxTimeout {
		return irrigoerrors.NewError("VALIDATION_ERROR", "Redis "+timeoutType+" timeout exceeds maximum allowed value")
	}
	return nil
}
