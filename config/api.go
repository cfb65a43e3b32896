package config

import (
	"os"
	"strings"
	"time"

	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	defaultAPIHost            = "0.0.0.0"
	defaultAPIPort            = 8080
	defaultReadTimeout        = 15 * time.Second
	defaultWriteTimeout       = 15 * time.Second
	defaultIdleTimeout        = 60 * time.Second
	defaultAPIShutdownTimeout = 10 * time.Second
	defaultRateLimit          = 100
	defaultRateLimitWindow    = time.Minute
)

func loadAPIConfig() (*types.APIConfig, error) {
	cfg := &types.APIConfig{
		Host:                 getEnvOrDefault("API_HOST", defaultAPIHost),
		Port:                 getEnvIntOrDefault("API_PORT", defaultAPIPort),
		ReadTimeout:          getDurationOrDefault("API_READ_TIMEOUT", defaultReadTimeout),
		WriteTimeout:         getDurationOrDefault("API_WRITE_TIMEOUT", defaultWriteTimeout),
		IdleTimeout:          getDurationOrDefault("API_IDLE_TIMEOUT", defaultIdleTimeout),
		ShutdownTimeout:      getDurationOrDefault("API_SHUTDOWN_TIMEOUT", defaultAPIShutdownTimeout),
		EnableCORS:           getEnvBoolOrDefault("API_ENABLE_CORS", true),
		AllowedOrigins:       splitOrDefault(os.Getenv("API_ALLOWED_ORIGINS"), []string{"*"}),
		AllowedMethods:       splitOrDefault(os.Getenv("API_ALLOWED_METHODS"), []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		AllowedHeaders:       splitOrDefault(os.Getenv("API_ALLOWED_HEADERS"), []string{"Accept", "Authorization", "Content-Type"}),
		EnableTLS:            getEnvBoolOrDefault("API_ENABLE_TLS", false),
		TLSCertPath:          os.Getenv("API_TLS_CERT_PATH"),
		TLSKeyPath:           os.Getenv("API_TLS_KEY_PATH"),
		EnableRequestLogging: getEnvBoolOrDefault("API_REQUEST_LOGGING", true),
		EnableMetrics:        getEnvBoolOrDefault("API_ENABLE_METRICS", true),
		RateLimit:            getEnvIntOrDefault("API_RATE_LIMIT", defaultRateLimit),
		RateLimitWindow:      getDurationOrDefault("API_RATE_LIMIT_WINDOW", defaultRateLimitWindow),
		JWTSigningKey:        os.Getenv("JWT_SIGNING_KEY"),
	}

	if err := validateAPIConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validateAPIConfig(cfg *types.APIConfig) error {
	if cfg == nil {
		return irrigoerrors.NewError("VALIDATION_ERROR", "API configuration cannot be nil")
	}
	if cfg.Port < minPort || cfg.Port > maxPort {
		return irrigoerrors.NewError("VALIDATION_ERROR", "API port must be between 1 and 65535")
	}
	if cfg.RateLimit <= 0 {
		return irrigoerrors.NewError("VALIDATION_ERROR", "API rate limit must be positive")
	}
	if cfg.EnableTLS && (cfg.TLSCertPath == "" || cfg.TLSKeyPath == "") {
		return irrigoerrors.NewError("VALIDATION_ERROR", "TLS cert and key paths are required when TLS is enabled")
	}
	return nil
}

func splitOrDefault(value string, defaultValue []string) []string {
	if strings.TrimSpace(value) == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
