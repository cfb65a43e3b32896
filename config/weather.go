package config

import (
	"os"
	"time"

	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	defaultWeatherBaseURL = "https://api.weather.example/v1"
	defaultWeatherTimeout = 5 * time.Second
	defaultWeatherCacheTTL = 30 * time.Minute

	defaultBreakerMaxRequests = uint32(3)
	defaultBreakerInterval    = 60 * time.Second
	defaultBreakerTimeout     = 30 * time.Second
)

func loadWeatherConfig() (*types.WeatherConfig, error) {
	cfg := &types.WeatherConfig{
		BaseURL:                   getEnvOrDefault("WEATHER_BASE_URL", defaultWeatherBaseURL),
		APIKey:                    os.Getenv("WEATHER_API_KEY"),
		Timeout:                   getDurationOrDefault("WEATHER_TIMEOUT", defaultWeatherTimeout),
		CacheTTL:                  getDurationOrDefault("WEATHER_CACHE_TTL", defaultWeatherCacheTTL),
		CircuitBreakerMaxRequests: uint32(getEnvIntOrDefault("WEATHER_BREAKER_MAX_REQUESTS", int(defaultBreakerMaxRequests))),
		CircuitBreakerInterval:    getDurationOrDefault("WEATHER_BREAKER_INTERVAL", defaultBreakerInterval),
		CircuitBreakerTimeout:     getDurationOrDefault("WEATHER_BREAKER_TIMEOUT", defaultBreakerTimeout),
	}

	if cfg.BaseURL == "" {
		return nil, irrigoerrors.NewError("VALIDATION_ERROR", "weather base URL cannot be empty")
	}
	if cfg.Timeout <= 0 {
		return nil, irrigoerrors.NewError("VALIDATION_ERROR", "weather timeout must be positive")
	}

	return cfg, nil
}

func loadAdvisoryConfig() *types.AdvisoryConfig {
	return &types.AdvisoryConfig{
		Enabled:  getEnvBoolOrDefault("ADVISORY_ENABLED", false),
		APIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:    getEnvOrDefault("ADVISORY_MODEL", "gpt-4o-mini"),
		Timeout:  getDurationOrDefault("ADVISORY_TIMEOUT", 8*time.Second),
		CacheTTL: getDurationOrDefault("ADVISORY_CACHE_TTL", 24*time.Hour),
	}
}
