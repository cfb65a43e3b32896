package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	defaultEnvironment = "development"
	defaultServiceName = "irrigo-scheduler"
	defaultVersion     = "1.0.0"

	envEnvironment = "ENV"
	envServiceName = "SERVICE_NAME"
	envVersion     = "VERSION"
)

var validEnvironments = []string{"development", "staging", "production"}

// LoadConfig loads the complete service configuration from environment
// variables, applying defaults and environment-specific overrides, then
// validates the result before returning it.
func LoadConfig() (*types.ServiceConfig, error) {
	cfg := &types.ServiceConfig{}

	cfg.Environment = strings.ToLower(getEnvOrDefault(envEnvironment, defaultEnvironment))
	if !isValidEnvironment(cfg.Environment) {
		return nil, fmt.Errorf("invalid environment %q: must be one of %v", cfg.Environment, validEnvironments)
	}

	cfg.ServiceName = getEnvOrDefault(envServiceName, defaultServiceName)

	version := getEnvOrDefault(envVersion, defaultVersion)
	if _, err := semver.NewVersion(version); err != nil {
		return nil, fmt.Errorf("invalid version format %q: must be semantic version", version)
	}
	cfg.Version = version

	dbConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database configuration: %w", err)
	}
	cfg.Database = dbConfig

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load Redis configuration: %w", err)
	}
	cfg.Redis = redisConfig

	apiConfig, err := loadAPIConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load API configuration: %w", err)
	}
	cfg.API = apiConfig

	weatherConfig, err := loadWeatherConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load weather configuration: %w", err)
	}
	cfg.Weather = weatherConfig

	cfg.Advisory = loadAdvisoryConfig()

	cfg.FeatureFlags = parseFeatureFlags(os.Getenv("FEATURE_FLAGS"))

	applyEnvironmentOverrides(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ValidateConfig re-validates a fully assembled ServiceConfig, useful for
// configuration constructed directly by tests rather than via LoadConfig.
func ValidateConfig(cfg *types.ServiceConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if !isValidEnvironment(cfg.Environment) {
		return fmt.Errorf("invalid environment %q", cfg.Environment)
	}
	if strings.TrimSpace(cfg.ServiceName) == "" {
		return fmt.Errorf("service name cannot be empty")
	}
	if _, err := semver.NewVersion(cfg.Version); err != nil {
		return fmt.Errorf("invalid version format: %w", err)
	}
	if err := ValidateDatabaseConfig(cfg.Database); err != nil {
		return fmt.Errorf("database configuration invalid: %w", err)
	}
	if err := ValidateRedisConfig(cfg.Redis); err != nil {
		return fmt.Errorf("Redis configuration invalid: %w", err)
	}
	if err := validateAPIConfig(cfg.API); err != nil {
		return fmt.Errorf("API configuration invalid: %w", err)
	}
	return nil
}

func isValidEnvironment(env string) bool {
	for _, valid := range validEnvironments {
		if env == valid {
			return true
		}
	}
	return false
}

// parseFeatureFlags parses a comma-separated "key=true,key2=false" string.
// Malformed pairs are skipped rather than rejected: a typo in an operator's
// override should not prevent the service from starting.
func parseFeatureFlags(flags string) map[string]bool {
	result := make(map[string]bool)
	if strings.TrimSpace(flags) == "" {
		return result
	}
	for _, pair := range strings.Split(flags, ",") {
		kv := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.ToLower(strings.TrimSpace(kv[1]))
		if key == "" {
			continue
		}
		result[key] = value == "true"
	}
	return result
}

func applyEnvironmentOverrides(cfg *types.ServiceConfig) {
	switch cfg.Environment {
	case "production":
		cfg.API.EnableTLS = true
		cfg.Redis.EnableTLS = true
		cfg.Database.SSLMode = "verify-full"
	case "staging":
		cfg.API.EnableTLS = true
		cfg.Redis.EnableTLS = true
		cfg.Database.SSLMode = "require"
	}
}
