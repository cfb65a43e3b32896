// Package types holds the configuration structures shared across the
// scheduler service's layers: process config, storage config, and cache
// config. They carry no behaviour; config.LoadConfig populates them and
// config.ValidateConfig checks them.
package types

import "time"

// ServiceConfig is the top-level configuration for the scheduler service
// process.
type ServiceConfig struct {
	Environment string `json:"environment" yaml:"environment"`
	ServiceName string `json:"serviceName" yaml:"serviceName"`
	Version     string `json:"version" yaml:"version"`

	Database *DatabaseConfig `json:"database" yaml:"database"`
	Redis    *RedisConfig    `json:"redis" yaml:"redis"`
	API      *APIConfig      `json:"api" yaml:"api"`
	Weather  *WeatherConfig  `json:"weather" yaml:"weather"`
	Advisory *AdvisoryConfig `json:"advisory" yaml:"advisory"`

	Debug           bool              `json:"debug" yaml:"debug"`
	ShutdownTimeout time.Duration     `json:"shutdownTimeout" yaml:"shutdownTimeout"`
	FeatureFlags    map[string]bool   `json:"featureFlags" yaml:"featureFlags"`
}

// DatabaseConfig is the PostgreSQL connection configuration backing zone and
// catalog-override persistence.
type DatabaseConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	User     string `json:"user" yaml:"user"`
	Password string `json:"password" yaml:"password"`
	DBName   string `json:"dbName" yaml:"dbName"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`

	ConnTimeout     time.Duration `json:"connTimeout" yaml:"connTimeout"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxConnLifetime time.Duration `json:"maxConnLifetime" yaml:"maxConnLifetime"`

	EnableAutoMigration bool `json:"enableAutoMigration" yaml:"enableAutoMigration"`
}

// RedisConfig configures the cache used by the weather client.
type RedisConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     int    `json:"port" yaml:"port"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`

	ConnTimeout  time.Duration `json:"connTimeout" yaml:"connTimeout"`
	ReadTimeout  time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	MaxRetries   int           `json:"maxRetries" yaml:"maxRetries"`
	PoolSize     int           `json:"poolSize" yaml:"poolSize"`

	EnableTLS bool `json:"enableTLS" yaml:"enableTLS"`
}

// APIConfig configures the HTTP gateway that fronts the scheduling kernel.
type APIConfig struct {
	Host string `json:"host" yaml:"host"`
	Port int    `json:"port" yaml:"port"`

	ReadTimeout     time.Duration `json:"readTimeout" yaml:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
	IdleTimeout     time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout" yaml:"shutdownTimeout"`

	EnableCORS     bool     `json:"enableCORS" yaml:"enableCORS"`
	AllowedOrigins []string `json:"allowedOrigins" yaml:"allowedOrigins"`
	AllowedMethods []string `json:"allowedMethods" yaml:"allowedMethods"`
	AllowedHeaders []string `json:"allowedHeaders" yaml:"allowedHeaders"`

	EnableTLS   bool   `json:"enableTLS" yaml:"enableTLS"`
	TLSCertPath string `json:"tlsCertPath" yaml:"tlsCertPath"`
	TLSKeyPath  string `json:"tlsKeyPath" yaml:"tlsKeyPath"`

	EnableRequestLogging bool `json:"enableRequestLogging" yaml:"enableRequestLogging"`
	EnableMetrics        bool `json:"enableMetrics" yaml:"enableMetrics"`

	RateLimit       int           `json:"rateLimit" yaml:"rateLimit"`
	RateLimitWindow time.Duration `json:"rateLimitWindow" yaml:"rateLimitWindow"`

	JWTSigningKey string `json:"-" yaml:"-"`
}

// WeatherConfig configures the HTTP forecast collaborator behind
// internal/weather.
type WeatherConfig struct {
	BaseURL string        `json:"baseURL" yaml:"baseURL"`
	APIKey  string        `json:"-" yaml:"-"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	CacheTTL time.Duration `json:"cacheTTL" yaml:"cacheTTL"`

	CircuitBreakerMaxRequests uint32        `json:"circuitBreakerMaxRequests" yaml:"circuitBreakerMaxRequests"`
	CircuitBreakerInterval    time.Duration `json:"circuitBreakerInterval" yaml:"circuitBreakerInterval"`
	CircuitBreakerTimeout     time.Duration `json:"circuitBreakerTimeout" yaml:"circuitBreakerTimeout"`
}

// AdvisoryConfig configures the best-effort LLM advisory collaborator
// behind internal/advisory.
type AdvisoryConfig struct {
	Enabled bool          `json:"enabled" yaml:"enabled"`
	APIKey  string        `json:"-" yaml:"-"`
	Model   string        `json:"model" yaml:"model"`
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	CacheTTL time.Duration `json:"cacheTTL" yaml:"cacheTTL"`
}
