// Package cache provides the Redis client behind internal/weather's
// forecast cache, wrapped with a circuit breaker, payload compression, and
// Prometheus metrics.
package cache

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/klauspost/compress/s2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"

	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/types"
)

const (
	defaultMinIdleConns  = 2
	compressionThreshold = 1024 // bytes

	// compressedPrefix marks an S2-compressed payload. '(' can never begin
	// a JSON document, so the prefix is unambiguous on read.
	compressedPrefix = 0x28

	metricNamespace = "irrigo"
	metricSubsystem = "redis_cache"
)

// RedisClient is a Redis client hardened with a circuit breaker,
// above-threshold S2 compression, and Prometheus observability.
type RedisClient struct {
	client  *redis.Client
	breaker *gobreaker.CircuitBreaker
	metrics *cacheMetrics
}

type cacheMetrics struct {
	operationDuration *prometheus.HistogramVec
	operationErrors   *prometheus.CounterVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
}

// Cache metrics are process-wide: every RedisClient shares one registered
// collector set.
var (
	sharedCacheMetrics     *cacheMetrics
	sharedCacheMetricsOnce sync.Once
)

func newCacheMetrics() *cacheMetrics {
	sharedCacheMetricsOnce.Do(func() {
		sharedCacheMetrics = buildCacheMetrics()
	})
	return sharedCacheMetrics
}

func buildCacheMetrics() *cacheMetrics {
	m := &cacheMetrics{
		operationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricNamespace,
				Subsystem: metricSubsystem,
				Name:      "operation_duration_seconds",
				Help:      "Duration of Redis operations in seconds.",
			},
			[]string{"operation"},
		),
		operationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Subsystem: metricSubsystem,
				Name:      "operation_errors_total",
				Help:      "Total Redis operation errors.",
			},
			[]string{"operation"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "hits_total",
			Help:      "Total cache hits.",
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: metricSubsystem,
			Name:      "misses_total",
			Help:      "Total cache misses.",
		}),
	}

	prometheus.MustRegister(m.operationDuration, m.operationErrors, m.cacheHits, m.cacheMisses)
	return m
}

// NewRedisClient dials Redis, verifies connectivity, and wraps the result in
// a circuit breaker that trips once at least 3 requests have been attempted
// and 60% or more have failed.
func NewRedisClient(cfg *types.RedisConfig) (*RedisClient, error) {
	if cfg == nil {
		return nil, irrigoerrors.NewError("INVALID_INPUT", "Redis configuration is required")
	}

	breakerSettings := gobreaker.Settings{
		Name:    "redis-circuit-breaker",
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	}

	opts := &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  cfg.ConnTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: defaultMinIdleConns,
		MaxRetries:   cfg.MaxRetries,
	}

	if cfg.EnableTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, irrigoerrors.WrapError(err, "failed to connect to Redis")
	}

	return &RedisClient{
		client:  client,
		breaker: gobreaker.NewCircuitBreaker(breakerSettings),
		metrics: newCacheMetrics(),
	}, nil
}

// Set JSON-encodes value, compresses it above compressionThreshold, and
// stores it under key with the given expiration.
func (rc *RedisClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if key == "" {
		return irrigoerrors.NewError("INVALID_INPUT", "key cannot be empty")
	}

	start := time.Now()
	defer func() { rc.metrics.operationDuration.WithLabelValues("set").Observe(time.Since(start).Seconds()) }()

	_, err := rc.breaker.Execute(func() (interface{}, error) {
		data, err := json.Marshal(value)
		if err != nil {
			return nil, irrigoerrors.WrapError(err, "failed to marshal value")
		}

		if len(data) > compressionThreshold {
			data = append([]byte{compressedPrefix}, s2.Encode(nil, data)...)
		}

		if err := rc.client.Set(ctx, key, data, expiration).Err(); err != nil {
			rc.metrics.operationErrors.WithLabelValues("set").Inc()
			return nil, irrigoerrors.WrapError(err, "failed to set value in Redis")
		}

		return nil, nil
	})

	return err
}

// Get retrieves and JSON-decodes the value stored under key into value,
// transparently decompressing S2-compressed payloads.
func (rc *RedisClient) Get(ctx context.Context, key string, value interface{}) error {
	if key == "" {
		return irrigoerrors.NewError("INVALID_INPUT", "key cannot be empty")
	}

	start := time.Now()
	defer func() { rc.metrics.operationDuration.WithLabelValues("get").Observe(time.Since(start).Seconds()) }()

	_, err := rc.breaker.Execute(func() (interface{}, error) {
		data, err := rc.client.Get(ctx, key).Bytes()
		if err == redis.Nil {
			rc.metrics.cacheMisses.Inc()
			return nil, irrigoerrors.NewError("NOT_FOUND", "key not found")
		}
		if err != nil {
			rc.metrics.operationErrors.WithLabelValues("get").Inc()
			return nil, irrigoerrors.WrapError(err, "failed to get value from Redis")
		}

		if len(data) > 0 && data[0] == compressedPrefix {
			decompressed, err := s2.Decode(nil, data[1:])
			if err != nil {
				return nil, irrigoerrors.WrapError(err, "failed to decompress data")
			}
			data = decompressed
		}

		if err := json.Unmarshal(data, value); err != nil {
			return nil, irrigoerrors.WrapError(err, "failed to unmarshal value")
		}

		rc.metrics.cacheHits.Inc()
		return nil, nil
	})

	return err
}

// Close releases the underlying connection pool.
func (rc *RedisClient) Close() error {
	if err := rc.client.Close(); err != nil {
		return irrigoerrors.WrapError(err, "failed to close Redis client")
	}
	return nil
}

// Health pings Redis directly, bypassing the circuit breaker.
func (rc *RedisClient) Health(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}
