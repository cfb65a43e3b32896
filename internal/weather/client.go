// Package weather resolves a DailyWeather forecast window for a zone's
// location over HTTP, caching results in Redis and guarding the upstream
// call with a circuit breaker. The scheduling kernel never imports this
// package; callers (internal/scheduler's orchestration layer) materialise
// the result and hand it to scheduler.PlanZoneSchedule.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"

	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/internal/utils/cache"
	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
	"github.com/chrisharrington/irrigo/pkg/types"
)

// ErrUnavailable is returned when the upstream forecast provider cannot be
// reached and no cached forecast covers the request.
var ErrUnavailable = irrigoerrors.NewError("WEATHER_UNAVAILABLE", "weather provider unavailable")

// Client resolves forecasts for a location, backed by an HTTP endpoint, a
// Redis cache, and a circuit breaker that trips after repeated upstream
// failures.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	cache      *cache.RedisClient
	cacheTTL   time.Duration
	breaker    *gobreaker.CircuitBreaker
	metrics    *metrics
}

type metrics struct {
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	upstreamErrors  prometheus.Counter
}

// Metrics are registered once per process; every Client shares them so
// repeated NewClient calls (tests, reconfiguration) do not collide on the
// default registry.
var (
	sharedMetrics     *metrics
	sharedMetricsOnce sync.Once
)

func newMetrics() *metrics {
	sharedMetricsOnce.Do(func() {
		sharedMetrics = buildMetrics()
	})
	return sharedMetrics
}

func buildMetrics() *metrics {
	m := &metrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "irrigo",
				Subsystem: "weather_client",
				Name:      "request_duration_seconds",
				Help:      "Duration of upstream forecast requests in seconds.",
			},
			[]string{"outcome"},
		),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "irrigo",
			Subsystem: "weather_client",
			Name:      "cache_hits_total",
			Help:      "Total forecast requests served from cache.",
		}),
		upstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "irrigo",
			Subsystem: "weather_client",
			Name:      "upstream_errors_total",
			Help:      "Total failed upstream forecast requests.",
		}),
	}
	prometheus.MustRegister(m.requestDuration, m.cacheHits, m.upstreamErrors)
	return m
}

// NewClient builds a weather Client from cfg. redisClient may be nil, in
// which case every call bypasses the cache.
func NewClient(cfg *types.WeatherConfig, redisClient *cache.RedisClient) *Client {
	breakerSettings := gobreaker.Settings{
		Name:        "weather-circuit-breaker",
		MaxRequests: cfg.CircuitBreakerMaxRequests,
		Interval:    cfg.CircuitBreakerInterval,
		Timeout:     cfg.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		cache:      redisClient,
		cacheTTL:   cfg.CacheTTL,
		breaker:    gobreaker.NewCircuitBreaker(breakerSettings),
		metrics:    newMetrics(),
	}
}

type forecastDay struct {
	Date        time.Time  `json:"date"`
	ET0MmPerDay *float64   `json:"et0MmPerDay"`
	RainfallMm  *float64   `json:"rainfallMm"`
	Sunrise     *time.Time `json:"sunrise"`
}

// Forecast resolves a chronologically ordered weather window of length
// days starting today, for the given location. A cache hit skips the
// upstream request entirely; a cache miss goes through the circuit
// breaker.
func (c *Client) Forecast(ctx context.Context, loc scheduler.Location, days int) ([]scheduler.DailyWeather, bool, error) {
	cacheKey := fmt.Sprintf("weather:forecast:%.4f:%.4f:%d", loc.LatitudeDeg, loc.LongitudeDeg, days)

	if c.cache != nil {
		var cached []forecastDay
		if err := c.cache.Get(ctx, cacheKey, &cached); err == nil {
			c.metrics.cacheHits.Inc()
			return toDailyWeather(cached), true, nil
		}
	}

	start := time.Now()
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, loc, days)
	})
	outcome := "success"
	if err != nil {
		outcome = "failure"
		c.metrics.upstreamErrors.Inc()
	}
	c.metrics.requestDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		return nil, false, irrigoerrors.WrapError(fmt.Errorf("%w: %v", ErrUnavailable, err), "forecast request failed")
	}

	fetched := result.([]forecastDay)

	if c.cache != nil {
		_ = c.cache.Set(ctx, cacheKey, fetched, c.cacheTTL)
	}

	return toDailyWeather(fetched), false, nil
}

func (c *Client) fetch(ctx context.Context, loc scheduler.Location, days int) ([]forecastDay, error) {
	url := fmt.Sprintf("%s/forecast?lat=%.6f&lon=%.6f&days=%d&key=%s", c.baseURL, loc.LatitudeDeg, loc.LongitudeDeg, days, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast provider returned status %d", resp.StatusCode)
	}

	var out struct {
		Days []forecastDay `json:"days"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}

	return out.Days, nil
}

func toDailyWeather(days []forecastDay) []scheduler.DailyWeather {
	result := make([]scheduler.DailyWeather, len(days))
	for i, d := range days {
		result[i] = scheduler.DailyWeather{
			Date:        d.Date,
			ET0MmPerDay: d.ET0MmPerDay,
			RainfallMm:  d.RainfallMm,
			Sunrise:     d.Sunrise,
		}
	}
	return result
}
