// Package gateway assembles the chi router fronting the irrigation
// scheduling service: middleware chain, zone and weather routes, health
// probes, Prometheus metrics, and Swagger docs.
package gateway

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/chrisharrington/irrigo/api/gateway/middleware"
	"github.com/chrisharrington/irrigo/api/gateway/routes"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/internal/utils/validator"
	"github.com/chrisharrington/irrigo/pkg/types"
	"github.com/chrisharrington/irrigo/tools/swagger"
)

const requestTimeout = 30 * time.Second

var (
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "irrigo",
			Subsystem: "gateway",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"path", "method", "status"},
	)

	requestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "irrigo",
			Subsystem: "gateway",
			Name:      "requests_total",
			Help:      "Total HTTP requests served.",
		},
		[]string{"path", "method", "status"},
	)

	registerRouterMetrics sync.Once
)

// Deps carries everything the router mounts. Store, Scheduler, and
// Forecasts are interfaces so tests can run the full router against
// in-memory fakes.
type Deps struct {
	Config    *types.ServiceConfig
	Logger    *zap.Logger
	Store     routes.ZoneRepository
	Scheduler routes.SchedulePlanner
	Forecasts scheduler.ForecastProvider
	Health    routes.HealthDeps
}

// NewRouter builds the gateway's full middleware and route tree.
func NewRouter(deps Deps) *chi.Mux {
	registerRouterMetrics.Do(func() {
		prometheus.MustRegister(requestDuration, requestTotal)
	})

	cfg := deps.Config
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	if cfg.API != nil && cfg.API.EnableRequestLogging {
		router.Use(middleware.RequestLogger(deps.Logger))
	}
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(requestTimeout))
	router.Use(chimiddleware.Compress(5))

	if cfg.API != nil && cfg.API.EnableCORS {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.API.AllowedOrigins,
			AllowedMethods:   cfg.API.AllowedMethods,
			AllowedHeaders:   cfg.API.AllowedHeaders,
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	if cfg.API != nil && cfg.API.RateLimit > 0 {
		router.Use(httprate.LimitByIP(cfg.API.RateLimit, cfg.API.RateLimitWindow))
	}

	if cfg.API == nil || cfg.API.EnableMetrics {
		router.Use(metricsMiddleware)
		router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	routes.RegisterHealthRoutes(router, deps.Health)
	swagger.RegisterSwagger(router)

	// Everything under /api/v1 requires authentication (pass-through in
	// development when no signing key is configured).
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(cfg))

		routes.RegisterZoneRoutes(r, routes.ZoneDeps{
			Store:     deps.Store,
			Scheduler: deps.Scheduler,
			Validator: validator.New(),
			Logger:    deps.Logger,
		})

		if deps.Forecasts != nil {
			routes.RegisterWeatherRoutes(r, routes.WeatherDeps{Forecasts: deps.Forecasts})
		}
	})

	return router
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := strconv.Itoa(ww.Status())
		pattern := chi.RouteContext(r.Context()).RoutePattern()
		if pattern == "" {
			pattern = r.URL.Path
		}
		requestDuration.WithLabelValues(pattern, r.Method, status).Observe(time.Since(start).Seconds())
		requestTotal.WithLabelValues(pattern, r.Method, status).Inc()
	})
}
