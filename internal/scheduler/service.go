package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/chrisharrington/irrigo/internal/models"
	irrigoerrors "github.com/chrisharrington/irrigo/internal/utils/errors"
)

// ZoneLoader loads persisted zone configuration. Implemented by
// models.ZoneStore; tests substitute an in-memory stub.
type ZoneLoader interface {
	ZoneByID(ctx context.Context, id string) (*models.ZoneRecord, error)
}

// CatalogResolver resolves grass and soil identifiers to kernel profiles.
// Implemented by catalog.Service.
type CatalogResolver interface {
	Grass(ctx context.Context, id string) (GrassProfile, error)
	Soil(ctx context.Context, id string) (SoilProfile, error)
}

// ForecastProvider materialises a weather window for a location.
// Implemented by weather.Client.
type ForecastProvider interface {
	Forecast(ctx context.Context, loc Location, days int) ([]DailyWeather, bool, error)
}

// AdvisoryGenerator produces a best-effort explanation for a schedule
// entry. Implemented by advisory.Client.
type AdvisoryGenerator interface {
	Explain(ctx context.Context, zoneLabel string, entry IrrigationScheduleEntry) (string, error)
}

// PlannedEntry pairs a kernel schedule entry with its optional advisory
// text. The advisory is empty whenever generation was disabled or failed.
type PlannedEntry struct {
	Entry    IrrigationScheduleEntry
	Advisory string
}

var (
	computeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "irrigo",
		Subsystem: "scheduler",
		Name:      "compute_latency_seconds",
		Help:      "Latency of full schedule computations including collaborator resolution.",
		Buckets:   prometheus.DefBuckets,
	})

	entriesEmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "irrigo",
		Subsystem: "scheduler",
		Name:      "entries_emitted_total",
		Help:      "Total irrigation schedule entries emitted across all computations.",
	})

	advisoryFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "irrigo",
		Subsystem: "scheduler",
		Name:      "advisory_failures_total",
		Help:      "Total advisory generations that failed and were dropped.",
	})

	registerServiceMetrics sync.Once
)

// ZoneSchedulerService is the seam between the pure kernel and everything
// impure: it resolves a persisted zone, its catalogue profiles, and a
// weather window, invokes PlanZoneSchedule, and attaches advisory text.
// Schedule results are never persisted.
type ZoneSchedulerService struct {
	zones    ZoneLoader
	catalog  CatalogResolver
	weather  ForecastProvider
	advisory AdvisoryGenerator
	logger   *zap.Logger
	mu       sync.RWMutex
}

// NewZoneSchedulerService wires the service. advisory may be nil, in which
// case entries carry no advisory text.
func NewZoneSchedulerService(zones ZoneLoader, catalog CatalogResolver, weather ForecastProvider, advisory AdvisoryGenerator, logger *zap.Logger) (*ZoneSchedulerService, error) {
	if zones == nil || catalog == nil {
		return nil, irrigoerrors.NewError("VALIDATION_ERROR", "zone store and catalog are required")
	}

	registerServiceMetrics.Do(func() {
		prometheus.MustRegister(computeLatency, entriesEmitted, advisoryFailures)
	})

	return &ZoneSchedulerService{
		zones:    zones,
		catalog:  catalog,
		weather:  weather,
		advisory: advisory,
		logger:   logger,
	}, nil
}

// ComputeSchedule plans irrigation for the persisted zone zoneID. When
// inline is non-empty it is used verbatim as the weather window (testing,
// backfill); otherwise a horizonDays forecast is resolved for the zone's
// location. Kernel validation errors (ErrInvalidZone) pass through
// unchanged so callers can map them to the right failure class.
func (s *ZoneSchedulerService) ComputeSchedule(ctx context.Context, zoneID string, horizonDays int, inline []DailyWeather) ([]PlannedEntry, error) {
	start := time.Now()
	defer func() {
		computeLatency.Observe(time.Since(start).Seconds())
	}()

	record, err := s.zones.ZoneByID(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	zone, err := s.resolveZone(ctx, record)
	if err != nil {
		return nil, err
	}

	window := inline
	if len(window) == 0 {
		if s.weather == nil || zone.Location == nil {
			return nil, irrigoerrors.NewError("WEATHER_UNAVAILABLE", "zone has no location and no inline weather was supplied")
		}
		window, _, err = s.weather.Forecast(ctx, *zone.Location, horizonDays)
		if err != nil {
			return nil, err
		}
	}

	entries, err := PlanZoneSchedule(zone, window)
	if err != nil {
		return nil, err
	}
	entriesEmitted.Add(float64(len(entries)))

	planned := make([]PlannedEntry, len(entries))
	for i, entry := range entries {
		planned[i] = PlannedEntry{Entry: entry}
		if s.advisory == nil {
			continue
		}
		text, advErr := s.advisory.Explain(ctx, record.Label, entry)
		if advErr != nil {
			advisoryFailures.Inc()
			if s.logger != nil {
				s.logger.Debug("advisory generation failed",
					zap.String("zone_id", zoneID),
					zap.Error(advErr),
				)
			}
			continue
		}
		planned[i].Advisory = text
	}

	if s.logger != nil {
		s.logger.Info("schedule computed",
			zap.String("zone_id", zoneID),
			zap.Int("weather_days", len(window)),
			zap.Int("entries", len(entries)),
		)
	}

	return planned, nil
}

// resolveZone converts a persisted record into the kernel's Zone by
// resolving its catalogue references.
func (s *ZoneSchedulerService) resolveZone(ctx context.Context, record *models.ZoneRecord) (Zone, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	grass, err := s.catalog.Grass(ctx, record.GrassID)
	if err != nil {
		return Zone{}, err
	}
	soil, err := s.catalog.Soil(ctx, record.SoilID)
	if err != nil {
		return Zone{}, err
	}

	enabled := record.IsEnabled
	zone := Zone{
		ID:                         record.ID,
		Label:                      record.Label,
		IsEnabled:                  &enabled,
		RootDepthM:                 record.RootDepthM,
		AllowableDepletionFraction: record.AllowableDepletionFraction,
		IrrigationEfficiency:       record.IrrigationEfficiency,
		FlowRateLPerMin:            record.FlowRateLPerMin,
		AreaM2:                     record.AreaM2,
		PrecipitationRateMmPerHr:   record.PrecipitationRateMmPerHr,
		CurrentDepletionMm:         record.CurrentDepletionMm,
		Grass:                      grass,
		Soil:                       soil,
	}

	if record.LatitudeDeg != nil && record.LongitudeDeg != nil {
		zone.Location = &Location{
			LatitudeDeg:  *record.LatitudeDeg,
			LongitudeDeg: *record.LongitudeDeg,
		}
	}

	return zone, nil
}
