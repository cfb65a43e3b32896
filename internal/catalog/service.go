package catalog

import (
	"context"
	"sync"

	"github.com/pkg/errors"

	"github.com/chrisharrington/irrigo/internal/models"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/pkg/constants"
)

// ErrCatalogNotFound is returned when neither the override store nor the
// built-in table has a record for the requested identifier.
var ErrCatalogNotFound = errors.New("catalog record not found")

// OverrideStore looks up operator-registered catalogue overrides. A nil
// result with a nil error means no override exists for the identifier.
// Implemented by models.CatalogStore.
type OverrideStore interface {
	GrassOverride(ctx context.Context, id string) (*models.GrassCatalogOverride, error)
	SoilOverride(ctx context.Context, id string) (*models.SoilCatalogOverride, error)
}

// Service resolves grass and soil identifiers to scheduler profiles. An
// optional override store lets an operator add or shadow entries beyond the
// built-in tables without a redeploy; a nil store falls back to the
// built-ins only.
type Service struct {
	overrides OverrideStore
	mu        sync.RWMutex
}

// NewService creates a catalog Service. overrides may be nil, in which case
// only the built-in tables are consulted.
func NewService(overrides OverrideStore) *Service {
	return &Service{overrides: overrides}
}

// Grass resolves id to a GrassProfile, preferring a registered override
// over the built-in table.
func (s *Service) Grass(ctx context.Context, id string) (scheduler.GrassProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.overrides != nil {
		override, err := s.overrides.GrassOverride(ctx, id)
		if err != nil {
			return scheduler.GrassProfile{}, errors.Wrap(err, "failed to query grass override")
		}
		if override != nil {
			return scheduler.GrassProfile{Name: override.Name, Kc: override.Kc}, nil
		}
	}

	if profile, ok := defaultGrasses[id]; ok {
		return profile, nil
	}

	return scheduler.GrassProfile{}, errors.Wrapf(ErrCatalogNotFound, "grass %q", id)
}

// Soil resolves id to a SoilProfile, preferring a registered override over
// the built-in table.
func (s *Service) Soil(ctx context.Context, id string) (scheduler.SoilProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.overrides != nil {
		override, err := s.overrides.SoilOverride(ctx, id)
		if err != nil {
			return scheduler.SoilProfile{}, errors.Wrap(err, "failed to query soil override")
		}
		if override != nil {
			return scheduler.SoilProfile{
				Name:                override.Name,
				AWHCMmPerM:          override.AWHCMmPerM,
				InfiltrationMmPerHr: override.InfiltrationMmPerHr,
			}, nil
		}
	}

	if profile, ok := defaultSoils[id]; ok {
		return profile, nil
	}

	return scheduler.SoilProfile{}, errors.Wrapf(ErrCatalogNotFound, "soil %q", id)
}

// SoakMinutesFor exposes the soak-interval table, the same breakpoints the
// scheduler's hydraulic model uses, to callers outside the kernel.
func SoakMinutesFor(infiltrationMmPerHr float64) float64 {
	switch {
	case infiltrationMmPerHr >= constants.SoakInfiltrationHigh:
		return constants.SoakMinutesHigh
	case infiltrationMmPerHr >= constants.SoakInfiltrationMedium:
		return constants.SoakMinutesMedium
	case infiltrationMmPerHr >= constants.SoakInfiltrationLow:
		return constants.SoakMinutesLow
	case infiltrationMmPerHr >= constants.SoakInfiltrationVeryLow:
		return constants.SoakMinutesVeryLow
	default:
		return constants.SoakMinutesLowest
	}
}
