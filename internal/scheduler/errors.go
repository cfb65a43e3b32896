package scheduler

import (
	"errors"
	"fmt"
)

// ErrInvalidZone is returned by PlanZoneSchedule when the caller's Zone
// configuration violates a precondition the kernel will not silently paper
// over (e.g. a division by zero that would otherwise poison the output
// with NaN). Callers should reject these zones before scheduling, not rely
// on the kernel to catch them; this check exists as a defensive backstop.
var ErrInvalidZone = errors.New("invalid zone configuration")

// validateZone rejects configurations that would force a division by zero
// or an out-of-domain result further down the pipeline. It intentionally
// does not validate agronomic plausibility (e.g. suspiciously high AWHC) —
// only the preconditions §4 depends on for totality.
func validateZone(zone Zone) error {
	switch {
	case zone.RootDepthM <= 0:
		return fmt.Errorf("%w: root depth must be positive, got %v", ErrInvalidZone, zone.RootDepthM)
	case zone.AllowableDepletionFraction <= 0 || zone.AllowableDepletionFraction > 1:
		return fmt.Errorf("%w: allowable depletion fraction must be in (0, 1], got %v", ErrInvalidZone, zone.AllowableDepletionFraction)
	case zone.IrrigationEfficiency <= 0 || zone.IrrigationEfficiency > 1:
		return fmt.Errorf("%w: irrigation efficiency must be in (0, 1], got %v", ErrInvalidZone, zone.IrrigationEfficiency)
	case zone.Grass.Kc <= 0 || zone.Grass.Kc > 1:
		return fmt.Errorf("%w: grass crop coefficient must be in (0, 1], got %v", ErrInvalidZone, zone.Grass.Kc)
	case zone.Soil.AWHCMmPerM <= 0:
		return fmt.Errorf("%w: soil available water-holding capacity must be positive, got %v", ErrInvalidZone, zone.Soil.AWHCMmPerM)
	case zone.Soil.InfiltrationMmPerHr < 0:
		return fmt.Errorf("%w: soil infiltration rate cannot be negative, got %v", ErrInvalidZone, zone.Soil.InfiltrationMmPerHr)
	case zone.FlowRateLPerMin < 0:
		return fmt.Errorf("%w: flow rate cannot be negative, got %v", ErrInvalidZone, zone.FlowRateLPerMin)
	}

	if zone.PrecipitationRateMmPerHr != nil {
		if *zone.PrecipitationRateMmPerHr <= 0 {
			return fmt.Errorf("%w: explicit precipitation rate must be positive, got %v", ErrInvalidZone, *zone.PrecipitationRateMmPerHr)
		}
		return nil
	}

	if zone.AreaM2 <= 0 {
		return fmt.Errorf("%w: irrigated area must be positive when no explicit precipitation rate is supplied, got %v", ErrInvalidZone, zone.AreaM2)
	}

	return nil
}
