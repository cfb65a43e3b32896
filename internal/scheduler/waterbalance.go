package scheduler

import (
	"math"
	"time"

	"github.com/chrisharrington/irrigo/pkg/constants"
)

// runWaterBalance implements the Water Balance Driver (§4.3). It iterates
// weather in order, maintains a single depletion accumulator, and emits at
// most one IrrigationScheduleEntry per input day.
func runWaterBalance(zone Zone, weather []DailyWeather, hyd hydraulicProfile) []IrrigationScheduleEntry {
	if isDisabled(zone) {
		return nil
	}

	depletion := clamp(zone.CurrentDepletionMm, 0, hyd.TAWMm)

	var entries []IrrigationScheduleEntry
	for _, day := range weather {
		sunrise := resolveSunrise(day)

		etc := zone.Grass.Kc * math.Max(0, valueOrZero(day.ET0MmPerDay))

		rainfall := valueOrZero(day.RainfallMm)
		effectiveRain := 0.0
		if rainfall >= constants.RainInterceptionThresholdMm {
			effectiveRain = constants.RainEffectivenessFactor * rainfall
		}

		depletion = clamp(depletion+etc-effectiveRain, 0, hyd.TAWMm)

		if depletion >= hyd.RAWMm {
			entries = append(entries, triggerIrrigation(zone, hyd, day.Date, sunrise, depletion))

			// Re-apply the same day's ET/rain after the refill so the
			// accumulator stays continuous into the next day.
			depletion = clamp(0+etc-effectiveRain, 0, hyd.TAWMm)
		}

		depletion = clamp(depletion, 0, hyd.TAWMm)
	}

	return entries
}

// triggerIrrigation computes and emits a single schedule entry for a day on
// which the trigger test fired. depletionBefore is the pre-irrigation
// depletion; the accumulator itself is reset to 0 by the caller.
func triggerIrrigation(zone Zone, hyd hydraulicProfile, date, sunrise time.Time, depletionBefore float64) IrrigationScheduleEntry {
	netRequired := depletionBefore
	grossDepth := math.Min(netRequired/zone.IrrigationEfficiency, hyd.TAWMm)
	appliedNet := grossDepth * zone.IrrigationEfficiency
	unmet := math.Max(0, netRequired-appliedNet)

	runtimeMin := (grossDepth / hyd.PrecipitationRateMmPerHr) * 60
	cycles := planCycles(runtimeMin, hyd.MaxCycleMinutes, sunrise, hyd.SoakMinutes)

	return IrrigationScheduleEntry{
		Date:              date,
		ZoneID:            zone.ID,
		Cycles:            cycles,
		AppliedDepthMm:    round1(grossDepth),
		DepletionBeforeMm: round1(depletionBefore),
		DepletionAfterMm:  round1(0),
		UnmetDepthMm:      round1(unmet),
	}
}

func isDisabled(zone Zone) bool {
	return zone.IsEnabled != nil && !*zone.IsEnabled
}

func resolveSunrise(day DailyWeather) time.Time {
	if day.Sunrise != nil {
		return *day.Sunrise
	}
	y, m, d := day.Date.Date()
	return time.Date(y, m, d, constants.DefaultSunriseHour, constants.DefaultSunriseMinute, constants.DefaultSunriseSecond, 0, day.Date.Location())
}

func valueOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
