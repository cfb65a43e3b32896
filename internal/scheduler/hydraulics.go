package scheduler

import "github.com/chrisharrington/irrigo/pkg/constants"

// hydraulicProfile holds the pure derivations of §4.1: precipitation rate,
// the single-cycle duration ceiling imposed by soil infiltration, the idle
// soak interval between cycles, and the TAW/RAW bounds on depletion.
type hydraulicProfile struct {
	PrecipitationRateMmPerHr float64
	// MaxCycleMinutes is the longest single run that applies at most one
	// infiltration-depth-worth of water. Zero means unbounded (infiltration
	// is zero, so any single cycle is allowed).
	MaxCycleMinutes float64
	SoakMinutes     float64
	TAWMm           float64
	RAWMm           float64
}

// deriveHydraulics computes a zone's hydraulic profile. It is total over
// any zone that has already passed validateZone.
func deriveHydraulics(zone Zone) hydraulicProfile {
	taw := zone.Soil.AWHCMmPerM * zone.RootDepthM
	raw := zone.AllowableDepletionFraction * taw

	var precip float64
	if zone.PrecipitationRateMmPerHr != nil {
		precip = *zone.PrecipitationRateMmPerHr
	} else {
		precip = 60 * zone.FlowRateLPerMin / zone.AreaM2
	}

	var maxCycle float64
	if zone.Soil.InfiltrationMmPerHr > 0 {
		maxCycle = (zone.Soil.InfiltrationMmPerHr / precip) * 60
	}

	return hydraulicProfile{
		PrecipitationRateMmPerHr: precip,
		MaxCycleMinutes:          maxCycle,
		SoakMinutes:              soakMinutesFor(zone.Soil.InfiltrationMmPerHr),
		TAWMm:                    taw,
		RAWMm:                    raw,
	}
}

// soakMinutesFor implements the piecewise-constant soak table of §4.1.
func soakMinutesFor(infiltrationMmPerHr float64) float64 {
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
