// Package scheduler implements the irrigation scheduling kernel: a pure,
// synchronous soil-water-balance state machine coupled with a hydraulic
// cycle planner. Nothing in this package performs I/O, parses JSON, or
// reads configuration — callers resolve a Zone and a weather window and
// hand them to PlanZoneSchedule.
package scheduler

import "time"

// Location is carried through from a Zone but never consulted by the
// kernel itself; it exists for collaborators such as internal/weather that
// need to resolve a forecast for the zone's position.
type Location struct {
	LatitudeDeg  float64
	LongitudeDeg float64
}

// GrassProfile describes the turfgrass planted in a zone.
type GrassProfile struct {
	Name string
	// Kc is the crop coefficient, a grass-specific multiplier on ET0, in (0, 1].
	Kc float64
}

// SoilProfile describes the physical properties of a zone's soil.
type SoilProfile struct {
	Name string
	// AWHCMmPerM is the available water-holding capacity, in mm of water
	// per metre of root depth.
	AWHCMmPerM float64
	// InfiltrationMmPerHr is the rate at which the soil can absorb surface
	// water without runoff. Zero means the cycle planner treats the zone
	// as having no single-cycle ceiling.
	InfiltrationMmPerHr float64
}

// Zone is the read-only agronomic and hydraulic configuration of a single
// irrigation zone.
type Zone struct {
	ID    string
	Label string

	// IsEnabled is nil or true by default; only an explicit false disables
	// scheduling for the zone.
	IsEnabled *bool

	RootDepthM                 float64
	AllowableDepletionFraction float64
	IrrigationEfficiency       float64

	FlowRateLPerMin float64
	AreaM2          float64

	// PrecipitationRateMmPerHr overrides the flow/area derivation when set.
	PrecipitationRateMmPerHr *float64

	// CurrentDepletionMm is the zone's starting depletion; it is clamped to
	// [0, TAW] on entry and never read again after that.
	CurrentDepletionMm float64

	Grass GrassProfile
	Soil  SoilProfile

	Location *Location
}

// DailyWeather is one chronologically-ordered day of forecast or
// observed weather for a zone.
type DailyWeather struct {
	// Date is the calendar day this entry describes.
	Date time.Time

	// ET0MmPerDay is reference evapotranspiration in mm/day. A nil value
	// is treated as 0; negative values are clamped to 0.
	ET0MmPerDay *float64

	// RainfallMm is the day's rainfall in mm. A nil value is treated as 0.
	RainfallMm *float64

	// Sunrise is the local sunrise date-time for Date. A nil value
	// defaults to 06:00:00 local on Date.
	Sunrise *time.Time
}

// IrrigationCycle is a single scheduled run of the irrigation system.
type IrrigationCycle struct {
	StartTime   time.Time
	DurationMin float64
}

// IrrigationScheduleEntry is the kernel's output for a single day on which
// irrigation was triggered.
type IrrigationScheduleEntry struct {
	Date   time.Time
	ZoneID string
	Cycles []IrrigationCycle

	AppliedDepthMm    float64
	DepletionBeforeMm float64
	DepletionAfterMm  float64

	// UnmetDepthMm is the REDESIGN FLAGS addition: the net depth that a
	// low-efficiency zone could not apply because gross depth was capped
	// at one TAW's worth of water. Zero when the event fully refilled the
	// root zone.
	UnmetDepthMm float64
}
