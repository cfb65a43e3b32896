package dto

import "time"

// ScheduleRequest asks the gateway to plan a schedule for a zone over a
// forecast horizon. Weather is resolved server-side via internal/weather
// unless the caller supplies it directly for testing or backfill.
type ScheduleRequest struct {
	ZoneID      string            `json:"zoneId" validate:"required"`
	HorizonDays int               `json:"horizonDays" validate:"required,gt=0,lte=14"`
	Weather     []DailyWeatherDTO `json:"weather,omitempty" validate:"omitempty,dive"`
}

// DailyWeatherDTO is the wire form of scheduler.DailyWeather.
type DailyWeatherDTO struct {
	Date        time.Time  `json:"date" validate:"required"`
	ET0MmPerDay *float64   `json:"et0MmPerDay,omitempty"`
	RainfallMm  *float64   `json:"rainfallMm,omitempty"`
	Sunrise     *time.Time `json:"sunrise,omitempty"`
}

// IrrigationCycleDTO is the wire form of scheduler.IrrigationCycle.
type IrrigationCycleDTO struct {
	StartTime   time.Time `json:"startTime"`
	DurationMin float64   `json:"durationMin"`
}

// ScheduleEntryDTO is the wire form of scheduler.IrrigationScheduleEntry,
// optionally carrying a best-effort advisory note.
type ScheduleEntryDTO struct {
	Date   time.Time            `json:"date"`
	ZoneID string               `json:"zoneId"`
	Cycles []IrrigationCycleDTO `json:"cycles"`

	AppliedDepthMm    float64 `json:"appliedDepthMm"`
	DepletionBeforeMm float64 `json:"depletionBeforeMm"`
	DepletionAfterMm  float64 `json:"depletionAfterMm"`
	UnmetDepthMm      float64 `json:"unmetDepthMm"`

	Advisory string `json:"advisory,omitempty"`
}

// ScheduleResponse wraps the entries produced for one zone.
type ScheduleResponse struct {
	ZoneID  string             `json:"zoneId"`
	Entries []ScheduleEntryDTO `json:"entries"`
}
