package routes

import (
	"github.com/chrisharrington/irrigo/internal/models"
	"github.com/chrisharrington/irrigo/internal/scheduler"
	"github.com/chrisharrington/irrigo/pkg/dto"
)

func toZoneResponse(record *models.ZoneRecord) dto.ZoneResponse {
	return dto.ZoneResponse{
		ID:                         record.ID,
		Label:                      record.Label,
		IsEnabled:                  record.IsEnabled,
		RootDepthM:                 record.RootDepthM,
		AllowableDepletionFraction: record.AllowableDepletionFraction,
		IrrigationEfficiency:       record.IrrigationEfficiency,
		FlowRateLPerMin:            record.FlowRateLPerMin,
		AreaM2:                     record.AreaM2,
		PrecipitationRateMmPerHr:   record.PrecipitationRateMmPerHr,
		CurrentDepletionMm:         record.CurrentDepletionMm,
		GrassID:                    record.GrassID,
		SoilID:                     record.SoilID,
		CreatedAt:                  record.CreatedAt,
		UpdatedAt:                  record.UpdatedAt,
	}
}

func toKernelWeather(days []dto.DailyWeatherDTO) []scheduler.DailyWeather {
	if len(days) == 0 {
		return nil
	}
	window := make([]scheduler.DailyWeather, len(days))
	for i, d := range days {
		window[i] = scheduler.DailyWeather{
			Date:        d.Date,
			ET0MmPerDay: d.ET0MmPerDay,
			RainfallMm:  d.RainfallMm,
			Sunrise:     d.Sunrise,
		}
	}
	return window
}

func toWeatherDTOs(days []scheduler.DailyWeather) []dto.DailyWeatherDTO {
	out := make([]dto.DailyWeatherDTO, len(days))
	for i, d := range days {
		out[i] = dto.DailyWeatherDTO{
			Date:        d.Date,
			ET0MmPerDay: d.ET0MmPerDay,
			RainfallMm:  d.RainfallMm,
			Sunrise:     d.Sunrise,
		}
	}
	return out
}

func toScheduleResponse(zoneID string, planned []scheduler.PlannedEntry) dto.ScheduleResponse {
	entries := make([]dto.ScheduleEntryDTO, len(planned))
	for i, p := range planned {
		cycles := make([]dto.IrrigationCycleDTO, len(p.Entry.Cycles))
		for j, c := range p.Entry.Cycles {
			cycles[j] = dto.IrrigationCycleDTO{StartTime: c.StartTime, DurationMin: c.DurationMin}
		}
		entries[i] = dto.ScheduleEntryDTO{
			Date:              p.Entry.Date,
			ZoneID:            p.Entry.ZoneID,
			Cycles:            cycles,
			AppliedDepthMm:    p.Entry.AppliedDepthMm,
			DepletionBeforeMm: p.Entry.DepletionBeforeMm,
			DepletionAfterMm:  p.Entry.DepletionAfterMm,
			UnmetDepthMm:      p.Entry.UnmetDepthMm,
			Advisory:          p.Advisory,
		}
	}
	return dto.ScheduleResponse{ZoneID: zoneID, Entries: entries}
}
