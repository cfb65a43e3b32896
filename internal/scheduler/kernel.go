package scheduler

// PlanZoneSchedule is the kernel's single entrypoint. Given a zone's
// hydraulic configuration and a chronologically-ordered weather window, it
// returns the schedule entries for days on which irrigation was triggered.
//
// PlanZoneSchedule performs no I/O and has no observable side effects; the
// same (zone, weather) pair always produces the same result.
func PlanZoneSchedule(zone Zone, weather []DailyWeather) ([]IrrigationScheduleEntry, error) {
	if err := validateZone(zone); err != nil {
		return nil, err
	}

	if isDisabled(zone) {
		return nil, nil
	}

	hyd := deriveHydraulics(zone)
	return runWaterBalance(zone, weather, hyd), nil
}
