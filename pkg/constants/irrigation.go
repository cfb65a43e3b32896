// Package constants also centralizes the agronomic and hydraulic constants
// used by the irrigation scheduling kernel.
package constants

// Soak interval breakpoints, in mm/hr of soil infiltration rate, and their
// associated idle soak duration in minutes. See Hydraulic Model (spec §4.1).
const (
	SoakInfiltrationHigh    = 20.0 // >= this: 15 min soak
	SoakInfiltrationMedium  = 12.0 // >= this and < High: 25 min soak
	SoakInfiltrationLow     = 8.0  // >= this and < Medium: 35 min soak
	SoakInfiltrationVeryLow = 5.0  // >= this and < Low: 45 min soak
	// below SoakInfiltrationVeryLow: 60 min soak

	SoakMinutesHigh    = 15.0
	SoakMinutesMedium  = 25.0
	SoakMinutesLow     = 35.0
	SoakMinutesVeryLow = 45.0
	SoakMinutesLowest  = 60.0
)

// RainInterceptionThresholdMm is the rainfall depth, in mm, below which a
// day's rain is discounted entirely as canopy interception loss.
const RainInterceptionThresholdMm = 2.0

// RainEffectivenessFactor is applied to rainfall at or above the
// interception threshold to account for runoff and uneven distribution.
const RainEffectivenessFactor = 0.8

// DefaultSunriseHour/Minute/Second is the local time of day used when a
// weather day carries no explicit sunrise.
const (
	DefaultSunriseHour   = 6
	DefaultSunriseMinute = 0
	DefaultSunriseSecond = 0
)
