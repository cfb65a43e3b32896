package scheduler

import (
	"math"
	"time"
)

// planCycles implements the Cycle Planner (§4.2). Given a total required
// runtime, a per-cycle ceiling, a sunrise anchor, and a soak interval, it
// returns chronologically-ordered, equal-length cycles that collectively
// total runtimeMin and end no later than sunrise.
//
// planCycles is total over finite, non-negative inputs: it never errors.
func planCycles(runtimeMin float64, maxCycleMin float64, sunrise time.Time, soakMin float64) []IrrigationCycle {
	if runtimeMin <= 0 {
		return nil
	}

	if maxCycleMin <= 0 || runtimeMin <= maxCycleMin {
		start := addMinutes(sunrise, -runtimeMin)
		return []IrrigationCycle{{StartTime: start, DurationMin: round1(runtimeMin)}}
	}

	n := int(math.Ceil(runtimeMin / maxCycleMin))
	d := runtimeMin / float64(n)

	cycles := make([]IrrigationCycle, n)
	for i := 0; i < n; i++ {
		// i counts back from the latest cycle (i=0); cycle i ends
		// (d+soak) minutes earlier than cycle i-1 for i>0.
		end := addMinutes(sunrise, -float64(i)*(d+soakMin))
		start := addMinutes(end, -d)
		cycles[n-1-i] = IrrigationCycle{StartTime: start, DurationMin: round1(d)}
	}

	return cycles
}

func addMinutes(t time.Time, minutes float64) time.Time {
	return t.Add(time.Duration(minutes * float64(time.Minute)))
}

// round1 rounds v to one decimal place using half-away-from-zero.
func round1(v float64) float64 {
	if v < 0 {
		return -round1(-v)
	}
	return math.Floor(v*10+0.5) / 10
}
