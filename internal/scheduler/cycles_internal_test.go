package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCyclesZeroRuntime(t *testing.T) {
	sunrise := time.Date(2026, time.June, 1, 6, 0, 0, 0, time.UTC)
	assert.Nil(t, planCycles(0, 10, sunrise, 15))
	assert.Nil(t, planCycles(-5, 10, sunrise, 15))
}

func TestPlanCyclesSingleWhenUnderMax(t *testing.T) {
	sunrise := time.Date(2026, time.June, 1, 6, 0, 0, 0, time.UTC)
	cycles := planCycles(20, 30, sunrise, 15)
	require.Len(t, cycles, 1)
	assert.Equal(t, 20.0, cycles[0].DurationMin)
	assert.Equal(t, sunrise.Add(-20*time.Minute), cycles[0].StartTime)
}

func TestPlanCyclesExactlyAtMaxIsSingleCycle(t *testing.T) {
	sunrise := time.Date(2026, time.June, 1, 6, 0, 0, 0, time.UTC)
	cycles := planCycles(30, 30, sunrise, 15)
	require.Len(t, cycles, 1)
}

func TestPlanCyclesUnboundedWhenMaxIsZero(t *testing.T) {
	sunrise := time.Date(2026, time.June, 1, 6, 0, 0, 0, time.UTC)
	cycles := planCycles(120, 0, sunrise, 15)
	require.Len(t, cycles, 1)
	assert.Equal(t, 120.0, cycles[0].DurationMin)
}

func TestPlanCyclesSplitsEqually(t *testing.T) {
	sunrise := time.Date(2026, time.June, 1, 6, 0, 0, 0, time.UTC)
	cycles := planCycles(25, 10, sunrise, 5)
	require.Len(t, cycles, 3)

	for _, c := range cycles {
		assert.InDelta(t, 25.0/3, c.DurationMin, 0.05)
	}

	// Chronological order.
	for i := 1; i < len(cycles); i++ {
		assert.True(t, cycles[i].StartTime.After(cycles[i-1].StartTime))
	}

	// Latest cycle ends exactly at sunrise. Start times are offset by the
	// exact, unrounded cycle length, so the end is computed from that
	// rather than from the one-decimal DurationMin.
	last := cycles[len(cycles)-1]
	end := last.StartTime.Add(time.Duration(25.0 / 3 * float64(time.Minute)))
	assert.WithinDuration(t, sunrise, end, time.Second)
}

func TestRound1HalfAwayFromZero(t *testing.T) {
	assert.Equal(t, 1.3, round1(1.25))
	assert.Equal(t, -1.3, round1(-1.25))
	assert.Equal(t, 0.0, round1(0))
	assert.Equal(t, 33.4, round1(33.35+0.0001))
}

func TestSoakMinutesTable(t *testing.T) {
	assert.Equal(t, 15.0, soakMinutesFor(20))
	assert.Equal(t, 15.0, soakMinutesFor(30))
	assert.Equal(t, 25.0, soakMinutesFor(12))
	assert.Equal(t, 25.0, soakMinutesFor(19.9))
	assert.Equal(t, 35.0, soakMinutesFor(8))
	assert.Equal(t, 45.0, soakMinutesFor(5))
	assert.Equal(t, 60.0, soakMinutesFor(4.9))
	assert.Equal(t, 60.0, soakMinutesFor(0))
}

func TestDeriveHydraulicsExplicitRate(t *testing.T) {
	rate := 9.0
	zone := Zone{
		RootDepthM:                 0.3,
		AllowableDepletionFraction: 0.5,
		PrecipitationRateMmPerHr:   &rate,
		Soil:                       SoilProfile{AWHCMmPerM: 150, InfiltrationMmPerHr: 25},
	}

	hyd := deriveHydraulics(zone)
	assert.Equal(t, 9.0, hyd.PrecipitationRateMmPerHr)
	assert.InDelta(t, 45.0, hyd.TAWMm, 1e-9)
	assert.InDelta(t, 22.5, hyd.RAWMm, 1e-9)
	assert.InDelta(t, (25.0/9.0)*60, hyd.MaxCycleMinutes, 1e-9)
}

func TestDeriveHydraulicsFlowAreaDerivation(t *testing.T) {
	zone := Zone{
		RootDepthM:                 0.3,
		AllowableDepletionFraction: 0.5,
		FlowRateLPerMin:            15,
		AreaM2:                     100,
		Soil:                       SoilProfile{AWHCMmPerM: 150, InfiltrationMmPerHr: 25},
	}

	hyd := deriveHydraulics(zone)
	assert.InDelta(t, 9.0, hyd.PrecipitationRateMmPerHr, 1e-9)
}

func TestDeriveHydraulicsZeroInfiltrationIsUnbounded(t *testing.T) {
	rate := 9.0
	zone := Zone{
		RootDepthM:                 0.3,
		AllowableDepletionFraction: 0.5,
		PrecipitationRateMmPerHr:   &rate,
		Soil:                       SoilProfile{AWHCMmPerM: 150, InfiltrationMmPerHr: 0},
	}

	hyd := deriveHydraulics(zone)
	assert.Equal(t, 0.0, hyd.MaxCycleMinutes)
}
