package core

import (
	"testing"
	"time"

	"github.com/lifetick/lifetick/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func projection(remaining, adjusted, age float64, anchor time.Time) schema.LifeProjection {
	return schema.LifeProjection{
		Mode:                        schema.CurrentMode,
		BaseLifeExpectancyYears:     adjusted,
		AdjustedLifeExpectancyYears: adjusted,
		YearsRemaining:              remaining,
		CurrentAgeYears:             age,
		Anchor:                      anchor,
		BirthYear:                   1986,
		EndYear:                     2068,
	}
}

// TestDecomposeUnits checks the 365.25-day-year decomposition.
func TestDecomposeUnits(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		remaining float64
		years     int
		days      int
		hours     int
		minutes   int
		seconds   int
	}{
		{"exactly one year", 1.0, 1, 0, 0, 0, 0},
		{"half a year", 0.5, 0, 182, 15, 0, 0},
		{"zero", 0, 0, 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Decompose(projection(tt.remaining, 82, 40, anchor), anchor)
			assert.Equal(t, tt.years, data.Years)
			assert.Equal(t, tt.days, data.Days)
			assert.Equal(t, tt.hours, data.Hours)
			assert.Equal(t, tt.minutes, data.Minutes)
			assert.Equal(t, tt.seconds, data.Seconds)
		})
	}
}

// TestDecomposeRoundTrip pins the zero-drift contract at the anchor instant:
// progress equals currentAge/adjusted exactly.
func TestDecomposeRoundTrip(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := projection(42.5365, 82.5365, 40, anchor)

	data := Decompose(p, anchor)
	assert.InDelta(t, 40/82.5365, data.Progress, 1e-12)
	assert.Equal(t, p.BirthYear, data.BirthYear)
	assert.Equal(t, p.EndYear, data.EndYear)
}

// TestDecomposeMonotonicProgress verifies progress never decreases as wall
// time advances against a fixed anchor.
func TestDecomposeMonotonicProgress(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := projection(42.5, 82.5, 40, anchor)

	prev := -1.0
	for i := range 100 {
		now := anchor.Add(time.Duration(i) * 12 * time.Hour)
		progress := Decompose(p, now).Progress
		assert.GreaterOrEqual(t, progress, prev)
		assert.LessOrEqual(t, progress, 1.0)
		prev = progress
	}
}

// TestDecomposeElapsedTime checks the live countdown advances with the clock.
func TestDecomposeElapsedTime(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	p := projection(1.0, 41, 40, anchor)

	t.Run("one second later", func(t *testing.T) {
		data := Decompose(p, anchor.Add(time.Second))
		// One year minus one second.
		assert.Equal(t, 0, data.Years)
		assert.Equal(t, 365, data.Days)
		assert.Equal(t, 5, data.Hours)
		assert.Equal(t, 59, data.Minutes)
		assert.Equal(t, 59, data.Seconds)
	})

	t.Run("before the anchor is treated as the anchor", func(t *testing.T) {
		data := Decompose(p, anchor.Add(-time.Hour))
		assert.Equal(t, Decompose(p, anchor), data)
	})

	t.Run("past the projected end clamps to zero", func(t *testing.T) {
		data := Decompose(p, anchor.AddDate(3, 0, 0))
		assert.Zero(t, data.Years)
		assert.Zero(t, data.Days)
		assert.Zero(t, data.Seconds)
		assert.InDelta(t, 1.0, data.Progress, 0.0001)
	})
}

// TestDecomposePair attaches extra years for display.
func TestDecomposePair(t *testing.T) {
	anchor := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	pair := schema.ProjectionPair{
		Current:    projection(41.95, 81.95, 40, anchor),
		Optimal:    projection(43.90, 83.90, 40, anchor),
		ExtraYears: 2,
	}

	data := DecomposePair(pair, anchor)
	require.NotNil(t, data.ExtraYears)
	assert.InDelta(t, 2.0, *data.ExtraYears, 0.0001)
}
