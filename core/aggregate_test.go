package core

import (
	"testing"
	"time"

	"github.com/lifetick/lifetick/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scoredAt(metric schema.MetricType, minutes float64, ts time.Time) schema.ScoredSample {
	return schema.ScoredSample{
		Sample: schema.MetricSample{Type: metric, Source: schema.DeviceSensor, Timestamp: ts},
		Impact: schema.ImpactDetails{LifespanImpactMinutes: minutes, Recommendation: "x"},
	}
}

// TestAggregateSingleSample checks that one manual entry carries the whole
// window and the total is scaled to the elapsed window length.
func TestAggregateSingleSample(t *testing.T) {
	ref := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	sample := scoredAt(schema.SleepHours, -6.0, time.Date(2026, 3, 10, 1, 0, 0, 0, time.UTC))

	agg, err := Aggregate([]schema.ScoredSample{sample}, schema.DayPeriod, ref, time.UTC)
	require.NoError(t, err)

	assert.Equal(t, 1, agg.SampleCount)
	assert.Equal(t, schema.SleepHours, agg.Metric)
	assert.InDelta(t, -6.0, agg.DailyMinutes, 0.0001)
	// 9 of 24 hours elapsed: total scales to 0.375 of a day.
	assert.InDelta(t, -6.0*0.375, agg.TotalMinutes, 0.0001)
}

// TestAggregateTimeWeightedMean verifies that the window impact is a
// time-weighted mean of per-sample impacts, not a sum.
func TestAggregateTimeWeightedMean(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	ref := day.Add(12 * time.Hour)

	scored := []schema.ScoredSample{
		scoredAt(schema.RestingHeartRate, 12.0, day),                 // covers 3h until next sample
		scoredAt(schema.RestingHeartRate, 0.0, day.Add(3*time.Hour)), // covers the remaining 9h
	}

	agg, err := Aggregate(scored, schema.DayPeriod, ref, time.UTC)
	require.NoError(t, err)

	// (3h*12 + 9h*0) / 12h = 3.0 minutes/day.
	assert.InDelta(t, 3.0, agg.DailyMinutes, 0.0001)
	assert.InDelta(t, 1.5, agg.TotalMinutes, 0.0001) // half a day elapsed
	assert.Equal(t, 2, agg.SampleCount)
}

// TestAggregateDensityInvariance ensures sampling density does not distort
// the result: many identical device samples equal one manual entry.
func TestAggregateDensityInvariance(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	ref := day.Add(20 * time.Hour)

	single := []schema.ScoredSample{scoredAt(schema.RestingHeartRate, -4.0, day.Add(time.Hour))}

	var dense []schema.ScoredSample
	for i := range 10 {
		dense = append(dense, scoredAt(schema.RestingHeartRate, -4.0, day.Add(time.Duration(i+1)*time.Hour)))
	}

	sparse, err := Aggregate(single, schema.DayPeriod, ref, time.UTC)
	require.NoError(t, err)
	packed, err := Aggregate(dense, schema.DayPeriod, ref, time.UTC)
	require.NoError(t, err)

	assert.InDelta(t, sparse.DailyMinutes, packed.DailyMinutes, 0.0001)
	assert.InDelta(t, sparse.TotalMinutes, packed.TotalMinutes, 0.0001)
}

// TestAggregateEmptyWindow checks the insufficient-data contract: an empty
// window is a distinct condition, never a silent zero aggregate.
func TestAggregateEmptyWindow(t *testing.T) {
	ref := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	t.Run("no samples at all", func(t *testing.T) {
		agg, err := Aggregate(nil, schema.MonthPeriod, ref, time.UTC)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrInsufficientData)
		assert.Zero(t, agg.SampleCount)
	})

	t.Run("samples outside the window", func(t *testing.T) {
		previous := scoredAt(schema.Steps, 8.0, time.Date(2026, 2, 27, 12, 0, 0, 0, time.UTC))
		agg, err := Aggregate([]schema.ScoredSample{previous}, schema.MonthPeriod, ref, time.UTC)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrInsufficientData)
		assert.Zero(t, agg.SampleCount)
	})
}

// TestWindowBounds checks calendar-correct boundaries in the configured
// timezone.
func TestWindowBounds(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	ref := time.Date(2026, 2, 15, 22, 30, 0, 0, loc)

	tests := []struct {
		period    schema.PeriodType
		wantStart time.Time
		wantEnd   time.Time
	}{
		{schema.DayPeriod, time.Date(2026, 2, 15, 0, 0, 0, 0, loc), time.Date(2026, 2, 16, 0, 0, 0, 0, loc)},
		{schema.MonthPeriod, time.Date(2026, 2, 1, 0, 0, 0, 0, loc), time.Date(2026, 3, 1, 0, 0, 0, 0, loc)},
		{schema.YearPeriod, time.Date(2026, 1, 1, 0, 0, 0, 0, loc), time.Date(2027, 1, 1, 0, 0, 0, 0, loc)},
	}

	for _, tt := range tests {
		t.Run(string(tt.period), func(t *testing.T) {
			start, end := windowBounds(tt.period, ref, loc)
			assert.True(t, start.Equal(tt.wantStart), "start %s", start)
			assert.True(t, end.Equal(tt.wantEnd), "end %s", end)
		})
	}
}

// TestPeriodBreakdown checks per-metric plus combined summaries.
func TestPeriodBreakdown(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	ref := day.Add(12 * time.Hour)

	scored := []schema.ScoredSample{
		scoredAt(schema.Steps, 8.0, day.Add(2*time.Hour)),
		scoredAt(schema.SleepHours, -6.0, day.Add(time.Hour)),
	}

	byMetric, combined, err := PeriodBreakdown(scored, schema.DayPeriod, ref, time.UTC)
	require.NoError(t, err)

	assert.Len(t, byMetric, 2)
	assert.InDelta(t, 8.0-6.0, combined.DailyMinutes, 0.0001)
	assert.Equal(t, 2, combined.SampleCount)
	assert.Empty(t, combined.Metric)

	t.Run("empty window reports insufficient data", func(t *testing.T) {
		_, combined, err := PeriodBreakdown(nil, schema.MonthPeriod, ref, time.UTC)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrInsufficientData)
		assert.Zero(t, combined.SampleCount)
	})
}

// TestAggregateMixedMetricsHasNoUniformType checks the combined-metric case.
func TestAggregateMixedMetricsHasNoUniformType(t *testing.T) {
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	scored := []schema.ScoredSample{
		scoredAt(schema.Steps, 8.0, day.Add(time.Hour)),
		scoredAt(schema.SleepHours, -6.0, day.Add(2*time.Hour)),
	}

	agg, err := Aggregate(scored, schema.DayPeriod, day.Add(6*time.Hour), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, agg.Metric)
}
