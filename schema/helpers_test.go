package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestImpactBucket checks the magnitude bucket boundaries.
func TestImpactBucket(t *testing.T) {
	tests := []struct {
		name     string
		minutes  float64
		expected MagnitudeBucket
	}{
		{"zero is small", 0, SmallImpact},
		{"just under small ceiling", 4.99, SmallImpact},
		{"at small ceiling", 5.0, MediumImpact},
		{"negative medium", -12.0, MediumImpact},
		{"at medium ceiling", 20.0, LargeImpact},
		{"large negative", -45.0, LargeImpact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ImpactBucket(tt.minutes))
		})
	}
}

// TestParseMetricType validates metric type parsing.
func TestParseMetricType(t *testing.T) {
	got, err := ParseMetricType("sleepHours")
	require.NoError(t, err)
	assert.Equal(t, SleepHours, got)

	got, err = ParseMetricType(" steps ")
	require.NoError(t, err)
	assert.Equal(t, Steps, got)

	_, err = ParseMetricType("bloodSugar")
	assert.Error(t, err)
}

// TestParsePeriod validates period parsing.
func TestParsePeriod(t *testing.T) {
	for _, p := range AllPeriods {
		got, err := ParsePeriod(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParsePeriod("Month")
	require.NoError(t, err)
	assert.Equal(t, MonthPeriod, got)

	_, err = ParsePeriod("decade")
	assert.Error(t, err)
}

// TestFormatSignedMinutes checks explicit sign rendering.
func TestFormatSignedMinutes(t *testing.T) {
	assert.Equal(t, "+12.5", FormatSignedMinutes(12.5, 1))
	assert.Equal(t, "-3.0", FormatSignedMinutes(-3.0, 1))
	assert.Equal(t, "+0.0", FormatSignedMinutes(0, 1))
}

// TestDefaultSpecsCoverAllTypes ensures every metric type ships a curve.
func TestDefaultSpecsCoverAllTypes(t *testing.T) {
	specs := DefaultSpecs()
	for _, mt := range AllMetricTypes {
		spec, ok := specs[mt]
		require.True(t, ok, "missing spec for %s", mt)
		assert.Equal(t, mt, spec.Type)
		assert.Less(t, spec.MinValid, spec.MaxValid)
		assert.Positive(t, spec.MaxDailyMinutes)
	}
}

// TestApplyOverrides checks override merging and validation.
func TestApplyOverrides(t *testing.T) {
	specs := DefaultSpecs()

	t.Run("override target", func(t *testing.T) {
		out, err := specs.ApplyOverrides(map[string]SpecOverride{
			"sleepHours": {Target: 8.0},
		})
		require.NoError(t, err)
		assert.InDelta(t, 8.0, out[SleepHours].Target, 0.001)
		// Untouched fields keep their defaults.
		assert.InDelta(t, 60.0, out[SleepHours].MaxDailyMinutes, 0.001)
		// Original map is not mutated.
		assert.InDelta(t, 7.5, specs[SleepHours].Target, 0.001)
	})

	t.Run("unknown metric rejected", func(t *testing.T) {
		_, err := specs.ApplyOverrides(map[string]SpecOverride{
			"bloodSugar": {Target: 5.0},
		})
		assert.Error(t, err)
	})

	t.Run("inverted valid range rejected", func(t *testing.T) {
		_, err := specs.ApplyOverrides(map[string]SpecOverride{
			"steps": {MinValid: 200000},
		})
		assert.Error(t, err)
	})
}
