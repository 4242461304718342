package core

import (
	"math"
	"time"

	"github.com/lifetick/lifetick/schema"
)

// Project folds per-metric aggregated impacts into the baseline life
// expectancy, producing one projection snapshot anchored at the given
// instant. Each metric's per-day-equivalent minutes are converted to a
// per-year equivalent (x 365.25/1440), summed across metrics, and added to
// the baseline.
//
// In optimal mode each metric's aggregate is replaced by the curve's
// best-achievable score, computed from the same scoring functions as the
// current mode so the two projections are strictly comparable. Metrics with
// no data in the window stay out of both modes.
//
// A missing baseline fails the projection with schema.ErrMissingBaseline.
// A computed negative remaining span is clamped to zero and reported with
// schema.ErrNegativeRemainingYears alongside the usable projection.
func Project(aggregates map[schema.MetricType]schema.AggregatedImpact, profile schema.UserProfile, baselineYears float64, mode schema.ProjectionMode, specs schema.MetricSpecs, anchor time.Time) (schema.LifeProjection, error) {
	if math.IsNaN(baselineYears) || math.IsInf(baselineYears, 0) || baselineYears <= 0 {
		return schema.LifeProjection{}, schema.ErrMissingBaseline
	}

	// Iterate in declaration order so the sum is deterministic.
	var deltaYears float64
	for _, t := range schema.AllMetricTypes {
		spec, ok := specs[t]
		if !ok {
			continue
		}
		agg, ok := aggregates[t]
		if !ok || agg.SampleCount == 0 {
			// Insufficient data: no effect in either mode; the
			// aggregation step already reported the condition.
			continue
		}

		daily := agg.DailyMinutes
		if mode == schema.OptimalMode {
			daily = OptimalDailyMinutes(spec)
		}
		deltaYears += daily * schema.DaysPerYear / schema.MinutesPerDay
	}

	adjusted := baselineYears + deltaYears
	remaining := adjusted - profile.CurrentAge

	var condition error
	if remaining < 0 {
		remaining = 0
		condition = schema.ErrNegativeRemainingYears
	}

	birthYear := profile.BirthYear
	if birthYear == 0 {
		birthYear = anchor.Year() - int(math.Round(profile.CurrentAge))
	}

	return schema.LifeProjection{
		Mode:                        mode,
		BaseLifeExpectancyYears:     baselineYears,
		AdjustedLifeExpectancyYears: adjusted,
		YearsRemaining:              remaining,
		CurrentAgeYears:             profile.CurrentAge,
		Anchor:                      anchor,
		BirthYear:                   birthYear,
		EndYear:                     birthYear + int(math.Round(adjusted)),
	}, condition
}

// ExtraYears is the whole-year delta the optimal scenario offers over the
// current one. Both remainders are truncated to whole years before
// subtracting so the displayed figure does not flicker by fractions as
// measurements accumulate through the day.
func ExtraYears(current, optimal schema.LifeProjection) float64 {
	return math.Floor(optimal.YearsRemaining) - math.Floor(current.YearsRemaining)
}

// ProjectPair computes the current and optimal-habits projections from one
// snapshot of aggregates. Both share the same baseline and anchor. The
// returned error carries the current projection's condition (nil, or
// schema.ErrNegativeRemainingYears with a still-usable pair); a missing
// baseline fails the whole request.
func ProjectPair(aggregates map[schema.MetricType]schema.AggregatedImpact, profile schema.UserProfile, baselineYears float64, specs schema.MetricSpecs, anchor time.Time) (schema.ProjectionPair, error) {
	current, condition := Project(aggregates, profile, baselineYears, schema.CurrentMode, specs, anchor)
	if condition != nil && condition != schema.ErrNegativeRemainingYears {
		return schema.ProjectionPair{}, condition
	}

	optimal, err := Project(aggregates, profile, baselineYears, schema.OptimalMode, specs, anchor)
	if err != nil && err != schema.ErrNegativeRemainingYears {
		return schema.ProjectionPair{}, err
	}

	return schema.ProjectionPair{
		Current:     current,
		Optimal:     optimal,
		ExtraYears:  ExtraYears(current, optimal),
		ByMetric:    aggregates,
		RefreshedAt: anchor,
	}, condition
}
