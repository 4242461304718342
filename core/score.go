// Package core implements the health impact scoring and life expectancy
// projection pipeline: per-sample scoring, calendar aggregation, current and
// optimal-habits projections, and the live countdown decomposition.
package core

import (
	"fmt"
	"math"

	"github.com/lifetick/lifetick/schema"
)

// ScoreSample maps one metric sample to a signed per-day-equivalent minute
// impact plus its recommendation and citations. Pure and deterministic.
//
// A value outside the metric's physiologically valid range is rejected with
// schema.ErrInvalidSample rather than clamped, so a broken sensor reading
// cannot corrupt the projection. A metric type with no configured curve
// always scores zero and gets a generic recommendation.
func ScoreSample(sample schema.MetricSample, specs schema.MetricSpecs, refs schema.CitationSet) (schema.ImpactDetails, error) {
	if math.IsNaN(sample.Value) || math.IsInf(sample.Value, 0) {
		return schema.ImpactDetails{}, fmt.Errorf("%s sample is not finite: %w", sample.Type, schema.ErrInvalidSample)
	}

	spec, ok := specs[sample.Type]
	if !ok {
		text, cites := Recommend(sample.Type, 0, specs, refs)
		return schema.ImpactDetails{Recommendation: text, StudyReferences: cites}, nil
	}

	if sample.Value < spec.MinValid || sample.Value > spec.MaxValid {
		return schema.ImpactDetails{}, fmt.Errorf("%s value %.2f outside valid range [%.2f, %.2f]: %w",
			sample.Type, sample.Value, spec.MinValid, spec.MaxValid, schema.ErrInvalidSample)
	}

	minutes := curveMinutes(spec, sample.Value)
	text, cites := Recommend(sample.Type, minutes, specs, refs)
	return schema.ImpactDetails{
		LifespanImpactMinutes: minutes,
		Recommendation:        text,
		StudyReferences:       cites,
	}, nil
}

// curveMinutes evaluates the metric's scoring curve at the given value and
// returns the per-day-equivalent minute impact, capped at the spec's
// per-day maximum in either direction.
func curveMinutes(spec schema.MetricSpec, value float64) float64 {
	switch spec.Curve {
	case schema.InverseCurve:
		// Lower is better: impact proportional to (target - value).
		return clamp((spec.Target-value)/spec.Target, -1, 1) * spec.MaxDailyMinutes

	case schema.UShapedCurve:
		// Both under- and over-shooting are penalized quadratically; a
		// value exactly at target scores zero, the curve's maximum.
		d := (value - spec.Target) / spec.Target
		return -math.Min(d*d, 1) * spec.MaxDailyMinutes

	case schema.BoundedCurve:
		// Neutral inside the healthy band, penalized by distance beyond
		// the nearest bound.
		switch {
		case value < spec.RangeLow:
			d := (spec.RangeLow - value) / spec.RangeLow
			return -clamp(d, 0, 1) * spec.MaxDailyMinutes
		case value > spec.RangeHigh:
			d := (value - spec.RangeHigh) / spec.RangeHigh
			return -clamp(d, 0, 1) * spec.MaxDailyMinutes
		default:
			return 0
		}

	default: // schema.LinearCurve
		// More is better, up to the cap: impact proportional to
		// (value - target) / target.
		return clamp((value-spec.Target)/spec.Target, -1, 1) * spec.MaxDailyMinutes
	}
}

// OptimalValue returns the input at which the metric's curve attains its
// maximum over the valid range: the "ideal input" of the optimal-habits
// scenario. Because the optimal score is the curve's maximum, the optimal
// projection can never fall below the current one for any valid sample.
func OptimalValue(spec schema.MetricSpec) float64 {
	switch spec.Curve {
	case schema.InverseCurve:
		return spec.MinValid
	case schema.UShapedCurve:
		return spec.Target
	case schema.BoundedCurve:
		if spec.Target >= spec.RangeLow && spec.Target <= spec.RangeHigh {
			return spec.Target
		}
		return (spec.RangeLow + spec.RangeHigh) / 2
	default: // schema.LinearCurve
		// The linear curve saturates at twice the target.
		return math.Min(2*spec.Target, spec.MaxValid)
	}
}

// OptimalDailyMinutes is the best-achievable per-day impact for a metric,
// computed from the same curve used for actual scoring so that current and
// optimal projections stay strictly comparable.
func OptimalDailyMinutes(spec schema.MetricSpec) float64 {
	return curveMinutes(spec, OptimalValue(spec))
}

// ScoreAll scores a batch of samples, returning the scored survivors and the
// per-sample rejection errors. The engine drops invalid samples; callers
// decide whether to surface the rejections.
func ScoreAll(samples []schema.MetricSample, specs schema.MetricSpecs, refs schema.CitationSet) ([]schema.ScoredSample, []error) {
	scored := make([]schema.ScoredSample, 0, len(samples))
	var rejected []error
	for _, s := range samples {
		impact, err := ScoreSample(s, specs, refs)
		if err != nil {
			rejected = append(rejected, err)
			continue
		}
		scored = append(scored, schema.ScoredSample{Sample: s, Impact: impact})
	}
	return scored, rejected
}

// GroupByType buckets scored samples by metric type.
func GroupByType(scored []schema.ScoredSample) map[schema.MetricType][]schema.ScoredSample {
	out := make(map[schema.MetricType][]schema.ScoredSample)
	for _, s := range scored {
		out[s.Sample.Type] = append(out[s.Sample.Type], s)
	}
	return out
}

// clamp limits v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
