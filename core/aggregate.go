package core

import (
	"fmt"
	"sort"
	"time"

	"github.com/lifetick/lifetick/schema"
)

// Aggregate combines scored samples into one calendar window anchored at the
// reference instant. The window's impact is the time-weighted mean of
// per-sample impacts scaled to the elapsed window length, so that a sensor
// firing many times a day does not outweigh a single manual entry covering
// the whole window. Sub-spans with no data contribute nothing instead of
// counting as zero-value input.
//
// An empty window returns schema.ErrInsufficientData alongside a zeroed
// aggregate so callers can render "not enough data yet" rather than a
// neutral outcome.
func Aggregate(scored []schema.ScoredSample, period schema.PeriodType, ref time.Time, loc *time.Location) (schema.AggregatedImpact, error) {
	if loc == nil {
		loc = time.Local
	}
	start, end := windowBounds(period, ref, loc)

	// The window covers all completed days plus the partial current day
	// when the reference instant falls inside it.
	effectiveEnd := end
	if ref.Before(end) {
		effectiveEnd = ref
	}

	inWindow := make([]schema.ScoredSample, 0, len(scored))
	for _, s := range scored {
		ts := s.Sample.Timestamp
		if ts.Before(start) || ts.After(effectiveEnd) || !ts.Before(end) {
			continue
		}
		inWindow = append(inWindow, s)
	}

	agg := schema.AggregatedImpact{
		Period:      period,
		WindowStart: start,
		WindowEnd:   end,
	}

	if len(inWindow) == 0 {
		return agg, fmt.Errorf("%s window starting %s: %w", period, start.Format(time.RFC3339), schema.ErrInsufficientData)
	}

	sort.SliceStable(inWindow, func(i, j int) bool {
		return inWindow[i].Sample.Timestamp.Before(inWindow[j].Sample.Timestamp)
	})

	// Each sample's weight is the span it covers: until the next sample,
	// or until the effective window end for the last one. A single sample
	// therefore carries the entire window.
	var weightedSum, totalWeight float64
	for i, s := range inWindow {
		var span time.Duration
		if i < len(inWindow)-1 {
			span = inWindow[i+1].Sample.Timestamp.Sub(s.Sample.Timestamp)
		} else {
			span = effectiveEnd.Sub(s.Sample.Timestamp)
		}
		w := span.Seconds()
		weightedSum += w * s.Impact.LifespanImpactMinutes
		totalWeight += w
	}

	var meanRate float64
	if totalWeight > 0 {
		meanRate = weightedSum / totalWeight
	} else {
		// All samples at the same instant (or at the window edge):
		// fall back to a plain mean.
		for _, s := range inWindow {
			meanRate += s.Impact.LifespanImpactMinutes
		}
		meanRate /= float64(len(inWindow))
	}

	elapsedDays := effectiveEnd.Sub(start).Hours() / 24

	agg.Metric = uniformMetric(inWindow)
	agg.DailyMinutes = meanRate
	agg.TotalMinutes = meanRate * elapsedDays
	agg.SampleCount = len(inWindow)
	return agg, nil
}

// AggregateByMetric runs Aggregate per metric type for the given window.
// Metrics whose window is empty are omitted from the result; an empty
// result map is the caller's signal that the whole window lacked data.
func AggregateByMetric(byType map[schema.MetricType][]schema.ScoredSample, period schema.PeriodType, ref time.Time, loc *time.Location) map[schema.MetricType]schema.AggregatedImpact {
	out := make(map[schema.MetricType]schema.AggregatedImpact, len(byType))
	for t, group := range byType {
		agg, err := Aggregate(group, period, ref, loc)
		if err != nil {
			continue
		}
		agg.Metric = t
		out[t] = agg
	}
	return out
}

// PeriodBreakdown aggregates each metric over the window and sums them into
// a combined figure for the "today / this month / this year" summaries. The
// combined aggregate reports schema.ErrInsufficientData when no metric had
// any samples in the window.
func PeriodBreakdown(scored []schema.ScoredSample, period schema.PeriodType, ref time.Time, loc *time.Location) (map[schema.MetricType]schema.AggregatedImpact, schema.AggregatedImpact, error) {
	if loc == nil {
		loc = time.Local
	}
	byMetric := AggregateByMetric(GroupByType(scored), period, ref, loc)

	start, end := windowBounds(period, ref, loc)
	combined := schema.AggregatedImpact{
		Period:      period,
		WindowStart: start,
		WindowEnd:   end,
	}
	for _, agg := range byMetric {
		combined.TotalMinutes += agg.TotalMinutes
		combined.DailyMinutes += agg.DailyMinutes
		combined.SampleCount += agg.SampleCount
	}

	if combined.SampleCount == 0 {
		return byMetric, combined, fmt.Errorf("%s window starting %s: %w", period, start.Format(time.RFC3339), schema.ErrInsufficientData)
	}
	return byMetric, combined, nil
}

// windowBounds returns the half-open [start, end) calendar window containing
// ref in the given timezone.
func windowBounds(period schema.PeriodType, ref time.Time, loc *time.Location) (time.Time, time.Time) {
	r := ref.In(loc)
	switch period {
	case schema.MonthPeriod:
		start := time.Date(r.Year(), r.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0)
	case schema.YearPeriod:
		start := time.Date(r.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0)
	default: // schema.DayPeriod
		start := time.Date(r.Year(), r.Month(), r.Day(), 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 0, 1)
	}
}

// uniformMetric returns the shared metric type of the samples, or empty when
// the set mixes types (a combined aggregate).
func uniformMetric(scored []schema.ScoredSample) schema.MetricType {
	if len(scored) == 0 {
		return ""
	}
	first := scored[0].Sample.Type
	for _, s := range scored[1:] {
		if s.Sample.Type != first {
			return ""
		}
	}
	return first
}
