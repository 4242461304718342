package core

import (
	"math"
	"time"

	"github.com/lifetick/lifetick/schema"
)

// Decompose derives the live countdown display from a projection anchor plus
// elapsed wall-clock time. It is a cheap O(1) linear formula so an external
// timer can drive it every second without re-running metric aggregation;
// the projection itself is only recomputed on refresh.
//
// The remaining span is yearsRemaining minus the time elapsed since the
// anchor, decomposed with a 365.25-day year for consistency with the
// projection math. Progress is the fraction of the adjusted lifespan already
// lived. BirthYear and EndYear were fixed at the anchor and pass through
// unchanged.
func Decompose(p schema.LifeProjection, now time.Time) schema.LifespanData {
	elapsedYears := now.Sub(p.Anchor).Seconds() / schema.SecondsPerYear
	if elapsedYears < 0 {
		elapsedYears = 0
	}

	remaining := p.YearsRemaining - elapsedYears
	if remaining < 0 {
		remaining = 0
	}

	secs := int64(math.Floor(remaining * schema.SecondsPerYear))
	years := secs / schema.SecondsPerYear
	rem := secs % schema.SecondsPerYear
	days := rem / 86400
	rem %= 86400
	hours := rem / 3600
	rem %= 3600

	progress := 1.0
	if p.AdjustedLifeExpectancyYears > 0 {
		progress = clamp((p.CurrentAgeYears+elapsedYears)/p.AdjustedLifeExpectancyYears, 0, 1)
	}

	return schema.LifespanData{
		Years:     int(years),
		Days:      int(days),
		Hours:     int(hours),
		Minutes:   int(rem / 60),
		Seconds:   int(rem % 60),
		Progress:  progress,
		BirthYear: p.BirthYear,
		EndYear:   p.EndYear,
	}
}

// DecomposePair decomposes the pair's current projection and attaches the
// optimal scenario's extra-years figure for display.
func DecomposePair(pair schema.ProjectionPair, now time.Time) schema.LifespanData {
	data := Decompose(pair.Current, now)
	extra := pair.ExtraYears
	data.ExtraYears = &extra
	return data
}
