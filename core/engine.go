package core

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lifetick/lifetick/schema"
)

// Engine runs the scoring pipeline and publishes projection snapshots for
// the live countdown. Every operation takes an immutable snapshot of its
// inputs and returns a new immutable result; the only shared state is the
// published pair, swapped atomically so countdown ticks observe either the
// old or the new projection, never a partially-updated one.
type Engine struct {
	specs schema.MetricSpecs
	refs  schema.CitationSet
	loc   *time.Location

	snapshot atomic.Pointer[schema.ProjectionPair]
	seq      atomic.Uint64
}

// NewEngine creates an engine with the given curve specs, study references
// and aggregation timezone. Nil specs fall back to the shipping defaults;
// a nil location falls back to the local timezone.
func NewEngine(specs schema.MetricSpecs, refs schema.CitationSet, loc *time.Location) *Engine {
	if specs == nil {
		specs = schema.DefaultSpecs()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Engine{specs: specs, refs: refs, loc: loc}
}

// Specs returns the active curve specs.
func (e *Engine) Specs() schema.MetricSpecs { return e.specs }

// Citations returns the configured study references.
func (e *Engine) Citations() schema.CitationSet { return e.refs }

// Location returns the aggregation timezone.
func (e *Engine) Location() *time.Location { return e.loc }

// BeginRefresh reserves a sequence token for a refresh. Staleness is judged
// by token order, not completion time, so a slow in-flight refresh cannot
// overwrite a fresher result.
func (e *Engine) BeginRefresh() uint64 {
	return e.seq.Add(1)
}

// Refresh scores the sample snapshot, aggregates today's window per metric,
// computes the current and optimal projections, and publishes the pair if
// the token is still the newest. Invalid samples are dropped and counted in
// the pair; the caller decides whether to surface them.
//
// Returns schema.ErrMissingBaseline without publishing when no baseline was
// supplied, and schema.ErrStaleRefresh when a newer refresh already
// published. schema.ErrNegativeRemainingYears and schema.ErrInsufficientData
// come back alongside a published, usable pair: an empty window projects the
// bare baseline, but that is "not enough data yet", never a neutral outcome.
func (e *Engine) Refresh(token uint64, samples []schema.MetricSample, profile schema.UserProfile, baselineYears float64, now time.Time) (*schema.ProjectionPair, error) {
	scored, rejected := ScoreAll(samples, e.specs, e.refs)
	aggregates := AggregateByMetric(GroupByType(scored), schema.DayPeriod, now, e.loc)

	pair, condition := ProjectPair(aggregates, profile, baselineYears, e.specs, now)
	if condition != nil && !errors.Is(condition, schema.ErrNegativeRemainingYears) {
		return nil, condition
	}
	if len(aggregates) == 0 {
		empty := fmt.Errorf("no scored samples in the %s window at %s: %w", schema.DayPeriod, now.Format(time.RFC3339), schema.ErrInsufficientData)
		if condition == nil {
			condition = empty
		} else {
			condition = errors.Join(condition, empty)
		}
	}
	pair.Scored = scored
	pair.Dropped = len(rejected)
	pair.Seq = token
	pair.RefreshedAt = now

	for {
		old := e.snapshot.Load()
		if old != nil && old.Seq >= token {
			return nil, schema.ErrStaleRefresh
		}
		if e.snapshot.CompareAndSwap(old, &pair) {
			break
		}
	}
	return &pair, condition
}

// RefreshNow is the single-caller convenience around BeginRefresh+Refresh.
func (e *Engine) RefreshNow(samples []schema.MetricSample, profile schema.UserProfile, baselineYears float64, now time.Time) (*schema.ProjectionPair, error) {
	return e.Refresh(e.BeginRefresh(), samples, profile, baselineYears, now)
}

// Snapshot returns the most recently published projection pair, or nil when
// no refresh has completed yet.
func (e *Engine) Snapshot() *schema.ProjectionPair {
	return e.snapshot.Load()
}

// Tick derives the live countdown from the latest published pair. With no
// published projection it returns the zeroed placeholder so display layers
// degrade instead of crashing.
func (e *Engine) Tick(now time.Time) schema.LifespanData {
	pair := e.snapshot.Load()
	if pair == nil {
		return schema.ZeroLifespanData()
	}
	return DecomposePair(*pair, now)
}
