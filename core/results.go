package core

import (
	"context"
	"errors"
	"time"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"
)

// NewEngineFromConfig builds an engine from the validated configuration.
func NewEngineFromConfig(cfg *contract.Config) *Engine {
	return NewEngine(cfg.Specs, cfg.Citations, cfg.Location)
}

// GetProjectionResults loads the day's samples around the configured anchor,
// refreshes the engine and returns the published projection pair. Conditions
// that still yield a usable pair are reported as warnings rather than
// failures: an empty window ("not enough data yet", adjusted == baseline)
// and an adjusted expectancy clamped below the user's age.
func GetProjectionResults(ctx context.Context, cfg *contract.Config, store contract.SampleStore, eng *Engine) (*schema.ProjectionPair, error) {
	anchor := cfg.AnchorOrNow(time.Now())
	start, end := windowBounds(schema.DayPeriod, anchor, eng.Location())

	samples, err := store.ListWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}

	pair, err := eng.RefreshNow(samples, cfg.Profile, cfg.BaselineYears, anchor)
	if err != nil {
		if pair == nil {
			return nil, err
		}
		if errors.Is(err, schema.ErrInsufficientData) {
			contract.LogWarn("projection reflects baseline only", err)
		}
		if errors.Is(err, schema.ErrNegativeRemainingYears) {
			contract.LogWarn("projection clamped", err)
		}
	}
	return pair, nil
}

// GetImpactResults loads the configured period window of samples, scores
// them and returns the per-metric and combined aggregates. An empty window
// propagates schema.ErrInsufficientData.
func GetImpactResults(ctx context.Context, cfg *contract.Config, store contract.SampleStore, eng *Engine) (map[schema.MetricType]schema.AggregatedImpact, schema.AggregatedImpact, error) {
	anchor := cfg.AnchorOrNow(time.Now())
	scored, _, err := loadScoredWindow(ctx, cfg, store, eng, anchor)
	if err != nil {
		return nil, schema.AggregatedImpact{}, err
	}
	return PeriodBreakdown(scored, cfg.Period, anchor, eng.Location())
}

// GetRecommendationResults derives per-metric guidance from the period
// breakdown. Metrics with no samples in the window are skipped; an entirely
// empty window yields an empty list rather than an error so display layers
// can render a friendly message.
func GetRecommendationResults(ctx context.Context, cfg *contract.Config, store contract.SampleStore, eng *Engine) ([]schema.RecommendationItem, error) {
	byMetric, _, err := GetImpactResults(ctx, cfg, store, eng)
	if err != nil {
		if errors.Is(err, schema.ErrInsufficientData) {
			return nil, nil
		}
		return nil, err
	}

	var items []schema.RecommendationItem
	for _, t := range schema.AllMetricTypes {
		agg, ok := byMetric[t]
		if !ok {
			continue
		}
		text, refs := Recommend(t, agg.DailyMinutes, eng.Specs(), eng.Citations())
		items = append(items, schema.RecommendationItem{
			Metric:       t,
			DailyMinutes: agg.DailyMinutes,
			SampleCount:  agg.SampleCount,
			Text:         text,
			Citations:    refs,
		})
	}
	if cfg.ResultLimit > 0 && len(items) > cfg.ResultLimit {
		items = items[:cfg.ResultLimit]
	}
	return items, nil
}

// GetCountdownResults refreshes the engine and decomposes the published
// projection at the configured anchor for a single countdown render.
func GetCountdownResults(ctx context.Context, cfg *contract.Config, store contract.SampleStore, eng *Engine) (schema.LifespanData, error) {
	if _, err := GetProjectionResults(ctx, cfg, store, eng); err != nil {
		return schema.ZeroLifespanData(), err
	}
	return eng.Tick(cfg.AnchorOrNow(time.Now())), nil
}

// GetScoredHistory loads the configured period window and scores every
// sample in it, for export. Returns the scored samples and the number of
// invalid samples dropped.
func GetScoredHistory(ctx context.Context, cfg *contract.Config, store contract.SampleStore, eng *Engine) ([]schema.ScoredSample, int, error) {
	anchor := cfg.AnchorOrNow(time.Now())
	return loadScoredWindow(ctx, cfg, store, eng, anchor)
}

// loadScoredWindow fetches the period window around anchor and scores it.
func loadScoredWindow(ctx context.Context, cfg *contract.Config, store contract.SampleStore, eng *Engine, anchor time.Time) ([]schema.ScoredSample, int, error) {
	start, end := windowBounds(cfg.Period, anchor, eng.Location())
	samples, err := store.ListWindow(ctx, start, end)
	if err != nil {
		return nil, 0, err
	}
	scored, rejected := ScoreAll(samples, eng.Specs(), eng.Citations())
	return scored, len(rejected), nil
}
