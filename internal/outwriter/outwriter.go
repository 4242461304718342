// Package outwriter has output and writer logic.
package outwriter

import (
	"os"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteProjection prints the current and optimal projections using the configured output format.
func (ow *OutWriter) WriteProjection(pair *schema.ProjectionPair, cfg *contract.Config) error {
	return PrintProjection(pair, cfg)
}

// WriteImpact prints per-metric and combined aggregated impacts using the configured output format.
func (ow *OutWriter) WriteImpact(byMetric map[schema.MetricType]schema.AggregatedImpact, combined schema.AggregatedImpact, cfg *contract.Config) error {
	return PrintImpact(byMetric, combined, cfg)
}

// WriteRecommendations prints per-metric recommendations using the configured output format.
func (ow *OutWriter) WriteRecommendations(items []schema.RecommendationItem, cfg *contract.Config) error {
	return PrintRecommendations(items, cfg)
}

// WriteCountdown prints a single countdown render using the configured output format.
func (ow *OutWriter) WriteCountdown(data schema.LifespanData, cfg *contract.Config) error {
	return PrintCountdown(data, cfg)
}

// WriteMetricSpecs prints metric curve definitions using the configured output format.
func (ow *OutWriter) WriteMetricSpecs(specs schema.MetricSpecs, cfg *contract.Config) error {
	return PrintMetricSpecs(specs, cfg)
}

// getTerminalWidth resolves the output width: the configured override wins,
// then the detected terminal size, then a conservative default for CI.
func getTerminalWidth(cfg *contract.Config) int {
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}
