package cmd

import (
	"github.com/lifetick/lifetick/core"
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/outwriter"
	"github.com/spf13/cobra"
)

// recommendCmd derives per-metric habit recommendations.
var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show habit recommendations derived from your samples.",
	Long: `Derive actionable guidance from the aggregated per-metric impacts.

Each metric with samples in the window gets one recommendation: the framing
(gaining, losing, on target) and magnitude (slightly, notably,
substantially) follow directly from the signed daily minutes, and any study
references configured for the metric are cited verbatim underneath.

Identical inputs always produce identical text, so recommendations are safe
to diff between runs.

Examples:
  # Guidance from today's samples
  lifetick recommend

  # Month-scale guidance with citations from the config file
  lifetick recommend --period month --config .lifetick.yaml

  # Machine-readable output
  lifetick recommend --output json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		eng := core.NewEngineFromConfig(cfg)
		items, err := core.GetRecommendationResults(rootCtx, cfg, sampleStore, eng)
		if err != nil {
			contract.LogFatal("Cannot derive recommendations", err)
		}
		if err := outwriter.NewOutWriter().WriteRecommendations(items, cfg); err != nil {
			contract.LogFatal("Cannot write recommendations", err)
		}
	},
}
