package cmd

import (
	"github.com/lifetick/lifetick/core"
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/outwriter"
	"github.com/spf13/cobra"
)

// projectCmd computes the current and optimal life expectancy projections.
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project life expectancy from today's health samples.",
	Long: `Score today's health samples and project life expectancy two ways.

Computes a pair of projections from the same baseline and anchor:
- Current: baseline adjusted by your measured habits
- Optimal: baseline adjusted as if every metric sat at its curve optimum

Reports adjusted life expectancy, years remaining, projected end year, and
the whole extra years that optimal habits would add to the countdown.

A baseline life expectancy is required (--baseline or the baseline config
key); the engine never invents one. Profile comes from --age or --birth-year.

Examples:
  # Project with an explicit baseline and age
  lifetick project --baseline 81 --age 40

  # Derive age from a birth year instead
  lifetick project --baseline 81 --birth-year 1986

  # Export the projection pair to JSON
  lifetick project --baseline 81 --age 40 --output json --output-file projection.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := requireBaseline(); err != nil {
			contract.LogFatal("Cannot project", err)
		}
		eng := core.NewEngineFromConfig(cfg)
		pair, err := core.GetProjectionResults(rootCtx, cfg, sampleStore, eng)
		if err != nil {
			contract.LogFatal("Cannot compute projection", err)
		}
		if err := outwriter.NewOutWriter().WriteProjection(pair, cfg); err != nil {
			contract.LogFatal("Cannot write projection", err)
		}
	},
}
