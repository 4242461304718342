package cmd

import (
	"github.com/lifetick/lifetick/core"
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/outwriter"
	"github.com/spf13/cobra"
)

// impactCmd shows aggregated lifespan impact over a calendar window.
var impactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Show minutes of lifespan gained or lost over a window.",
	Long: `Aggregate scored samples into per-metric and combined lifespan impact.

The window is the calendar day, month or year containing the reference
instant (--period). Within the window each sample's impact is weighted by
the time span it covers, so a sensor firing every minute does not outweigh
a single manual entry; the total is the mean rate scaled to the elapsed
window, never a naive sum.

Positive minutes are lifespan gained, negative minutes lifespan lost. A
window with no samples reports "insufficient data" rather than implying a
neutral outcome.

Examples:
  # Today's breakdown
  lifetick impact

  # This month, exported to CSV
  lifetick impact --period month --output csv --output-file impact.csv

  # This year in a specific timezone
  lifetick impact --period year --timezone America/New_York`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		eng := core.NewEngineFromConfig(cfg)
		byMetric, combined, err := core.GetImpactResults(rootCtx, cfg, sampleStore, eng)
		if err != nil {
			contract.LogFatal("Cannot aggregate impact", err)
		}
		if err := outwriter.NewOutWriter().WriteImpact(byMetric, combined, cfg); err != nil {
			contract.LogFatal("Cannot write impact", err)
		}
	},
}
