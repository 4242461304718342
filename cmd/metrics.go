package cmd

import (
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/outwriter"
	"github.com/spf13/cobra"
)

// metricsCmd displays the formal definitions of all scoring curves.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display curve definitions for all supported metrics",
	Long: `Show the scoring curve behind each supported health metric.

Lists every metric's curve family (linear, inverse, u-shaped, bounded),
target value, physiologically valid range and daily-minute cap, including
any overrides applied from the config file.

No samples are read - this is purely informational.

Use this to:
- Understand how a raw measurement maps to minutes gained or lost
- Validate metric overrides in .lifetick.yaml
- Document the scoring methodology

Examples:
  # Show the shipping curve definitions
  lifetick metrics

  # View with custom targets from a config file
  lifetick metrics --config .lifetick.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := outwriter.NewOutWriter().WriteMetricSpecs(cfg.Specs, cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
