package cmd

import (
	"fmt"

	"github.com/lifetick/lifetick/core"
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/parquet"
	"github.com/spf13/cobra"
)

// exportCmd writes scored sample history to a Parquet file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export scored sample history to a Parquet file.",
	Long: `Score every sample in the configured window and export the results.

Each row pairs the raw measurement with the signed minutes-per-day impact
it maps to and the guidance derived from it, in Parquet format for
downstream analytics (DuckDB, Spark, pandas).

The window follows --period and the reference instant, so a year-scale
export captures the full scored history for that calendar year. Invalid
samples are dropped and counted, never exported.

Examples:
  # Export this year's scored history
  lifetick export --period year --output-file scored.parquet

  # Export this month from a MySQL store
  lifetick export --period month --store-backend mysql --store-db-connect "..." --output-file scored.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.OutputFile == "" {
			contract.LogFatal("Cannot export", fmt.Errorf("--output-file is required"))
		}

		eng := core.NewEngineFromConfig(cfg)
		scored, dropped, err := core.GetScoredHistory(rootCtx, cfg, sampleStore, eng)
		if err != nil {
			contract.LogFatal("Cannot load scored history", err)
		}

		records := parquet.FromScoredSamples(scored)
		if err := parquet.WriteScoredSamplesFile(records, cfg.OutputFile); err != nil {
			contract.LogFatal("Cannot write Parquet file", err)
		}

		fmt.Printf("Exported %d scored sample(s) to %s", len(records), cfg.OutputFile)
		if dropped > 0 {
			fmt.Printf(" (%d invalid sample(s) dropped)", dropped)
		}
		fmt.Println()
	},
}
