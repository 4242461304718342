package cmd

import (
	"fmt"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/samplestore"
	"github.com/spf13/cobra"
)

// importCmd loads health samples from a file into the sample store.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load health samples from a CSV or JSON file into the store.",
	Long: `Parse a CSV or JSON file of health samples and persist them.

The loader is chosen by file extension (.csv or .json). CSV files need
type, value and timestamp columns; source and id columns are optional.
JSON files carry an array of sample objects. Rows without a source get the
--source default; rows without an id get a generated UUID at insert time.

Samples are validated before insertion: unknown metric types, unknown
sources and missing timestamps are rejected with the offending row named.
Values are NOT range-checked here - out-of-range samples are stored and
dropped at scoring time, so a later fix to a curve's valid range can
resurrect them.

Examples:
  # Import device samples from CSV
  lifetick import samples.csv

  # Import manual entries from JSON
  lifetick import entries.json --source userInput

  # Import into a shared PostgreSQL store
  lifetick import samples.csv --store-backend postgresql --store-db-connect "host=db dbname=lifetick"`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		path := args[0]
		loader, err := samplestore.NewLoaderForFile(path, cfg.ImportSource)
		if err != nil {
			contract.LogFatal("Cannot import samples", err)
		}
		samples, err := loader.Load(path)
		if err != nil {
			contract.LogFatal("Cannot parse samples", err)
		}
		inserted, err := sampleStore.InsertSamples(rootCtx, samples)
		if err != nil {
			contract.LogFatal("Cannot insert samples", err)
		}
		fmt.Printf("Imported %d sample(s) from %s\n", inserted, path)
	},
}
