// Package cmd defines the command-line interface for lifetick.
package cmd

import (
	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(countdownCmd)
	rootCmd.AddCommand(impactCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(storeCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Float64("baseline", 0, "Baseline life expectancy in years (required for projections)")
	rootCmd.PersistentFlags().Float64("age", 0, "Current age in years")
	rootCmd.PersistentFlags().Int("birth-year", 0, "Birth year, an alternative to --age")
	rootCmd.PersistentFlags().String("timezone", "", "IANA timezone for calendar windows (defaults to local)")
	rootCmd.PersistentFlags().StringP("period", "p", string(schema.DayPeriod), "Aggregation window: day or month or year")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.SQLiteBackend), "Sample store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of countdownCmd to Viper
	countdownCmd.Flags().String("at", "", "Reference instant in ISO8601 or time ago (renders once, deterministically)")
	countdownCmd.Flags().Int("ticks", 0, "Number of countdown renders (0 = run until interrupted)")
	if err := viper.BindPFlags(countdownCmd.Flags()); err != nil {
		contract.LogFatal("Error binding countdown flags", err)
	}

	// Bind all flags of importCmd to Viper
	importCmd.Flags().String("source", string(schema.DeviceSensor), "Default sample source for rows without one: deviceSensor or userInput")
	if err := viper.BindPFlags(importCmd.Flags()); err != nil {
		contract.LogFatal("Error binding import flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
