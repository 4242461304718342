package cmd

import (
	"fmt"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/internal/samplestore"
	"github.com/lifetick/lifetick/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeCmd focused on sample store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by projection commands. This avoids profile and
// baseline validation for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the health sample store",
	Long: `Manage the database that holds imported health samples.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (no-op)

Subcommands:
  status  - Show sample counts and connection info
  migrate - Apply or roll back schema migrations

Examples:
  # Check store status
  lifetick store status

  # Migrate a shared PostgreSQL store to the latest schema
  LIFETICK_STORE_BACKEND=postgresql LIFETICK_STORE_DB_CONNECT="..." lifetick store migrate`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display sample store statistics and connection details",
	Long: `Show detailed information about the sample store.

Displays:
- Backend type and connection status
- Total number of stored samples
- Last and oldest sample timestamps
- Per-metric sample counts

Use this to:
- Verify the store is reachable after configuring a backend
- Check how much history an import actually landed
- Spot metrics that no device is reporting

Examples:
  # Check store status
  lifetick store status`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store, err := samplestore.NewSampleStore(cfg.StoreBackend, cfg.StoreDBConnect)
		if err != nil {
			contract.LogFatal("Failed to open sample store", err)
		}
		defer func() { _ = store.Close() }()

		status, err := store.GetStatus(rootCtx)
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		samplestore.PrintStoreStatus(status)
	},
}

// storeMigrateCmd applies schema migrations to the sample store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back sample store schema migrations",
	Long: `Run versioned schema migrations against the sample store.

By default migrates to the latest version. Use --target-version to pin a
specific schema version, or 0 to roll everything back.

A store left dirty by an interrupted migration is reported rather than
silently repaired; resolve it manually before retrying.

Examples:
  # Migrate to the latest schema
  lifetick store migrate

  # Roll back to the initial state
  lifetick store migrate --target-version 0`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := samplestore.Migrate(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to migrate sample store", err)
		}
		fmt.Println("Sample store migration complete.")
	},
}
