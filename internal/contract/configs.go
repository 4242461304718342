package contract

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lifetick/lifetick/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit = 25
	MaxResultLimit     = 1000
	DefaultPrecision   = 1
	MaxBaselineYears   = 150
	MaxProfileAgeYears = 130
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// Config holds the runtime configuration for the engine and CLI.
// This struct remains the "final, validated" config.
type Config struct {
	BaselineYears float64
	Profile       schema.UserProfile
	Location      *time.Location
	Period        schema.PeriodType

	Anchor time.Time // Reference instant for scoring/projection (zero = now)
	Ticks  int       // Countdown render count (0 = run until interrupted)

	Output     schema.OutputMode
	OutputFile string
	Precision  int
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	ResultLimit int

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	ImportSource schema.SampleSource

	// Specs holds the scoring curves after config-file overrides.
	Specs schema.MetricSpecs

	// Citations maps metric types to their configured study references.
	Citations schema.CitationSet
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	Baseline       float64 `mapstructure:"baseline"`
	Age            float64 `mapstructure:"age"`
	BirthYear      int     `mapstructure:"birth-year"`
	Timezone       string  `mapstructure:"timezone"`
	Period         string  `mapstructure:"period"`
	Output         string  `mapstructure:"output"`
	OutputFile     string  `mapstructure:"output-file"`
	Precision      int     `mapstructure:"precision"`
	Width          int     `mapstructure:"width"`
	Color          string  `mapstructure:"color"`
	Limit          int     `mapstructure:"limit"`
	StoreBackend   string  `mapstructure:"store-backend"`
	StoreDBConnect string  `mapstructure:"store-db-connect"`

	// --- Fields from countdownCmd.Flags() ---
	At    string `mapstructure:"at"`
	Ticks int    `mapstructure:"ticks"`

	// --- Fields from importCmd.Flags() ---
	Source string `mapstructure:"source"`

	// --- Metric curve overrides from config file ---
	Metrics map[string]schema.SpecOverride `mapstructure:"metrics"`

	// --- Study references from config file ---
	Citations map[string][]string `mapstructure:"citations"`
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, now time.Time) error {
	// All validation functions read from 'input' and populate 'cfg'.
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTimezone(cfg, input); err != nil {
		return err
	}
	if err := processProfile(cfg, input, now); err != nil {
		return err
	}
	if err := processAnchor(cfg, input, now); err != nil {
		return err
	}
	if err := processSpecs(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all non-derived fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Ticks = input.Ticks

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Baseline Validation ---
	// Zero means "not configured"; projection commands reject that later
	// with the missing-baseline condition rather than inventing a default.
	if math.IsNaN(input.Baseline) || math.IsInf(input.Baseline, 0) {
		return fmt.Errorf("baseline must be a finite number of years")
	}
	if input.Baseline < 0 || input.Baseline > MaxBaselineYears {
		return fmt.Errorf("baseline must be between 0 and %d years (received %.2f)", MaxBaselineYears, input.Baseline)
	}
	cfg.BaselineYears = input.Baseline

	// --- 2. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 3. Period Validation ---
	period, err := schema.ParsePeriod(input.Period)
	if err != nil {
		return err
	}
	cfg.Period = period

	// --- 4. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}

	// --- 5. Ticks Validation ---
	if input.Ticks < 0 {
		return fmt.Errorf("ticks cannot be negative (received %d)", input.Ticks)
	}

	// --- 6. Backend Validation ---
	cfg.StoreBackend = schema.DatabaseBackend(strings.ToLower(input.StoreBackend))
	if _, ok := schema.ValidStoreBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	if err := ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect); err != nil {
		return err
	}

	// --- 7. Import Source Validation ---
	source, err := schema.ParseSampleSource(input.Source)
	if err != nil {
		return err
	}
	cfg.ImportSource = source

	return nil
}

// processTimezone resolves the aggregation timezone.
func processTimezone(cfg *Config, input *ConfigRawInput) error {
	if strings.TrimSpace(input.Timezone) == "" {
		cfg.Location = time.Local
		return nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(input.Timezone))
	if err != nil {
		return fmt.Errorf("invalid timezone '%s': %w", input.Timezone, err)
	}
	cfg.Location = loc
	return nil
}

// processProfile derives the user profile from --age and/or --birth-year.
// Either is sufficient; when both are given they must agree to within a year.
func processProfile(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if math.IsNaN(input.Age) || math.IsInf(input.Age, 0) {
		return fmt.Errorf("age must be a finite number of years")
	}
	if input.Age < 0 || input.Age > MaxProfileAgeYears {
		return fmt.Errorf("age must be between 0 and %d years (received %.2f)", MaxProfileAgeYears, input.Age)
	}

	cfg.Profile = schema.UserProfile{
		BirthYear:  input.BirthYear,
		CurrentAge: input.Age,
	}

	if input.BirthYear != 0 {
		if input.BirthYear < 1850 || input.BirthYear > now.Year() {
			return fmt.Errorf("birth year must be between 1850 and %d (received %d)", now.Year(), input.BirthYear)
		}
		derived := AgeAtTime(input.BirthYear, now)
		if input.Age == 0 {
			cfg.Profile.CurrentAge = derived
		} else if math.Abs(input.Age-derived) > 1.0 {
			return fmt.Errorf("age %.1f does not match birth year %d (expected roughly %.1f)", input.Age, input.BirthYear, derived)
		}
	}

	return nil
}

// processAnchor parses the optional --at reference instant.
func processAnchor(cfg *Config, input *ConfigRawInput, now time.Time) error {
	if strings.TrimSpace(input.At) == "" {
		cfg.Anchor = time.Time{}
		return nil
	}

	t, err := time.Parse(DateTimeFormat, strings.TrimSpace(input.At))
	if err == nil {
		cfg.Anchor = t.In(cfg.Location)
		return nil
	}

	t, relErr := ParseRelativeTime(input.At, now)
	if relErr != nil {
		return fmt.Errorf("invalid --at value '%s'. Expected absolute ISO8601 or 'N [units] ago': %v", input.At, err)
	}
	cfg.Anchor = t.In(cfg.Location)
	return nil
}

// processSpecs applies config-file curve overrides and study references.
func processSpecs(cfg *Config, input *ConfigRawInput) error {
	specs, err := schema.DefaultSpecs().ApplyOverrides(input.Metrics)
	if err != nil {
		return err
	}
	cfg.Specs = specs

	if len(input.Citations) == 0 {
		cfg.Citations = nil
		return nil
	}
	refs := make(schema.CitationSet, len(input.Citations))
	for name, entries := range input.Citations {
		t, err := schema.ParseMetricType(name)
		if err != nil {
			return fmt.Errorf("citations: %w", err)
		}
		for _, entry := range entries {
			if strings.TrimSpace(entry) == "" {
				continue
			}
			refs[t] = append(refs[t], schema.Citation(entry))
		}
	}
	cfg.Citations = refs
	return nil
}

// RevalidateAnchor re-parses a per-request reference-instant override.
func RevalidateAnchor(cfg *Config, at string, now time.Time) error {
	return processAnchor(cfg, &ConfigRawInput{At: at}, now)
}

// Clone returns a shallow copy of the config for per-request overrides.
// The specs and citations maps are shared; callers treat them as read-only.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// AnchorOrNow returns the configured reference instant, defaulting to the
// given wall clock, expressed in the configured timezone.
func (c *Config) AnchorOrNow(now time.Time) time.Time {
	if c.Anchor.IsZero() {
		return now.In(c.Location)
	}
	return c.Anchor
}
