// Package parquet provides data structures and functions for exporting scored
// sample history and projection snapshots to Parquet files using
// github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/lifetick/lifetick/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoredSampleRecord is the flat Parquet row for one scored sample: the raw
// measurement plus the signed per-day-equivalent minutes it maps to.
type ScoredSampleRecord struct {
	// SampleID is the unique identifier of the sample
	SampleID string `parquet:"sample_id,snappy"`

	// MetricType identifies the kind of measurement
	MetricType string `parquet:"metric_type,snappy"`

	// Value is the raw measurement in the metric's natural unit
	Value float64 `parquet:"value,snappy"`

	// Source tells where the sample came from
	Source string `parquet:"source,snappy"`

	// RecordedAt is when the measurement was taken
	RecordedAt time.Time `parquet:"recorded_at,snappy"`

	// ImpactMinutes is the signed lifespan impact in minutes per day
	ImpactMinutes float64 `parquet:"impact_minutes,snappy"`

	// Recommendation is the guidance derived from the impact (nullable)
	Recommendation *string `parquet:"recommendation,optional,snappy"`
}

// ProjectionRecord is the flat Parquet row for one projection scenario.
// Each refresh produces two rows, one current and one optimal, sharing the
// same sequence number and anchor.
type ProjectionRecord struct {
	// Seq orders refreshes; both scenarios of a refresh share it
	Seq int64 `parquet:"seq,snappy"`

	// Mode is the projection scenario, current or optimal
	Mode string `parquet:"mode,snappy"`

	// BaseYears is the unadjusted life expectancy baseline
	BaseYears float64 `parquet:"base_years,snappy"`

	// AdjustedYears is the habit-adjusted life expectancy
	AdjustedYears float64 `parquet:"adjusted_years,snappy"`

	// YearsRemaining is the adjusted expectancy minus the anchor age
	YearsRemaining float64 `parquet:"years_remaining,snappy"`

	// CurrentAgeYears is the fractional age at the anchor
	CurrentAgeYears float64 `parquet:"current_age_years,snappy"`

	// Anchor is the instant the projection was computed at
	Anchor time.Time `parquet:"anchor,snappy"`

	// BirthYear and EndYear bound the projected lifespan
	BirthYear int32 `parquet:"birth_year,snappy"`
	EndYear   int32 `parquet:"end_year,snappy"`

	// ExtraYears is the whole-year gain the optimal scenario offers
	ExtraYears float64 `parquet:"extra_years,snappy"`

	// RefreshedAt is when the refresh producing this row completed
	RefreshedAt time.Time `parquet:"refreshed_at,snappy"`
}

// FromScoredSamples converts scored samples into Parquet rows.
func FromScoredSamples(scored []schema.ScoredSample) []ScoredSampleRecord {
	records := make([]ScoredSampleRecord, 0, len(scored))
	for _, s := range scored {
		record := ScoredSampleRecord{
			SampleID:      s.Sample.ID,
			MetricType:    string(s.Sample.Type),
			Value:         s.Sample.Value,
			Source:        string(s.Sample.Source),
			RecordedAt:    s.Sample.Timestamp,
			ImpactMinutes: s.Impact.LifespanImpactMinutes,
		}
		if s.Impact.Recommendation != "" {
			rec := s.Impact.Recommendation
			record.Recommendation = &rec
		}
		records = append(records, record)
	}
	return records
}

// FromProjectionPair converts one refresh into its two Parquet rows.
func FromProjectionPair(pair *schema.ProjectionPair) []ProjectionRecord {
	row := func(p schema.LifeProjection) ProjectionRecord {
		return ProjectionRecord{
			Seq:             int64(pair.Seq),
			Mode:            string(p.Mode),
			BaseYears:       p.BaseLifeExpectancyYears,
			AdjustedYears:   p.AdjustedLifeExpectancyYears,
			YearsRemaining:  p.YearsRemaining,
			CurrentAgeYears: p.CurrentAgeYears,
			Anchor:          p.Anchor,
			BirthYear:       int32(p.BirthYear),
			EndYear:         int32(p.EndYear),
			ExtraYears:      pair.ExtraYears,
			RefreshedAt:     pair.RefreshedAt,
		}
	}
	return []ProjectionRecord{row(pair.Current), row(pair.Optimal)}
}

// WriteScoredSamples writes scored sample rows to w in Parquet format.
func WriteScoredSamples(w io.Writer, records []ScoredSampleRecord) error {
	return writeRecords(w, records)
}

// WriteProjections writes projection rows to w in Parquet format.
func WriteProjections(w io.Writer, records []ProjectionRecord) error {
	return writeRecords(w, records)
}

// WriteScoredSamplesFile writes scored sample rows to a Parquet file at outputPath.
func WriteScoredSamplesFile(records []ScoredSampleRecord, outputPath string) error {
	return writeRecordsFile(records, outputPath)
}

// WriteProjectionsFile writes projection rows to a Parquet file at outputPath.
func WriteProjectionsFile(records []ProjectionRecord, outputPath string) error {
	return writeRecordsFile(records, outputPath)
}

// writeRecords writes rows to w using struct schema inference.
func writeRecords[T any](w io.Writer, records []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(records); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close flushes the footer; its error matters.
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// writeRecordsFile writes rows to a file at outputPath.
func writeRecordsFile[T any](records []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return writeRecords(file, records)
}
