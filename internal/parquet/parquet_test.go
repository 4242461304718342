package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lifetick/lifetick/schema"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exportNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func sampleScored() []schema.ScoredSample {
	return []schema.ScoredSample{
		{
			Sample: schema.MetricSample{
				ID:        "a1b2c3",
				Type:      schema.Steps,
				Value:     12000,
				Source:    schema.DeviceSensor,
				Timestamp: exportNow.Add(-2 * time.Hour),
			},
			Impact: schema.ImpactDetails{
				LifespanImpactMinutes: 8.0,
				Recommendation:        "Keep up your current step count.",
			},
		},
		{
			Sample: schema.MetricSample{
				ID:        "d4e5f6",
				Type:      schema.SleepHours,
				Value:     5.0,
				Source:    schema.UserInput,
				Timestamp: exportNow.Add(-1 * time.Hour),
			},
			Impact: schema.ImpactDetails{
				LifespanImpactMinutes: -6.7,
				// No recommendation attached, exercises the nullable column.
			},
		},
	}
}

func samplePair() *schema.ProjectionPair {
	return &schema.ProjectionPair{
		Current: schema.LifeProjection{
			Mode:                        schema.CurrentMode,
			BaseLifeExpectancyYears:     81.0,
			AdjustedLifeExpectancyYears: 80.2,
			YearsRemaining:              40.0,
			CurrentAgeYears:             40.2,
			Anchor:                      exportNow,
			BirthYear:                   1986,
			EndYear:                     2066,
		},
		Optimal: schema.LifeProjection{
			Mode:                        schema.OptimalMode,
			BaseLifeExpectancyYears:     81.0,
			AdjustedLifeExpectancyYears: 91.1,
			YearsRemaining:              50.9,
			CurrentAgeYears:             40.2,
			Anchor:                      exportNow,
			BirthYear:                   1986,
			EndYear:                     2077,
		},
		ExtraYears:  10,
		Seq:         3,
		RefreshedAt: exportNow,
	}
}

func TestScoredSampleRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(ScoredSampleRecord))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"sample_id",
		"metric_type",
		"value",
		"source",
		"recorded_at",
		"impact_minutes",
		"recommendation",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestProjectionRecordStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(ProjectionRecord))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"seq",
		"mode",
		"base_years",
		"adjusted_years",
		"years_remaining",
		"current_age_years",
		"anchor",
		"birth_year",
		"end_year",
		"extra_years",
		"refreshed_at",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestFromScoredSamples(t *testing.T) {
	records := FromScoredSamples(sampleScored())
	require.Len(t, records, 2)

	assert.Equal(t, "a1b2c3", records[0].SampleID)
	assert.Equal(t, "steps", records[0].MetricType)
	assert.Equal(t, "deviceSensor", records[0].Source)
	require.NotNil(t, records[0].Recommendation)
	assert.Equal(t, "Keep up your current step count.", *records[0].Recommendation)

	assert.Equal(t, "sleepHours", records[1].MetricType)
	assert.InDelta(t, -6.7, records[1].ImpactMinutes, 1e-9)
	assert.Nil(t, records[1].Recommendation)
}

func TestFromProjectionPair(t *testing.T) {
	records := FromProjectionPair(samplePair())
	require.Len(t, records, 2)

	assert.Equal(t, "current", records[0].Mode)
	assert.Equal(t, "optimal", records[1].Mode)
	for _, r := range records {
		assert.Equal(t, int64(3), r.Seq)
		assert.Equal(t, int32(1986), r.BirthYear)
		assert.InDelta(t, 10.0, r.ExtraYears, 1e-9)
	}
	assert.Equal(t, int32(2066), records[0].EndYear)
	assert.Equal(t, int32(2077), records[1].EndYear)
}

func TestWriteScoredSamplesFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "scored_samples.parquet")

	data := FromScoredSamples(sampleScored())
	require.NotEmpty(t, data)

	err := WriteScoredSamplesFile(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	// Read back and verify data
	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ScoredSampleRecord](file)
	defer reader.Close()

	readData := make([]ScoredSampleRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	assert.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].SampleID, readData[i].SampleID)
		assert.Equal(t, data[i].MetricType, readData[i].MetricType)
		assert.InDelta(t, data[i].Value, readData[i].Value, 1e-9)
		assert.InDelta(t, data[i].ImpactMinutes, readData[i].ImpactMinutes, 1e-9)
		assert.WithinDuration(t, data[i].RecordedAt, readData[i].RecordedAt, time.Nanosecond)

		if data[i].Recommendation == nil {
			assert.Nil(t, readData[i].Recommendation)
		} else {
			require.NotNil(t, readData[i].Recommendation)
			assert.Equal(t, *data[i].Recommendation, *readData[i].Recommendation)
		}
	}
}

func TestWriteProjectionsFile(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "projections.parquet")

	data := FromProjectionPair(samplePair())
	err := WriteProjectionsFile(data, outputPath)
	require.NoError(t, err, "Writing Parquet file should not produce error")

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ProjectionRecord](file)
	defer reader.Close()

	readData := make([]ProjectionRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err, "Should be able to read data")
	}
	require.Equal(t, len(data), n, "Should read all records")

	for i := 0; i < len(data); i++ {
		assert.Equal(t, data[i].Mode, readData[i].Mode)
		assert.Equal(t, data[i].Seq, readData[i].Seq)
		assert.InDelta(t, data[i].AdjustedYears, readData[i].AdjustedYears, 1e-9)
		assert.Equal(t, data[i].EndYear, readData[i].EndYear)
		assert.WithinDuration(t, data[i].Anchor, readData[i].Anchor, time.Nanosecond)
	}
}

func TestWriteScoredSamplesEmptyData(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "empty_scored_samples.parquet")

	err := WriteScoredSamplesFile([]ScoredSampleRecord{}, outputPath)
	require.NoError(t, err, "Writing empty data should not produce error")

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Even an empty file carries the schema footer")
}
