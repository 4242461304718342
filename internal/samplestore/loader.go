package samplestore

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/lifetick/lifetick/internal/contract"
	"github.com/lifetick/lifetick/schema"
)

// CSVLoader reads samples from a CSV file with a header row. Required
// columns: type, value, timestamp (RFC3339). Optional columns: source
// (falls back to the configured default) and id.
type CSVLoader struct {
	DefaultSource schema.SampleSource
}

var _ contract.SampleLoader = CSVLoader{} // Compile-time check

// Load parses the CSV file at path into samples.
func (l CSVLoader) Load(path string) ([]schema.MetricSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"type", "value", "timestamp"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("CSV header is missing required column %q", required)
		}
	}

	var samples []schema.MetricSample
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		metricType, err := schema.ParseMetricType(record[cols["type"]])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		value, err := strconv.ParseFloat(strings.TrimSpace(record[cols["value"]]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid value %q", line, record[cols["value"]])
		}

		ts, err := time.Parse(time.RFC3339, strings.TrimSpace(record[cols["timestamp"]]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid timestamp %q (expected RFC3339)", line, record[cols["timestamp"]])
		}

		source := l.DefaultSource
		if idx, ok := cols["source"]; ok && strings.TrimSpace(record[idx]) != "" {
			source, err = schema.ParseSampleSource(record[idx])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
		}

		var id string
		if idx, ok := cols["id"]; ok {
			id = strings.TrimSpace(record[idx])
		}

		samples = append(samples, schema.MetricSample{
			ID:        id,
			Type:      metricType,
			Value:     value,
			Source:    source,
			Timestamp: ts,
		})
	}

	return samples, nil
}

// JSONLoader reads samples from a JSON file holding an array of sample
// objects. Missing sources fall back to the configured default.
type JSONLoader struct {
	DefaultSource schema.SampleSource
}

var _ contract.SampleLoader = JSONLoader{} // Compile-time check

// Load parses the JSON file at path into samples.
func (l JSONLoader) Load(path string) ([]schema.MetricSample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var samples []schema.MetricSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	for i := range samples {
		if samples[i].Source == "" {
			samples[i].Source = l.DefaultSource
		}
		if _, err := schema.ParseMetricType(string(samples[i].Type)); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if _, err := schema.ParseSampleSource(string(samples[i].Source)); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if samples[i].Timestamp.IsZero() {
			return nil, fmt.Errorf("sample %d: missing timestamp", i)
		}
	}

	return samples, nil
}

// NewLoaderForFile picks the loader matching the file extension.
func NewLoaderForFile(path string, defaultSource schema.SampleSource) (contract.SampleLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return CSVLoader{DefaultSource: defaultSource}, nil
	case ".json":
		return JSONLoader{DefaultSource: defaultSource}, nil
	default:
		return nil, fmt.Errorf("unsupported import format %q (expected .csv or .json)", filepath.Ext(path))
	}
}
