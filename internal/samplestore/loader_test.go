package samplestore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lifetick/lifetick/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVLoader(t *testing.T) {
	t.Run("full columns", func(t *testing.T) {
		path := writeTempFile(t, "samples.csv", `type,value,timestamp,source,id
steps,12000,2026-03-10T08:00:00Z,userInput,abc-123
sleepHours,7.5,2026-03-10T07:00:00Z,,
`)
		samples, err := CSVLoader{DefaultSource: schema.DeviceSensor}.Load(path)
		require.NoError(t, err)
		require.Len(t, samples, 2)

		assert.Equal(t, schema.Steps, samples[0].Type)
		assert.Equal(t, schema.UserInput, samples[0].Source)
		assert.Equal(t, "abc-123", samples[0].ID)

		// Empty source falls back to the default.
		assert.Equal(t, schema.DeviceSensor, samples[1].Source)
		assert.Empty(t, samples[1].ID)
	})

	t.Run("minimal columns", func(t *testing.T) {
		path := writeTempFile(t, "samples.csv", `type,value,timestamp
restingHeartRate,62,2026-03-10T08:00:00Z
`)
		samples, err := CSVLoader{DefaultSource: schema.DeviceSensor}.Load(path)
		require.NoError(t, err)
		require.Len(t, samples, 1)
		assert.InDelta(t, 62.0, samples[0].Value, 0.0001)
	})

	t.Run("rejections", func(t *testing.T) {
		tests := []struct {
			name    string
			content string
		}{
			{"missing column", "type,value\nsteps,1\n"},
			{"bad type", "type,value,timestamp\nkarma,1,2026-03-10T08:00:00Z\n"},
			{"bad value", "type,value,timestamp\nsteps,lots,2026-03-10T08:00:00Z\n"},
			{"bad timestamp", "type,value,timestamp\nsteps,1,yesterday\n"},
			{"bad source", "type,value,timestamp,source\nsteps,1,2026-03-10T08:00:00Z,telepathy\n"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := writeTempFile(t, "bad.csv", tt.content)
				_, err := CSVLoader{DefaultSource: schema.DeviceSensor}.Load(path)
				assert.Error(t, err)
			})
		}
	})
}

func TestJSONLoader(t *testing.T) {
	t.Run("valid array", func(t *testing.T) {
		path := writeTempFile(t, "samples.json", `[
			{"type": "steps", "value": 12000, "timestamp": "2026-03-10T08:00:00Z", "source": "userInput"},
			{"type": "sleepHours", "value": 7.5, "timestamp": "2026-03-10T07:00:00Z"}
		]`)
		samples, err := JSONLoader{DefaultSource: schema.DeviceSensor}.Load(path)
		require.NoError(t, err)
		require.Len(t, samples, 2)
		assert.Equal(t, schema.UserInput, samples[0].Source)
		assert.Equal(t, schema.DeviceSensor, samples[1].Source)
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		path := writeTempFile(t, "samples.json", `[{"type": "karma", "value": 1, "timestamp": "2026-03-10T08:00:00Z"}]`)
		_, err := JSONLoader{DefaultSource: schema.DeviceSensor}.Load(path)
		assert.Error(t, err)
	})

	t.Run("missing timestamp rejected", func(t *testing.T) {
		path := writeTempFile(t, "samples.json", `[{"type": "steps", "value": 1}]`)
		_, err := JSONLoader{DefaultSource: schema.DeviceSensor}.Load(path)
		assert.Error(t, err)
	})
}

func TestNewLoaderForFile(t *testing.T) {
	loader, err := NewLoaderForFile("data.csv", schema.DeviceSensor)
	require.NoError(t, err)
	assert.IsType(t, CSVLoader{}, loader)

	loader, err = NewLoaderForFile("data.JSON", schema.DeviceSensor)
	require.NoError(t, err)
	assert.IsType(t, JSONLoader{}, loader)

	_, err = NewLoaderForFile("data.xml", schema.DeviceSensor)
	assert.Error(t, err)
}
