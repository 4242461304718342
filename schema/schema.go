// Package schema has configs, models and shared constants for all parts of lifetick.
package schema

import "time"

// MetricSample is a single health measurement handed to the engine by the
// data-acquisition layer. Samples are immutable once created; the engine
// never mutates them.
type MetricSample struct {
	ID        string       `json:"id"`        // UUID assigned at ingest time
	Type      MetricType   `json:"type"`      // Which metric this sample measures
	Value     float64      `json:"value"`     // Raw measurement in the metric's unit
	Source    SampleSource `json:"source"`    // Device sensor or manual entry
	Timestamp time.Time    `json:"timestamp"` // When the measurement was taken
}

// UserProfile carries the demographic inputs needed for a projection.
// CurrentAge is always required; BirthYear may be zero when unknown.
// The engine reads the profile and never mutates it.
type UserProfile struct {
	BirthYear  int     `json:"birthYear,omitempty"`
	CurrentAge float64 `json:"currentAge"`
}

// Citation is a study reference attached to a recommendation. The engine
// stores and echoes citations supplied as configuration; it does not source
// or validate study content.
type Citation string

// CitationSet maps each metric type to its ordered study references.
type CitationSet map[MetricType][]Citation
