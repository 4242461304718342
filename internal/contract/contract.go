// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/lifetick/lifetick/schema"
)

// SampleStore defines the interface for persisting health metric samples.
// This allows the storage layer to be mocked for testing.
type SampleStore interface {
	// InsertSamples stores a batch of samples and returns how many were
	// written. Samples without an ID are assigned one on insert.
	InsertSamples(ctx context.Context, samples []schema.MetricSample) (int, error)

	// ListWindow returns all samples with timestamps in [start, end),
	// ordered by timestamp ascending.
	ListWindow(ctx context.Context, start, end time.Time) ([]schema.MetricSample, error)

	// GetStatus returns status information about the sample store.
	GetStatus(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// SampleLoader reads samples from an external file for import.
type SampleLoader interface {
	// Load parses the file at path into samples. Malformed rows fail the
	// whole load so a partial import never goes unnoticed.
	Load(path string) ([]schema.MetricSample, error)
}
