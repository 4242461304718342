package schema

import "time"

// StoreStatus represents the status of the sample store.
type StoreStatus struct {
	Backend          string             `json:"backend"`
	Connected        bool               `json:"connected"`
	TotalSamples     int                `json:"total_samples"`
	LastSampleTime   time.Time          `json:"last_sample_time"`
	OldestSampleTime time.Time          `json:"oldest_sample_time"`
	ByType           map[MetricType]int `json:"by_type"`
}
