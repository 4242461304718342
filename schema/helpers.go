package schema

import (
	"fmt"
	"math"
	"strings"
)

// Magnitude bucket thresholds in absolute per-day minutes.
const (
	smallImpactCeiling  = 5.0
	mediumImpactCeiling = 20.0
)

// ImpactBucket classifies an impact magnitude for recommendation framing.
func ImpactBucket(minutes float64) MagnitudeBucket {
	abs := math.Abs(minutes)
	switch {
	case abs < smallImpactCeiling:
		return SmallImpact
	case abs < mediumImpactCeiling:
		return MediumImpact
	default:
		return LargeImpact
	}
}

// ParseMetricType validates and normalizes a metric type name.
func ParseMetricType(s string) (MetricType, error) {
	t := MetricType(strings.TrimSpace(s))
	if _, ok := ValidMetricTypes[t]; !ok {
		return "", fmt.Errorf("invalid metric type %q", s)
	}
	return t, nil
}

// ParseSampleSource validates and normalizes a sample source name.
func ParseSampleSource(s string) (SampleSource, error) {
	src := SampleSource(strings.TrimSpace(s))
	if _, ok := ValidSampleSources[src]; !ok {
		return "", fmt.Errorf("invalid sample source %q", s)
	}
	return src, nil
}

// ParsePeriod validates and normalizes an aggregation period name.
func ParsePeriod(s string) (PeriodType, error) {
	p := PeriodType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := ValidPeriods[p]; !ok {
		return "", fmt.Errorf("invalid period %q (must be day, month or year)", s)
	}
	return p, nil
}

// FormatSignedMinutes renders an impact with an explicit sign, e.g. "+12.5"
// or "-3.0", so gained and lost minutes read unambiguously in tables.
func FormatSignedMinutes(minutes float64, precision int) string {
	if minutes >= 0 {
		return fmt.Sprintf("+%.*f", precision, minutes)
	}
	return fmt.Sprintf("%.*f", precision, minutes)
}

// DisplayName returns a human-readable name for a metric type.
func DisplayName(t MetricType) string {
	switch t {
	case RestingHeartRate:
		return "Resting Heart Rate"
	case Steps:
		return "Steps"
	case ActiveEnergyBurned:
		return "Active Energy Burned"
	case SleepHours:
		return "Sleep"
	case VO2Max:
		return "VO2 Max"
	case BodyMass:
		return "Body Mass"
	default:
		return string(t)
	}
}
