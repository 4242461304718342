package schema

import "fmt"

// MetricSpec describes the scoring curve for one metric type. The numeric
// coefficients are product/medical-content decisions, so every field can be
// overridden through configuration; the values below are shipping defaults.
type MetricSpec struct {
	Type  MetricType `json:"type"`
	Curve CurveKind  `json:"curve"`
	Unit  string     `json:"unit"`

	// Target is the curve's reference input: the value scoring exactly zero
	// for linear/inverse curves and the bottom of the U for sleep.
	Target float64 `json:"target"`

	// RangeLow and RangeHigh bound the neutral band for bounded curves.
	// Unused by the other curve families.
	RangeLow  float64 `json:"rangeLow,omitempty"`
	RangeHigh float64 `json:"rangeHigh,omitempty"`

	// MinValid and MaxValid delimit the physiologically plausible input
	// range. Values outside are rejected, never clamped.
	MinValid float64 `json:"minValid"`
	MaxValid float64 `json:"maxValid"`

	// MaxDailyMinutes caps the per-day impact magnitude in either direction.
	MaxDailyMinutes float64 `json:"maxDailyMinutes"`
}

// MetricSpecs maps each metric type to its scoring curve.
type MetricSpecs map[MetricType]MetricSpec

// SpecOverride carries configurable coefficient overrides for one metric.
// Zero-valued fields leave the default untouched.
type SpecOverride struct {
	Target          float64 `mapstructure:"target"`
	RangeLow        float64 `mapstructure:"range-low"`
	RangeHigh       float64 `mapstructure:"range-high"`
	MinValid        float64 `mapstructure:"min-valid"`
	MaxValid        float64 `mapstructure:"max-valid"`
	MaxDailyMinutes float64 `mapstructure:"max-daily-minutes"`
}

// DefaultSpecs returns the shipping curve coefficients for every metric type.
func DefaultSpecs() MetricSpecs {
	return MetricSpecs{
		RestingHeartRate: {
			Type:            RestingHeartRate,
			Curve:           InverseCurve,
			Unit:            "bpm",
			Target:          65,
			MinValid:        25,
			MaxValid:        250,
			MaxDailyMinutes: 30,
		},
		Steps: {
			Type:            Steps,
			Curve:           LinearCurve,
			Unit:            "steps",
			Target:          10000,
			MinValid:        0,
			MaxValid:        100000,
			MaxDailyMinutes: 40,
		},
		ActiveEnergyBurned: {
			Type:            ActiveEnergyBurned,
			Curve:           LinearCurve,
			Unit:            "kcal",
			Target:          500,
			MinValid:        0,
			MaxValid:        6000,
			MaxDailyMinutes: 30,
		},
		SleepHours: {
			Type:            SleepHours,
			Curve:           UShapedCurve,
			Unit:            "hours",
			Target:          7.5,
			MinValid:        0,
			MaxValid:        24,
			MaxDailyMinutes: 60,
		},
		VO2Max: {
			Type:            VO2Max,
			Curve:           LinearCurve,
			Unit:            "mL/kg/min",
			Target:          40,
			MinValid:        10,
			MaxValid:        90,
			MaxDailyMinutes: 30,
		},
		BodyMass: {
			Type:            BodyMass,
			Curve:           BoundedCurve,
			Unit:            "kg",
			Target:          70,
			RangeLow:        55,
			RangeHigh:       85,
			MinValid:        25,
			MaxValid:        350,
			MaxDailyMinutes: 25,
		},
	}
}

// ApplyOverrides returns a copy of the specs with per-metric configuration
// overrides applied. Unknown metric names are rejected so a typo in the
// config file does not silently configure nothing.
func (m MetricSpecs) ApplyOverrides(overrides map[string]SpecOverride) (MetricSpecs, error) {
	out := make(MetricSpecs, len(m))
	for k, v := range m {
		out[k] = v
	}
	for name, ov := range overrides {
		t := MetricType(name)
		spec, ok := out[t]
		if !ok {
			return nil, fmt.Errorf("unknown metric type %q in overrides", name)
		}
		if ov.Target != 0 {
			spec.Target = ov.Target
		}
		if ov.RangeLow != 0 {
			spec.RangeLow = ov.RangeLow
		}
		if ov.RangeHigh != 0 {
			spec.RangeHigh = ov.RangeHigh
		}
		if ov.MinValid != 0 {
			spec.MinValid = ov.MinValid
		}
		if ov.MaxValid != 0 {
			spec.MaxValid = ov.MaxValid
		}
		if ov.MaxDailyMinutes != 0 {
			spec.MaxDailyMinutes = ov.MaxDailyMinutes
		}
		if spec.MinValid >= spec.MaxValid {
			return nil, fmt.Errorf("metric %q: min-valid %.2f must be below max-valid %.2f", name, spec.MinValid, spec.MaxValid)
		}
		out[t] = spec
	}
	return out, nil
}
