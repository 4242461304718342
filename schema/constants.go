package schema

// Custom string types for type safety.
type (
	// MetricType identifies a kind of health measurement.
	MetricType string

	// SampleSource tells where a sample came from.
	SampleSource string

	// PeriodType represents a calendar aggregation window.
	PeriodType string

	// CurveKind represents the shape family of a scoring curve.
	CurveKind string

	// ProjectionMode selects actual or best-achievable scoring.
	ProjectionMode string

	// MagnitudeBucket classifies the size of an impact for recommendations.
	MagnitudeBucket string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the sample store.
	DatabaseBackend string
)

// All metric types supported.
const (
	RestingHeartRate   MetricType = "restingHeartRate"
	Steps              MetricType = "steps"
	ActiveEnergyBurned MetricType = "activeEnergyBurned"
	SleepHours         MetricType = "sleepHours"
	VO2Max             MetricType = "vo2Max"
	BodyMass           MetricType = "bodyMass"
)

// All sample sources supported.
const (
	DeviceSensor SampleSource = "deviceSensor"
	UserInput    SampleSource = "userInput"
)

// All aggregation periods supported.
const (
	DayPeriod   PeriodType = "day"
	MonthPeriod PeriodType = "month"
	YearPeriod  PeriodType = "year"
)

// All curve families. The metric-type set is closed, so curves are a small
// tagged set rather than open-ended dispatch.
const (
	LinearCurve  CurveKind = "linear"  // more is better, up to a cap
	InverseCurve CurveKind = "inverse" // less is better
	UShapedCurve CurveKind = "ushaped" // both under and over penalized
	BoundedCurve CurveKind = "bounded" // neutral inside a healthy band
)

// Projection modes.
const (
	CurrentMode ProjectionMode = "current"
	OptimalMode ProjectionMode = "optimal"
)

// Magnitude buckets for recommendation framing.
const (
	SmallImpact  MagnitudeBucket = "small"
	MediumImpact MagnitudeBucket = "medium"
	LargeImpact  MagnitudeBucket = "large"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Calendar constants shared by the projection and countdown math. The
// 365.25-day year keeps the live decomposition consistent with the
// projection arithmetic instead of chasing variable-length real months.
const (
	DaysPerYear    = 365.25
	MinutesPerDay  = 1440.0
	SecondsPerYear = 31_557_600 // 365.25 * 86400
)

// AllMetricTypes lists every metric type in display order.
var AllMetricTypes = []MetricType{
	RestingHeartRate,
	Steps,
	ActiveEnergyBurned,
	SleepHours,
	VO2Max,
	BodyMass,
}

// AllPeriods lists every aggregation period in display order.
var AllPeriods = []PeriodType{DayPeriod, MonthPeriod, YearPeriod}

// ValidMetricTypes lists all valid metric types.
var ValidMetricTypes = map[MetricType]struct{}{
	RestingHeartRate:   {},
	Steps:              {},
	ActiveEnergyBurned: {},
	SleepHours:         {},
	VO2Max:             {},
	BodyMass:           {},
}

// ValidSampleSources lists all valid sample sources.
var ValidSampleSources = map[SampleSource]struct{}{
	DeviceSensor: {},
	UserInput:    {},
}

// ValidPeriods lists all valid aggregation periods.
var ValidPeriods = map[PeriodType]struct{}{
	DayPeriod:   {},
	MonthPeriod: {},
	YearPeriod:  {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid sample store backends.
var ValidStoreBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
