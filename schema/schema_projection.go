package schema

import "time"

// ImpactDetails is the scored form of one sample: a signed per-day-equivalent
// minute quantity plus the guidance derived from it. Positive minutes are
// lifespan gained, negative minutes lifespan lost. Immutable after creation.
type ImpactDetails struct {
	LifespanImpactMinutes float64    `json:"lifespanImpactMinutes"`
	Recommendation        string     `json:"recommendation"`
	StudyReferences       []Citation `json:"studyReferences,omitempty"`
}

// ScoredSample pairs a sample with its impact details.
type ScoredSample struct {
	Sample MetricSample  `json:"sample"`
	Impact ImpactDetails `json:"impact"`
}

// AggregatedImpact is the combined impact of a metric (or metric set) over
// one calendar window. TotalMinutes is the time-weighted mean of per-sample
// impacts scaled to the elapsed window length, never a naive sum of raw
// values. A SampleCount of zero always travels with ErrInsufficientData.
type AggregatedImpact struct {
	Period       PeriodType `json:"period"`
	Metric       MetricType `json:"metric,omitempty"` // empty for combined summaries
	TotalMinutes float64    `json:"totalMinutes"`
	DailyMinutes float64    `json:"dailyMinutes"` // time-weighted mean rate
	SampleCount  int        `json:"sampleCount"`
	WindowStart  time.Time  `json:"windowStart"`
	WindowEnd    time.Time  `json:"windowEnd"`
}

// LifeProjection is an immutable life-expectancy snapshot anchored at the
// instant it was computed. Consumers never mutate a projection; they request
// a new one. BirthYear and EndYear are fixed at the anchor so the countdown
// does not recompute them every tick.
type LifeProjection struct {
	Mode                        ProjectionMode `json:"mode"`
	BaseLifeExpectancyYears     float64        `json:"baseLifeExpectancyYears"`
	AdjustedLifeExpectancyYears float64        `json:"adjustedLifeExpectancyYears"`
	YearsRemaining              float64        `json:"yearsRemaining"`
	CurrentAgeYears             float64        `json:"currentAgeYears"` // age at the anchor
	Anchor                      time.Time      `json:"anchor"`
	BirthYear                   int            `json:"birthYear"`
	EndYear                     int            `json:"endYear"`
}

// ProjectionPair holds the current and optimal-habits projections computed
// from one refresh. Both share the same baseline and anchor so they remain
// directly comparable. Seq orders refreshes; a pair with an older Seq than
// the published one is stale and must be discarded.
type ProjectionPair struct {
	Current     LifeProjection                  `json:"current"`
	Optimal     LifeProjection                  `json:"optimal"`
	ExtraYears  float64                         `json:"extraYears"` // floor(optimal) - floor(current)
	ByMetric    map[MetricType]AggregatedImpact `json:"byMetric,omitempty"`
	Scored      []ScoredSample                  `json:"scored,omitempty"`
	Dropped     int                             `json:"dropped"` // invalid samples rejected during scoring
	Seq         uint64                          `json:"seq"`
	RefreshedAt time.Time                       `json:"refreshedAt"`
}

// RecommendationItem pairs a metric's aggregated daily impact with the
// guidance and study references derived from it.
type RecommendationItem struct {
	Metric       MetricType `json:"metric"`
	DailyMinutes float64    `json:"dailyMinutes"`
	SampleCount  int        `json:"sampleCount"`
	Text         string     `json:"text"`
	Citations    []Citation `json:"citations,omitempty"`
}

// LifespanData is the display-facing decomposition of a projection at one
// instant. Purely a function of (projection, now); recomputed on every tick
// and never persisted.
type LifespanData struct {
	Years   int `json:"years"`
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`

	Progress float64 `json:"progress"` // fraction of adjusted lifespan lived, in [0,1]

	BirthYear int `json:"birthYear"`
	EndYear   int `json:"endYear"`

	// ExtraYears is the whole-year delta the optimal scenario offers over
	// the current one. Nil when no optimal projection is available.
	ExtraYears *float64 `json:"extraYears,omitempty"`
}

// ZeroLifespanData is the placeholder shown when no projection could be
// computed. Display layers fall back to it rather than crashing.
func ZeroLifespanData() LifespanData {
	return LifespanData{}
}
