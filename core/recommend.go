package core

import (
	"fmt"

	"github.com/lifetick/lifetick/schema"
)

// Phrase fragments keyed by metric type. Positive phrases credit the habit,
// negative ones attribute the loss.
var positivePhrases = map[schema.MetricType]string{
	schema.RestingHeartRate:   "thanks to your low resting heart rate",
	schema.Steps:              "thanks to your steps",
	schema.ActiveEnergyBurned: "thanks to your active energy burn",
	schema.SleepHours:         "thanks to your well-balanced sleep",
	schema.VO2Max:             "thanks to your aerobic fitness",
	schema.BodyMass:           "thanks to your healthy body mass",
}

var negativePhrases = map[schema.MetricType]string{
	schema.RestingHeartRate:   "due to an elevated resting heart rate",
	schema.Steps:              "due to a low step count",
	schema.ActiveEnergyBurned: "due to low activity energy",
	schema.SleepHours:         "due to poor sleep",
	schema.VO2Max:             "due to low aerobic fitness",
	schema.BodyMass:           "due to body mass outside the healthy range",
}

// Per-type corrective actions for negative impacts. Target values are pulled
// from the active spec so configuration overrides show up in the guidance.
func negativeAction(t schema.MetricType, specs schema.MetricSpecs) string {
	spec, ok := specs[t]
	if !ok {
		return "Keep tracking this metric to build a clearer picture."
	}
	switch t {
	case schema.RestingHeartRate:
		return fmt.Sprintf("Regular cardio can bring your resting heart rate toward %.0f %s.", spec.Target, spec.Unit)
	case schema.Steps:
		return fmt.Sprintf("Work toward %.0f steps per day.", spec.Target)
	case schema.ActiveEnergyBurned:
		return fmt.Sprintf("Aim to burn about %.0f %s of active energy daily.", spec.Target, spec.Unit)
	case schema.SleepHours:
		return fmt.Sprintf("Aim for about %.1f hours of sleep per night.", spec.Target)
	case schema.VO2Max:
		return fmt.Sprintf("Interval training can raise your VO2 max toward %.0f %s.", spec.Target, spec.Unit)
	case schema.BodyMass:
		return fmt.Sprintf("A body mass between %.0f and %.0f %s is associated with the best outcomes.", spec.RangeLow, spec.RangeHigh, spec.Unit)
	default:
		return "Keep tracking this metric to build a clearer picture."
	}
}

// Magnitude adverbs for framing how strongly the habit moves the needle.
var bucketAdverbs = map[schema.MagnitudeBucket]string{
	schema.SmallImpact:  "slightly",
	schema.MediumImpact: "notably",
	schema.LargeImpact:  "substantially",
}

// Recommend derives the natural-language guidance and citations for a metric
// from its impact sign and magnitude bucket. Deterministic template lookup;
// the returned text is never empty, while the citation list may be when no
// reference is configured for the type.
func Recommend(t schema.MetricType, minutes float64, specs schema.MetricSpecs, refs schema.CitationSet) (string, []schema.Citation) {
	cites := refs[t]

	phrasePos, known := positivePhrases[t]
	if !known {
		// Unknown or custom type: no curve, no target, generic guidance.
		return fmt.Sprintf("No target is defined for %s yet. Keep logging it so future guidance can use it.", schema.DisplayName(t)), cites
	}

	adverb := bucketAdverbs[schema.ImpactBucket(minutes)]
	switch {
	case minutes > 0:
		return fmt.Sprintf("You are %s extending your lifespan %s, gaining %.1f minutes per day. Keep it up.",
			adverb, phrasePos, minutes), cites
	case minutes < 0:
		return fmt.Sprintf("You are %s shortening your lifespan %s, losing %.1f minutes per day. %s",
			adverb, negativePhrases[t], -minutes, negativeAction(t, specs)), cites
	default:
		return fmt.Sprintf("Your %s is right on target. Maintaining it keeps your projection steady.",
			schema.DisplayName(t)), cites
	}
}
