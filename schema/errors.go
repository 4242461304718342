package schema

import "errors"

// Sentinel errors returned by the engine. All failures are explicit results;
// the engine never retries internally and never panics on bad input.
var (
	// ErrInvalidSample marks a sample whose value falls outside the
	// metric's physiologically valid range. The sample is rejected, not
	// clamped; the caller decides whether to drop or flag it.
	ErrInvalidSample = errors.New("sample value outside valid range")

	// ErrInsufficientData marks an aggregation window with no samples.
	// Distinct from a zero-minute aggregate so callers can render "not
	// enough data yet" instead of implying a neutral outcome.
	ErrInsufficientData = errors.New("insufficient data for window")

	// ErrMissingBaseline means no baseline life expectancy was supplied.
	// The engine refuses to invent a default.
	ErrMissingBaseline = errors.New("baseline life expectancy not supplied")

	// ErrNegativeRemainingYears means the adjusted life expectancy fell
	// below the user's current age. The projection clamps remaining years
	// to zero and reports this condition alongside the usable result.
	ErrNegativeRemainingYears = errors.New("projected years remaining below zero")

	// ErrStaleRefresh means a refresh finished after a newer refresh had
	// already been published; its result was discarded.
	ErrStaleRefresh = errors.New("refresh superseded by a newer request")
)
