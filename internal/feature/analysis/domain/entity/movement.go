// Package entity defines the domain models for the analysis feature.
package entity

import (
	"time"

	pricesentity "swing_backend/internal/feature/prices/domain/entity"
)

// MovementType classifies the direction of a swing event.
type MovementType string

const (
	// MovementUp indicates the closing price rose by at least the target percentage.
	MovementUp MovementType = "UP"
	// MovementDown indicates the closing price fell by at least the target percentage.
	MovementDown MovementType = "DOWN"
)

// MovementEvent is one confirmed swing: the cumulative move from a floating
// reference point that first crossed the caller's threshold.
//
// Events produced by one segmentation run are contiguous: the end of one
// swing is the reference point of the next, so EndDate of event i equals
// StartDate of event i+1.
type MovementEvent struct {
	StartDate        time.Time    // Reference point the move is measured from
	EndDate          time.Time    // First sample at which the move crossed the threshold
	StartPrice       float64      // Closing price at StartDate
	EndPrice         float64      // Closing price at EndDate
	Type             MovementType // Direction of the move
	PercentageChange float64      // Signed change, (end-start)/start × 100
	DaysTaken        int          // Calendar-day span between StartDate and EndDate
	Context          string       // Causal explanation, empty until enrichment settles
}

// AnalysisResult holds the outcome of one analysis run. It is published as
// soon as segmentation completes and filled in progressively as enrichment
// responses arrive.
type AnalysisResult struct {
	Ticker           string
	Year             int
	TargetPercentage float64 // Threshold in percent, post-clamp (>= 2)
	Data             []pricesentity.PricePoint
	Movements        []MovementEvent
}
