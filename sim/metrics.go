// Tracks run-wide counters for final reporting.

package sim

import (
	"fmt"
	"time"
)

// Metrics aggregates statistics about the simulation for final reporting.
// Useful for judging move-size tuning (acceptance fraction) and packing
// difficulty (placement attempts) at a given density.
type Metrics struct {
	TrialMoves        int // trial moves proposed
	AcceptedMoves     int // trials committed
	RejectedMoves     int // trials discarded due to overlap
	PlacementAttempts int // total rejection-sampling draws during packing
	SamplesWritten    int // trajectory frames recorded

	Elapsed time.Duration // wall time of the sweep loop
}

// NewMetrics returns zeroed metrics.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// AcceptanceFraction is accepted/trials, 0 for an empty run.
func (m *Metrics) AcceptanceFraction() float64 {
	if m.TrialMoves == 0 {
		return 0
	}
	return float64(m.AcceptedMoves) / float64(m.TrialMoves)
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print() {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Trial Moves          : %d\n", m.TrialMoves)
	fmt.Printf("Accepted Moves       : %d\n", m.AcceptedMoves)
	fmt.Printf("Rejected Moves       : %d\n", m.RejectedMoves)
	fmt.Printf("Acceptance Fraction  : %.4f\n", m.AcceptanceFraction())
	fmt.Printf("Placement Attempts   : %d\n", m.PlacementAttempts)
	fmt.Printf("Samples Written      : %d\n", m.SamplesWritten)
	fmt.Printf("Elapsed              : %.3fs\n", m.Elapsed.Seconds())
}
