package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// countRecorder counts frames and remembers the particle totals it saw.
type countRecorder struct {
	frames int
	totals []int
}

func (r *countRecorder) RecordFrame(small, large []Point) error {
	r.frames++
	r.totals = append(r.totals, len(small)+len(large))
	return nil
}

// failRecorder fails on the first frame.
type failRecorder struct{}

var errRecorderBroken = errors.New("disk full")

func (failRecorder) RecordFrame(small, large []Point) error {
	return errRecorderBroken
}

// assertNoOverlaps brute-forces every particle pair across both species and
// fails on any minimum-image distance below the sum of radii.
func assertNoOverlaps(t *testing.T, s *Simulator) {
	t.Helper()
	type member struct {
		pos    Point
		radius float64
	}
	var all []member
	for sp := SpeciesSmall; sp < numSpecies; sp++ {
		for _, p := range s.Positions(sp) {
			all = append(all, member{pos: p, radius: s.radius[sp]})
		}
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			cutoff := all[i].radius + all[j].radius
			if s.Box().Overlaps(all[i].pos, all[j].pos, cutoff*cutoff) {
				t.Fatalf("particles %d and %d overlap: cutoff %g", i, j, cutoff)
			}
		}
	}
}

func newTestSimulator(t *testing.T, cfg Config, rec Recorder) *Simulator {
	t.Helper()
	s, err := NewSimulator(cfg, NewRandomSource(cfg.Seed), rec)
	require.NoError(t, err)
	return s
}
