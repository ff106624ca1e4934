package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Dakror/aabbtree"
)

// noExclusion disables self-exclusion in overlap checks.
const noExclusion = -1

// Recorder receives one configuration snapshot per sample. The engine only
// decides when to sample; serialization lives behind this interface.
type Recorder interface {
	RecordFrame(small, large []Point) error
}

// Simulator holds the full simulation state: the two position slices, the
// two spatial indices, and the sweep and sample counters. Positions are
// created once by Pack and mutated in place by accepted trial moves, with
// the owning species' index updated to match.
type Simulator struct {
	cfg      Config
	box      Box
	rng      RandomSource
	recorder Recorder

	positions [numSpecies][]Point
	indices   [numSpecies]SpatialIndex
	radius    [numSpecies]float64

	packed  bool
	sweep   int
	samples int

	Metrics *Metrics

	queryBuf []uint // reused broad-phase candidate buffer
}

// NewSimulator validates cfg and builds an empty simulation. The random
// source is the single stream for all draws; the recorder receives frames at
// the sample cadence.
func NewSimulator(cfg Config, rng RandomSource, recorder Recorder) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	box := SquareBox(cfg.BoxLength())
	s := &Simulator{
		cfg:      cfg,
		box:      box,
		rng:      rng,
		recorder: recorder,
		Metrics:  NewMetrics(),
	}
	for sp := SpeciesSmall; sp < numSpecies; sp++ {
		s.radius[sp] = 0.5 * cfg.Diameter(sp)
		s.positions[sp] = make([]Point, 0, cfg.Count(sp))
		s.indices[sp] = NewTreeIndex(cfg.MaxDisplacement, box, cfg.Count(sp))
	}
	return s, nil
}

// Box returns the simulation domain.
func (s *Simulator) Box() Box { return s.box }

// Positions returns the live position slice of a species. Callers must not
// mutate it.
func (s *Simulator) Positions(sp Species) []Point { return s.positions[sp] }

// Sweep returns the number of completed sweeps.
func (s *Simulator) Sweep() int { return s.sweep }

// Samples returns the number of recorded frames.
func (s *Simulator) Samples() int { return s.samples }

// Run executes the configured number of sweeps, packing first if Pack has
// not been called. Each sweep performs one trial move per particle on
// average; after every SampleInterval completed sweeps the recorder is
// invoked with the full configuration. A recorder failure aborts the run.
func (s *Simulator) Run() error {
	if !s.packed {
		if err := s.Pack(); err != nil {
			return err
		}
	}
	start := time.Now()

	nTotal := s.cfg.NumSmall + s.cfg.NumLarge
	nSamples := s.cfg.Sweeps / s.cfg.SampleInterval
	width := 1
	if nSamples > 0 {
		width = int(math.Floor(math.Log10(float64(nSamples)))) + 1
	}

	logrus.Info("running dynamics")
	for sweep := 1; sweep <= s.cfg.Sweeps; sweep++ {
		for t := 0; t < nTotal; t++ {
			if err := s.trialMove(); err != nil {
				return err
			}
		}
		s.sweep++

		if sweep%s.cfg.SampleInterval == 0 {
			if err := s.recorder.RecordFrame(s.positions[SpeciesSmall], s.positions[SpeciesLarge]); err != nil {
				return fmt.Errorf("recording trajectory frame %d: %w", s.samples+1, err)
			}
			s.samples++
			s.Metrics.SamplesWritten++
			logrus.Infof("saved configuration %*d of %*d", width, s.samples, width, nSamples)
		}
	}

	s.Metrics.Elapsed = time.Since(start)
	return nil
}

// trialMove proposes one random single-particle displacement and accepts it
// iff no hard-core overlap results. This is the zero-temperature Metropolis
// rule: acceptance probability 1 without overlap, 0 with.
//
// Draw order is contractual: particle pick, x displacement, y displacement.
func (s *Simulator) trialMove() error {
	s.Metrics.TrialMoves++

	pick := s.rng.IntInRange(0, s.cfg.NumSmall+s.cfg.NumLarge-1)
	sp := SpeciesSmall
	if pick >= s.cfg.NumSmall {
		sp = SpeciesLarge
		pick -= s.cfg.NumSmall
	}
	diameter := s.cfg.Diameter(sp)
	radius := s.radius[sp]

	pos := s.positions[sp][pick]
	pos[0] += s.cfg.MaxDisplacement * diameter * (2*s.rng.UniformReal() - 1)
	pos[1] += s.cfg.MaxDisplacement * diameter * (2*s.rng.UniformReal() - 1)
	pos = s.box.Wrap(pos)

	region := aabbtree.OfSphere(pos, radius)

	excludeSmall, excludeLarge := noExclusion, noExclusion
	if sp == SpeciesSmall {
		excludeSmall = pick
	} else {
		excludeLarge = pick
	}

	if s.overlapsSpecies(pos, region, radius, SpeciesSmall, excludeSmall) ||
		s.overlapsSpecies(pos, region, radius, SpeciesLarge, excludeLarge) {
		s.Metrics.RejectedMoves++
		return nil
	}

	// Accept: commit the position and update the index with the region of
	// the position actually accepted.
	s.positions[sp][pick] = pos
	if err := s.indices[sp].Update(uint(pick), region); err != nil {
		return fmt.Errorf("updating %s index for particle %d: %w", sp, pick, err)
	}
	s.Metrics.AcceptedMoves++
	return nil
}

// overlapsSpecies runs the broad phase against the target species' index and
// narrows each candidate with the exact minimum-image test. exclude skips
// one slot of the target species (the moving particle itself), or pass
// noExclusion.
func (s *Simulator) overlapsSpecies(pos Point, region aabbtree.AABB, radius float64, target Species, exclude int) bool {
	s.queryBuf = s.indices[target].Query(region, s.queryBuf[:0])
	cutoff := radius + s.radius[target]
	cutoffSq := cutoff * cutoff
	for _, id := range s.queryBuf {
		if exclude != noExclusion && id == uint(exclude) {
			continue
		}
		if s.box.Overlaps(pos, s.positions[target][id], cutoffSq) {
			return true
		}
	}
	return false
}
