package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Dakror/aabbtree"
)

// GenerationError reports that the packer exhausted its attempt budget for
// one particle. The usual cause is a density too close to the packing limit;
// lowering it (or raising MaxPlacementAttempts) is the caller's call.
type GenerationError struct {
	Species  Species
	Particle int
	Attempts int
	Density  float64
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("packing: no overlap-free position for %s particle %d after %d attempts at density %g",
		e.Species, e.Particle, e.Attempts, e.Density)
}

// Pack populates both species with overlap-free random positions and fills
// the spatial indices. The large species goes first so that small particles
// fill the gaps between already-placed large ones; reversed, finding room
// for a large disc among settled small ones gets expensive fast.
func (s *Simulator) Pack() error {
	if s.packed {
		return fmt.Errorf("packing: already generated")
	}
	for _, sp := range []Species{SpeciesLarge, SpeciesSmall} {
		logrus.Infof("placing %d %s particles", s.cfg.Count(sp), sp)
		if err := s.placeSpecies(sp); err != nil {
			return err
		}
	}
	s.packed = true
	return nil
}

// placeSpecies runs rejection sampling for each particle of sp: draw a
// uniform candidate, test against the other (already complete) species,
// then against the previously placed members of sp itself. Candidates are
// redrawn until both tests pass or the attempt budget runs out.
func (s *Simulator) placeSpecies(sp Species) error {
	other := sp.Other()
	for i := 0; i < s.cfg.Count(sp); i++ {
		attempts := 0
		for {
			if attempts >= s.cfg.MaxPlacementAttempts {
				return &GenerationError{Species: sp, Particle: i, Attempts: attempts, Density: s.cfg.Density}
			}
			attempts++

			pos := Point{
				s.box.Size[0] * s.rng.UniformReal(),
				s.box.Size[1] * s.rng.UniformReal(),
			}
			region := aabbtree.OfSphere(pos, s.radius[sp])

			if s.overlapsSpecies(pos, region, s.radius[sp], other, noExclusion) {
				continue
			}
			// The first particle of a species has no siblings to collide with.
			if i > 0 && s.overlapsSpecies(pos, region, s.radius[sp], sp, noExclusion) {
				continue
			}

			if err := s.indices[sp].Insert(uint(i), region); err != nil {
				return fmt.Errorf("packing: %w", err)
			}
			s.positions[sp] = append(s.positions[sp], pos)
			s.Metrics.PlacementAttempts += attempts
			break
		}
	}
	return nil
}
