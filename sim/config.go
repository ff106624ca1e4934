package sim

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig marks configuration validation failures. All parameters
// are checked before any simulation work begins.
var ErrInvalidConfig = errors.New("invalid configuration")

// closePackingDensity is the hexagonal packing limit for discs, pi/(2*sqrt(3)).
// The rejection-sampling packer needs densities well below this to terminate,
// but anything at or above it is geometrically impossible.
const closePackingDensity = 0.9068996821171089

// Config groups all simulation parameters. Field defaults match the
// reference run; see DefaultConfig.
type Config struct {
	Sweeps         int `yaml:"sweeps"`          // number of Monte Carlo sweeps
	SampleInterval int `yaml:"sample_interval"` // sweeps between trajectory samples

	NumSmall      int     `yaml:"small_particles"` // small-species particle count
	NumLarge      int     `yaml:"large_particles"` // large-species particle count
	DiameterSmall float64 `yaml:"diameter_small"`
	DiameterLarge float64 `yaml:"diameter_large"`

	// Density sets the area fraction and thereby the box edge length.
	Density float64 `yaml:"density"`
	// MaxDisplacement is the maximum trial displacement per axis, as a
	// fraction of the moving particle's diameter.
	MaxDisplacement float64 `yaml:"max_displacement"`

	Seed int64 `yaml:"seed"`

	// MaxPlacementAttempts caps the rejection-sampling loop per particle
	// during packing. Exhaustion surfaces as a GenerationError instead of
	// looping forever.
	MaxPlacementAttempts int `yaml:"max_placement_attempts"`
}

// DefaultConfig returns the reference parameter set: 10000 sweeps sampled
// every 100, 1000 small and 100 large particles with a 10:1 diameter ratio,
// density 0.1, displacement fraction 0.1, seed 0.
func DefaultConfig() Config {
	return Config{
		Sweeps:               10000,
		SampleInterval:       100,
		NumSmall:             1000,
		NumLarge:             100,
		DiameterSmall:        1,
		DiameterLarge:        10,
		Density:              0.1,
		MaxDisplacement:      0.1,
		Seed:                 0,
		MaxPlacementAttempts: 10_000_000,
	}
}

// BoxLength derives the square box edge from particle counts, diameters and
// density: sqrt(pi*(nSmall*dSmall + nLarge*dLarge) / (4*density)).
func (c Config) BoxLength() float64 {
	occupied := math.Pi * (float64(c.NumSmall)*c.DiameterSmall + float64(c.NumLarge)*c.DiameterLarge)
	return math.Sqrt(occupied / (4 * c.Density))
}

// Diameter returns the configured diameter of a species.
func (c Config) Diameter(s Species) float64 {
	if s == SpeciesSmall {
		return c.DiameterSmall
	}
	return c.DiameterLarge
}

// Count returns the configured particle count of a species.
func (c Config) Count(s Species) int {
	if s == SpeciesSmall {
		return c.NumSmall
	}
	return c.NumLarge
}

// Validate rejects parameter sets the simulation cannot run. It is called
// by NewSimulator, so invalid input fails before any placement or sweep.
func (c Config) Validate() error {
	if c.Sweeps <= 0 {
		return fmt.Errorf("%w: sweeps must be positive, got %d", ErrInvalidConfig, c.Sweeps)
	}
	if c.SampleInterval <= 0 {
		return fmt.Errorf("%w: sample interval must be positive, got %d", ErrInvalidConfig, c.SampleInterval)
	}
	if c.NumSmall < 0 || c.NumLarge < 0 || c.NumSmall+c.NumLarge == 0 {
		return fmt.Errorf("%w: need a positive particle count, got %d small / %d large",
			ErrInvalidConfig, c.NumSmall, c.NumLarge)
	}
	if c.DiameterSmall <= 0 || c.DiameterLarge <= 0 {
		return fmt.Errorf("%w: diameters must be positive, got %g and %g",
			ErrInvalidConfig, c.DiameterSmall, c.DiameterLarge)
	}
	if c.Density <= 0 || c.Density >= closePackingDensity {
		return fmt.Errorf("%w: density %g outside (0, %.4f)", ErrInvalidConfig, c.Density, closePackingDensity)
	}
	if c.MaxDisplacement <= 0 {
		return fmt.Errorf("%w: max displacement must be positive, got %g", ErrInvalidConfig, c.MaxDisplacement)
	}
	if c.MaxPlacementAttempts <= 0 {
		return fmt.Errorf("%w: max placement attempts must be positive, got %d",
			ErrInvalidConfig, c.MaxPlacementAttempts)
	}
	// The minimum image convention needs each edge to span at least twice
	// the largest interaction cutoff.
	largest := math.Max(c.DiameterSmall, c.DiameterLarge)
	if c.BoxLength() < 2*largest {
		return fmt.Errorf("%w: box edge %.4f shorter than twice the largest diameter %g",
			ErrInvalidConfig, c.BoxLength(), largest)
	}
	// Wrapping applies a single correction, so one trial step must never
	// carry a particle a full box length out of range.
	if c.MaxDisplacement*largest >= c.BoxLength() {
		return fmt.Errorf("%w: max displacement %g steps up to %g per axis, at least the box edge %.4f",
			ErrInvalidConfig, c.MaxDisplacement, c.MaxDisplacement*largest, c.BoxLength())
	}
	return nil
}
