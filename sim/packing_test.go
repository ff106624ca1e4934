package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sparse reference scenario: generation must terminate quickly and leave a
// configuration with zero overlaps under a brute-force all-pairs check.
func TestPackSparseTerminatesWithoutOverlaps(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumSmall = 50
	cfg.NumLarge = 5
	cfg.DiameterSmall = 1
	cfg.DiameterLarge = 5
	cfg.Density = 0.1

	s := newTestSimulator(t, cfg, &countRecorder{})
	require.NoError(t, s.Pack())

	assert.Len(t, s.Positions(SpeciesSmall), 50)
	assert.Len(t, s.Positions(SpeciesLarge), 5)
	assertNoOverlaps(t, s)

	// Every placed position is inside the box.
	for sp := SpeciesSmall; sp < numSpecies; sp++ {
		for _, p := range s.Positions(sp) {
			for i := 0; i < 2; i++ {
				assert.GreaterOrEqual(t, p[i], 0.0)
				assert.Less(t, p[i], s.Box().Size[i])
			}
		}
	}

	assert.GreaterOrEqual(t, s.Metrics.PlacementAttempts, 55, "at least one attempt per particle")
}

func TestPackDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumSmall = 30
	cfg.NumLarge = 3

	a := newTestSimulator(t, cfg, &countRecorder{})
	b := newTestSimulator(t, cfg, &countRecorder{})
	require.NoError(t, a.Pack())
	require.NoError(t, b.Pack())

	assert.Equal(t, a.Positions(SpeciesSmall), b.Positions(SpeciesSmall))
	assert.Equal(t, a.Positions(SpeciesLarge), b.Positions(SpeciesLarge))
}

// Random sequential placement saturates far below the close-packing limit,
// so a high density with a small attempt budget must surface a
// GenerationError instead of spinning.
func TestPackExhaustionSurfacesGenerationError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumSmall = 500
	cfg.NumLarge = 50
	cfg.DiameterSmall = 1
	cfg.DiameterLarge = 1
	cfg.Density = 0.8
	cfg.MaxPlacementAttempts = 5

	s := newTestSimulator(t, cfg, &countRecorder{})
	err := s.Pack()
	require.Error(t, err)

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, 5, genErr.Attempts)
	assert.Equal(t, 0.8, genErr.Density)
	assert.NotEmpty(t, genErr.Error())
}

func TestPackTwiceFails(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NumSmall = 50
	cfg.NumLarge = 1

	s := newTestSimulator(t, cfg, &countRecorder{})
	require.NoError(t, s.Pack())
	assert.Error(t, s.Pack())
}
