package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestBoxLengthFormula(t *testing.T) {
	cfg := DefaultConfig()
	// sqrt(pi*(1000*1 + 100*10) / (4*0.1))
	want := math.Sqrt(math.Pi * 2000 / 0.4)
	assert.InDelta(t, want, cfg.BoxLength(), 1e-12)
}

func TestSpeciesAccessors(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 1000, cfg.Count(SpeciesSmall))
	assert.Equal(t, 100, cfg.Count(SpeciesLarge))
	assert.Equal(t, 1.0, cfg.Diameter(SpeciesSmall))
	assert.Equal(t, 10.0, cfg.Diameter(SpeciesLarge))
	assert.Equal(t, SpeciesLarge, SpeciesSmall.Other())
	assert.Equal(t, SpeciesSmall, SpeciesLarge.Other())
}

func TestValidateRejectsBadParameters(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sweeps", func(c *Config) { c.Sweeps = 0 }},
		{"negative sweeps", func(c *Config) { c.Sweeps = -5 }},
		{"zero sample interval", func(c *Config) { c.SampleInterval = 0 }},
		{"negative small count", func(c *Config) { c.NumSmall = -1 }},
		{"no particles at all", func(c *Config) { c.NumSmall = 0; c.NumLarge = 0 }},
		{"zero small diameter", func(c *Config) { c.DiameterSmall = 0 }},
		{"negative large diameter", func(c *Config) { c.DiameterLarge = -2 }},
		{"zero density", func(c *Config) { c.Density = 0 }},
		{"density at close packing", func(c *Config) { c.Density = 0.91 }},
		{"zero displacement", func(c *Config) { c.MaxDisplacement = 0 }},
		{"zero attempt budget", func(c *Config) { c.MaxPlacementAttempts = 0 }},
		{"displacement step spans the box", func(c *Config) { c.MaxDisplacement = 13 }},
		{"box below twice the largest diameter", func(c *Config) {
			c.NumSmall, c.NumLarge = 2, 0
			c.DiameterSmall, c.DiameterLarge = 1, 1
			c.Density = 0.8
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}
