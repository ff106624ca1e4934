package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/Dakror/aabbtree/sim"
)

func writePresets(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestApplyPresetOverridesOnlyGivenKeys(t *testing.T) {
	path := writePresets(t, `
presets:
  dilute:
    density: 0.05
    sweeps: 500
`)

	base := sim.DefaultConfig()
	got, err := ApplyPreset(path, "dilute", base)
	require.NoError(t, err)

	assert.Equal(t, 0.05, got.Density)
	assert.Equal(t, 500, got.Sweeps)
	// Everything else comes from the base.
	assert.Equal(t, base.NumSmall, got.NumSmall)
	assert.Equal(t, base.DiameterLarge, got.DiameterLarge)
	assert.Equal(t, base.Seed, got.Seed)
}

func TestApplyPresetUnknownName(t *testing.T) {
	path := writePresets(t, "presets:\n  a:\n    sweeps: 1\n")
	_, err := ApplyPreset(path, "missing", sim.DefaultConfig())
	assert.Error(t, err)
}

func TestApplyPresetMissingFile(t *testing.T) {
	_, err := ApplyPreset(filepath.Join(t.TempDir(), "nope.yaml"), "a", sim.DefaultConfig())
	assert.Error(t, err)
}

func TestApplyPresetMalformedYAML(t *testing.T) {
	path := writePresets(t, "presets: [not a map")
	_, err := ApplyPreset(path, "a", sim.DefaultConfig())
	assert.Error(t, err)
}
