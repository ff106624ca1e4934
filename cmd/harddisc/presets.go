package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/Dakror/aabbtree/sim"
)

// Define struct for YAML
type PresetsFile struct {
	Presets map[string]yaml.Node `yaml:"presets"`
}

// ApplyPreset overlays the named preset from a YAML file onto base. Only the
// keys present in the preset are overridden, so a preset can adjust a single
// parameter and inherit the rest from the flags.
func ApplyPreset(path, name string, base sim.Config) (sim.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("reading presets file: %w", err)
	}

	var file PresetsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return base, fmt.Errorf("parsing presets file: %w", err)
	}

	node, ok := file.Presets[name]
	if !ok {
		return base, fmt.Errorf("preset %q not found in %s", name, path)
	}
	logrus.Infof("using preset %v", name)

	cfg := base
	if err := node.Decode(&cfg); err != nil {
		return base, fmt.Errorf("decoding preset %q: %w", name, err)
	}
	return cfg, nil
}
