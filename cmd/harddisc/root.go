package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/Dakror/aabbtree/sim"
	"github.com/Dakror/aabbtree/sim/trajectory"
)

var (
	// CLI flags for the simulation parameters
	seed                 int64   // Seed for the shared random stream
	sweeps               int     // Number of Monte Carlo sweeps
	sampleInterval       int     // Sweeps between trajectory samples
	nSmall               int     // Number of small particles
	nLarge               int     // Number of large particles
	diameterSmall        float64 // Small particle diameter
	diameterLarge        float64 // Large particle diameter
	density              float64 // System area fraction
	maxDisplacement      float64 // Max trial displacement (fraction of diameter)
	maxPlacementAttempts int     // Packing attempt budget per particle
	logLevel             string  // Log verbosity level
	output               string  // Trajectory output path
	configFile           string  // YAML presets file
	preset               string  // Named preset inside the presets file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "harddisc",
	Short: "Monte Carlo simulator for a binary hard-disc fluid",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the hard-disc simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.Config{
			Sweeps:               sweeps,
			SampleInterval:       sampleInterval,
			NumSmall:             nSmall,
			NumLarge:             nLarge,
			DiameterSmall:        diameterSmall,
			DiameterLarge:        diameterLarge,
			Density:              density,
			MaxDisplacement:      maxDisplacement,
			Seed:                 seed,
			MaxPlacementAttempts: maxPlacementAttempts,
		}
		if configFile != "" {
			cfg, err = ApplyPreset(configFile, preset, cfg)
			if err != nil {
				logrus.Fatalf("Could not load preset: %v", err)
			}
		}

		logrus.Infof("starting simulation: %d sweeps, %d small + %d large particles, density %g, box edge %.4f",
			cfg.Sweeps, cfg.NumSmall, cfg.NumLarge, cfg.Density, cfg.BoxLength())

		rec, err := trajectory.Create(output)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		defer rec.Close()

		s, err := sim.NewSimulator(cfg, sim.NewRandomSource(cfg.Seed), rec)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := s.Pack(); err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := s.Run(); err != nil {
			logrus.Fatalf("%v", err)
		}
		s.Metrics.Print()

		logrus.Info("Simulation complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	defaults := sim.DefaultConfig()

	runCmd.Flags().Int64Var(&seed, "seed", defaults.Seed, "Seed for the shared random stream")
	runCmd.Flags().IntVar(&sweeps, "sweeps", defaults.Sweeps, "Number of Monte Carlo sweeps")
	runCmd.Flags().IntVar(&sampleInterval, "sample-interval", defaults.SampleInterval, "Sweeps between trajectory samples")
	runCmd.Flags().IntVar(&nSmall, "small", defaults.NumSmall, "Number of small particles")
	runCmd.Flags().IntVar(&nLarge, "large", defaults.NumLarge, "Number of large particles")
	runCmd.Flags().Float64Var(&diameterSmall, "diameter-small", defaults.DiameterSmall, "Small particle diameter")
	runCmd.Flags().Float64Var(&diameterLarge, "diameter-large", defaults.DiameterLarge, "Large particle diameter")
	runCmd.Flags().Float64Var(&density, "density", defaults.Density, "System area fraction (box edge is derived from it)")
	runCmd.Flags().Float64Var(&maxDisplacement, "max-displacement", defaults.MaxDisplacement, "Maximum trial displacement as a fraction of diameter")
	runCmd.Flags().IntVar(&maxPlacementAttempts, "max-placement-attempts", defaults.MaxPlacementAttempts, "Packing attempt budget per particle")
	runCmd.Flags().StringVar(&logLevel, "log", "info", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&output, "output", "trajectory.xyz", "Trajectory output file (truncated at start)")
	runCmd.Flags().StringVar(&configFile, "config", "", "YAML presets file")
	runCmd.Flags().StringVar(&preset, "preset", "", "Named preset to apply from the presets file")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
