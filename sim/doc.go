// Package sim provides the core Monte Carlo engine for the binary hard-disc
// fluid simulation.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - geometry.go: periodic wrap, minimum-image separation, the exact overlap test
//   - packing.go: overlap-free random initial placement of both species
//   - simulator.go: the sweep loop, trial moves, and accept/reject
//
// # Architecture
//
// Two particle species (small and large, 10:1 diameter ratio by default)
// live in a periodic square box. Each species owns a dense position slice
// and a broad-phase spatial index; a particle's identity is its slot in the
// slice. Cross-species overlap checks query the other species' index
// read-only, so each index has exactly one mutator.
//
// The extension points are small interfaces:
//   - SpatialIndex: broad-phase bounding-region index (insert, update, query)
//   - RandomSource: the seeded uniform stream driving every draw
//   - Recorder: receives configuration snapshots at the sample cadence
//
// Determinism is a hard requirement: all randomness flows through a single
// explicitly passed RandomSource, and the draw order (packing draws, then
// per trial the particle pick followed by the two displacement draws) is
// part of the engine's contract. Two runs with the same seed and
// configuration produce byte-identical trajectories.
package sim
