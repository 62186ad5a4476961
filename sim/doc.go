// Package sim provides the core page-replacement simulation engine.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - frames.go: FrameSet, the bounded insertion-ordered residency state
//   - eviction.go: EvictionPolicy and its FIFO, LRU and MRU variants
//   - simulator.go: Run, which drives one policy over one reference stream
//
// # Architecture
//
// The sim package owns the per-run state and the policy contract; everything
// derived from a run lives in sub-packages:
//   - sim/trace/: per-step trace records and summaries (pure data)
//   - sim/features/: feature vectors extracted from a stream and its trace
//   - sim/dataset/: randomized dataset synthesis, encoding and holdout splits
//   - sim/classifier/: the fit/predict boundary and a random forest model
//
// # Determinism
//
// Run is a pure function of (policy, stream, capacity). Randomness elsewhere is
// drawn from PartitionedRNG subsystems, so a seed reproduces every dataset,
// split and model bit for bit.
package sim
