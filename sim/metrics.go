package sim

import (
	"math"

	"github.com/inference-sim/pagesim/sim/trace"
)

// HitRatio returns the hit percentage round((1 - faults/total) * 100, 2).
// Returns 0 for an empty stream.
func HitRatio(faults, total int) float64 {
	return trace.HitRatio(faults, total)
}

// UniqueCount returns the number of distinct pages in refs.
func UniqueCount(refs []int) int {
	seen := make(map[int]struct{}, len(refs))
	for _, p := range refs {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// RepetitionRatio returns round(1 - unique/len, 2), the share of references that
// revisit an already-seen page. Returns 0 for an empty stream.
func RepetitionRatio(refs []int) float64 {
	if len(refs) == 0 {
		return 0
	}
	return math.Round((1-float64(UniqueCount(refs))/float64(len(refs)))*100) / 100
}

// RandomReferences draws length pages uniformly from [0, maxPage] using the
// references subsystem of rng.
func RandomReferences(rng *PartitionedRNG, length, maxPage int) []int {
	r := rng.ForSubsystem(SubsystemReferences)
	refs := make([]int, length)
	for i := range refs {
		refs[i] = r.Intn(maxPage + 1)
	}
	return refs
}
