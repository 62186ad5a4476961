// Package dataset synthesizes labeled page-fault datasets from randomized
// simulations and encodes them for a classifier.
package dataset

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/features"
)

// Row is one labeled training example: the features of a step, the policy that
// was simulated and whether that step faulted.
type Row struct {
	features.Vector
	Policy string `json:"policy"`
	Fault  int    `json:"fault"`
}

// Sample is one randomly drawn simulation configuration.
type Sample struct {
	Capacity int
	MaxPage  int
	Refs     []int
}

// SynthesizeN generates sampleCount configurations with the default ranges and the
// given seed. sampleCount == 0 yields an empty dataset.
func SynthesizeN(sampleCount int, seed int64) ([]Row, error) {
	cfg := DefaultConfig()
	cfg.Samples = sampleCount
	cfg.Seed = seed
	return Synthesize(cfg)
}

// Synthesize generates cfg.Samples configurations and simulates each under every
// configured policy, emitting one Row per step per policy.
//
// All draws come from one sequential stream (SubsystemSynthesis), in this order per
// sample: capacity, length, max page, then each page of the stream. Rows are emitted
// per sample, then per policy in FIFO, LRU, MRU order, then per step. Identical
// configs therefore produce identical datasets.
func Synthesize(cfg Config) ([]Row, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(cfg.Seed)).ForSubsystem(sim.SubsystemSynthesis)
	policies := cfg.policies()

	rows := make([]Row, 0)
	for i := 0; i < cfg.Samples; i++ {
		s := drawSample(rng, &cfg)
		for _, name := range policies {
			sampleRows, err := simulateSample(name, s)
			if err != nil {
				return nil, errors.Wrapf(err, "sample %d, policy %s", i, name)
			}
			rows = append(rows, sampleRows...)
		}
	}
	logrus.Infof("synthesized %d rows from %d samples (seed=%d, policies=%v)", len(rows), cfg.Samples, cfg.Seed, policies)
	return rows, nil
}

// drawSample draws one configuration in the documented order.
func drawSample(rng *rand.Rand, cfg *Config) Sample {
	capacity := drawInclusive(rng, cfg.Capacity)
	length := drawInclusive(rng, cfg.Length)
	maxPage := drawInclusive(rng, cfg.MaxPage)
	refs := make([]int, length)
	for i := range refs {
		refs[i] = rng.Intn(maxPage + 1)
	}
	return Sample{Capacity: capacity, MaxPage: maxPage, Refs: refs}
}

func drawInclusive(rng *rand.Rand, r IntRange) int {
	return r.Min + rng.Intn(r.Max-r.Min+1)
}

// simulateSample runs one policy over the sample and labels each step's features
// with the observed fault.
func simulateSample(policy string, s Sample) ([]Row, error) {
	_, tr, err := sim.RunByName(policy, s.Refs, s.Capacity)
	if err != nil {
		return nil, err
	}
	vectors, err := features.ExtractAll(s.Refs, tr)
	if err != nil {
		return nil, err
	}
	rows := make([]Row, len(vectors))
	for step, v := range vectors {
		rows[step] = Row{Vector: v, Policy: policy, Fault: tr.Entries[step].FaultLabel()}
	}
	return rows, nil
}

// RowsForTrace labels the features of an existing run. Used to build inference
// inputs for a caller-supplied stream.
func RowsForTrace(policy string, refs []int, capacity int) ([]Row, error) {
	return simulateSample(policy, Sample{Capacity: capacity, Refs: refs})
}
