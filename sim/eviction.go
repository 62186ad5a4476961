package sim

import (
	"errors"
	"fmt"
)

// Eviction policy names.
const (
	PolicyFIFO = "fifo"
	PolicyLRU  = "lru"
	PolicyMRU  = "mru"
)

// neverRevisited is the recency value of a resident page without a usable
// recorded access.
const neverRevisited = -1

// ErrUnknownPolicy is returned when an eviction policy name is not registered.
var ErrUnknownPolicy = errors.New("unknown eviction policy")

// ValidEvictionPolicies is the set of recognized eviction policy names.
// Shared by NewEvictionPolicy and config validation.
var ValidEvictionPolicies = map[string]bool{PolicyFIFO: true, PolicyLRU: true, PolicyMRU: true}

// PolicyNames returns the registered policy names in canonical order (FIFO, LRU, MRU).
// Dataset synthesis iterates policies in this order.
func PolicyNames() []string {
	return []string{PolicyFIFO, PolicyLRU, PolicyMRU}
}

// EvictionPolicy decides which resident page to evict when a fault occurs.
// Victim returns the frame position to evict, or ok=false when the frame set still
// has free room. Implementations must not mutate frames or recency.
type EvictionPolicy interface {
	Name() string
	Victim(frames *FrameSet, recency *RecencyTable, incoming int) (idx int, ok bool)
}

// FIFOPolicy evicts the longest-resident page regardless of recency.
type FIFOPolicy struct{}

func (p *FIFOPolicy) Name() string { return PolicyFIFO }

func (p *FIFOPolicy) Victim(frames *FrameSet, _ *RecencyTable, _ int) (int, bool) {
	if !frames.Full() || frames.Len() == 0 {
		return 0, false
	}
	return 0, true
}

// LRUPolicy evicts the resident page with the smallest recorded recency.
// Equal recency resolves to the earliest frame position.
type LRUPolicy struct{}

func (p *LRUPolicy) Name() string { return PolicyLRU }

func (p *LRUPolicy) Victim(frames *FrameSet, recency *RecencyTable, _ int) (int, bool) {
	if !frames.Full() || frames.Len() == 0 {
		return 0, false
	}
	victim, best := 0, recordedRecency(frames, recency, 0)
	for i := 1; i < frames.Len(); i++ {
		if r := recordedRecency(frames, recency, i); r < best {
			victim, best = i, r
		}
	}
	return victim, true
}

// MRUPolicy evicts the most recently used resident page among those accessed again
// after being loaded. When no resident page has been touched since its load, MRU
// falls back to FIFO and evicts the longest-resident page.
type MRUPolicy struct{}

func (p *MRUPolicy) Name() string { return PolicyMRU }

func (p *MRUPolicy) Victim(frames *FrameSet, recency *RecencyTable, _ int) (int, bool) {
	if !frames.Full() || frames.Len() == 0 {
		return 0, false
	}
	victim, best := 0, neverRevisited
	for i := 0; i < frames.Len(); i++ {
		if r := touchedRecency(frames, recency, i); r > best {
			victim, best = i, r
		}
	}
	// no touched resident: best is still the sentinel and victim the head (FIFO)
	return victim, true
}

// recordedRecency is the last access step of the page at position i.
func recordedRecency(frames *FrameSet, recency *RecencyTable, i int) int {
	if step, ok := recency.Lookup(frames.At(i)); ok {
		return step
	}
	return neverRevisited
}

// touchedRecency is the last access step of the page at position i if it was
// accessed after being loaded, and neverRevisited otherwise.
func touchedRecency(frames *FrameSet, recency *RecencyTable, i int) int {
	step, ok := recency.Lookup(frames.At(i))
	if !ok || step <= frames.LoadedAt(i) {
		return neverRevisited
	}
	return step
}

// NewEvictionPolicy creates an eviction policy by name.
// Valid names are defined in ValidEvictionPolicies.
func NewEvictionPolicy(name string) (EvictionPolicy, error) {
	switch name {
	case PolicyFIFO:
		return &FIFOPolicy{}, nil
	case PolicyLRU:
		return &LRUPolicy{}, nil
	case PolicyMRU:
		return &MRUPolicy{}, nil
	default:
		return nil, fmt.Errorf("%w %q; valid policies: %v", ErrUnknownPolicy, name, PolicyNames())
	}
}
