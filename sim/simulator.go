// sim/simulator.go
package sim

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/pagesim/sim/trace"
)

// ErrInvalidCapacity is returned when a run is configured with fewer than one frame.
var ErrInvalidCapacity = errors.New("capacity must be at least 1")

// Run drives policy over the reference stream refs with capacity frames and returns
// the total fault count and the per-step trace.
//
// Run is deterministic: identical arguments always produce an identical trace.
// Each call owns its FrameSet and RecencyTable; nothing is shared across runs.
// An empty stream yields zero faults and an empty trace.
func Run(policy EvictionPolicy, refs []int, capacity int) (int, *trace.Trace, error) {
	if capacity < 1 {
		return 0, nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	if policy == nil {
		return 0, nil, fmt.Errorf("%w: nil policy", ErrUnknownPolicy)
	}

	frames := NewFrameSet(capacity)
	recency := NewRecencyTable()
	tr := trace.NewTrace(policy.Name(), capacity, len(refs))
	faults := 0

	for step, page := range refs {
		entry := trace.Entry{Step: step + 1, Page: page}
		if !frames.Contains(page) {
			entry.Fault = true
			faults++
			if victim, ok := policy.Victim(frames, recency, page); ok {
				entry.Evicted = frames.Replace(victim, page, step)
				entry.HasEviction = true
				logrus.Debugf("[step %04d] %s: evicting page %d for page %d", step+1, policy.Name(), entry.Evicted, page)
			} else {
				frames.Load(page, step)
			}
		}
		recency.Touch(page, step)

		entry.Faults = faults
		entry.Frames = frames.Snapshot()
		tr.Record(entry)
	}
	return faults, tr, nil
}

// RunByName resolves the policy name and runs it. Unknown names return ErrUnknownPolicy.
func RunByName(name string, refs []int, capacity int) (int, *trace.Trace, error) {
	if capacity < 1 {
		return 0, nil, fmt.Errorf("%w, got %d", ErrInvalidCapacity, capacity)
	}
	policy, err := NewEvictionPolicy(name)
	if err != nil {
		return 0, nil, err
	}
	return Run(policy, refs, capacity)
}
