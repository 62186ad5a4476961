// Package features derives per-step feature vectors from a reference stream and
// the frame state that preceded each step. Extraction never mutates simulation state.
package features

import (
	"errors"
	"fmt"
	"slices"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/trace"
)

// NoPriorOccurrence is the Recency value of a page with no earlier reference.
// It equals the value of a page referenced exactly one step before, matching the
// reference datasets the classifier was calibrated on.
const NoPriorOccurrence = 0

// ErrStepOutOfRange is returned when the step index is outside the reference stream.
var ErrStepOutOfRange = errors.New("step index out of range")

// Vector is the feature vector for one reference of a stream.
type Vector struct {
	Page       int `json:"page"`
	SeqLen     int `json:"seq_len"`
	Capacity   int `json:"capacity"`
	InMemory   int `json:"in_memory"`   // 1 if resident before the step
	Recency    int `json:"recency"`     // distance to nearest prior occurrence
	FutureFreq int `json:"future_freq"` // occurrences strictly after the step
}

// Values returns the vector in schema order: page, seq_len, capacity, in_memory,
// recency, future_freq.
func (v Vector) Values() []float64 {
	return []float64{
		float64(v.Page),
		float64(v.SeqLen),
		float64(v.Capacity),
		float64(v.InMemory),
		float64(v.Recency),
		float64(v.FutureFreq),
	}
}

// Extract builds the feature vector for refs[step] given the frames resident
// immediately before the step. step is a 0-based index.
//
// FutureFreq looks ahead in the stream and is only meaningful for offline dataset
// generation.
func Extract(refs []int, capacity, step int, before []int) (Vector, error) {
	if capacity < 1 {
		return Vector{}, fmt.Errorf("%w, got %d", sim.ErrInvalidCapacity, capacity)
	}
	if step < 0 || step >= len(refs) {
		return Vector{}, fmt.Errorf("%w: step %d, stream length %d", ErrStepOutOfRange, step, len(refs))
	}
	page := refs[step]
	v := Vector{
		Page:     page,
		SeqLen:   len(refs),
		Capacity: capacity,
		Recency:  NoPriorOccurrence,
	}
	if slices.Contains(before, page) {
		v.InMemory = 1
	}
	for i := step - 1; i >= 0; i-- {
		if refs[i] == page {
			v.Recency = step - i
			break
		}
	}
	for _, p := range refs[step+1:] {
		if p == page {
			v.FutureFreq++
		}
	}
	return v, nil
}

// ExtractAll derives one vector per step of tr, using the previous entry's frame
// snapshot as the pre-step state. tr must have been produced from refs.
func ExtractAll(refs []int, tr *trace.Trace) ([]Vector, error) {
	if tr.Len() != len(refs) {
		return nil, fmt.Errorf("trace has %d entries for a stream of %d references", tr.Len(), len(refs))
	}
	out := make([]Vector, len(refs))
	for step := range refs {
		v, err := Extract(refs, tr.Capacity, step, tr.FramesBefore(step))
		if err != nil {
			return nil, err
		}
		out[step] = v
	}
	return out, nil
}
