// Package trace provides per-step trace recording for page-replacement runs.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// Entry captures the outcome of a single reference in a simulation run.
// Frames is a value snapshot taken after the step completed.
type Entry struct {
	Step        int   `json:"step"` // 1-indexed
	Page        int   `json:"page"`
	Frames      []int `json:"frames"`
	Fault       bool  `json:"fault"`
	Faults      int   `json:"faults"` // running fault counter including this step
	Evicted     int   `json:"evicted,omitempty"`
	HasEviction bool  `json:"has_eviction,omitempty"`
}

// FaultLabel returns 1 for a faulting step and 0 for a hit.
func (e Entry) FaultLabel() int {
	if e.Fault {
		return 1
	}
	return 0
}
