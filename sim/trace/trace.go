package trace

// Trace is the ordered, immutable record of one simulation run.
type Trace struct {
	Policy   string  `json:"policy"`
	Capacity int     `json:"capacity"`
	Entries  []Entry `json:"entries"`
}

// NewTrace creates a Trace ready for recording.
func NewTrace(policy string, capacity, sizeHint int) *Trace {
	return &Trace{
		Policy:   policy,
		Capacity: capacity,
		Entries:  make([]Entry, 0, sizeHint),
	}
}

// Record appends an entry. The entry's Frames slice is copied so later mutation by
// the caller cannot change the recorded history.
func (t *Trace) Record(e Entry) {
	frames := make([]int, len(e.Frames))
	copy(frames, e.Frames)
	e.Frames = frames
	t.Entries = append(t.Entries, e)
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int { return len(t.Entries) }

// FramesBefore returns the frame snapshot immediately before the 0-based step index,
// which is empty for the first step. The result must not be modified.
func (t *Trace) FramesBefore(step int) []int {
	if step <= 0 || step > len(t.Entries) {
		return nil
	}
	return t.Entries[step-1].Frames
}

// Faults returns the total number of faulting steps.
func (t *Trace) Faults() int {
	if len(t.Entries) == 0 {
		return 0
	}
	return t.Entries[len(t.Entries)-1].Faults
}

// Labels returns the per-step fault labels (1 fault, 0 hit).
func (t *Trace) Labels() []int {
	out := make([]int, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.FaultLabel()
	}
	return out
}
