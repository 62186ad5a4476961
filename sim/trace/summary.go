package trace

import "math"

// Summary aggregates statistics from a Trace.
type Summary struct {
	Policy        string
	Steps         int
	Faults        int
	Hits          int
	Evictions     int
	HitRatio      float64     // percent, rounded to 2 decimals
	FaultsPerPage map[int]int // page → number of faulting accesses
	FinalFrames   []int
}

// Summarize computes aggregate statistics from a Trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *Summary {
	summary := &Summary{
		FaultsPerPage: make(map[int]int),
	}
	if t == nil {
		return summary
	}
	summary.Policy = t.Policy
	summary.Steps = len(t.Entries)
	for _, e := range t.Entries {
		if e.Fault {
			summary.Faults++
			summary.FaultsPerPage[e.Page]++
		} else {
			summary.Hits++
		}
		if e.HasEviction {
			summary.Evictions++
		}
	}
	if summary.Steps > 0 {
		last := t.Entries[summary.Steps-1].Frames
		summary.FinalFrames = append([]int(nil), last...)
	}
	summary.HitRatio = HitRatio(summary.Faults, summary.Steps)
	return summary
}

// HitRatio returns round((1 - faults/total) * 100, 2), or 0 when total is 0.
func HitRatio(faults, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round((1-float64(faults)/float64(total))*100*100) / 100
}
