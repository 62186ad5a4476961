package sim

import "slices"

// FrameSet is the bounded, ordered residency state of one simulation run.
//
// Pages are kept in insertion order: a replaced page is removed and the incoming
// page is appended at the tail, so index 0 is always the longest-resident page.
// Each slot also records the step at which its page was loaded.
//
// Invariants: Len() <= Capacity(), no duplicate pages.
type FrameSet struct {
	capacity int
	pages    []int
	loadedAt []int
}

// NewFrameSet creates an empty FrameSet holding at most capacity pages.
func NewFrameSet(capacity int) *FrameSet {
	return &FrameSet{
		capacity: capacity,
		pages:    make([]int, 0, capacity),
		loadedAt: make([]int, 0, capacity),
	}
}

// Capacity returns the maximum number of resident pages.
func (f *FrameSet) Capacity() int { return f.capacity }

// Len returns the number of resident pages.
func (f *FrameSet) Len() int { return len(f.pages) }

// Full reports whether no free frame remains.
func (f *FrameSet) Full() bool { return len(f.pages) >= f.capacity }

// Contains reports whether page is resident.
func (f *FrameSet) Contains(page int) bool {
	return f.IndexOf(page) >= 0
}

// IndexOf returns the frame position of page, or -1 if it is not resident.
func (f *FrameSet) IndexOf(page int) int {
	return slices.Index(f.pages, page)
}

// At returns the page at frame position i.
func (f *FrameSet) At(i int) int { return f.pages[i] }

// LoadedAt returns the step at which the page at position i was loaded.
func (f *FrameSet) LoadedAt(i int) int { return f.loadedAt[i] }

// Load appends page at the tail. Callers must ensure the set is not full and the
// page is not already resident.
func (f *FrameSet) Load(page, step int) {
	f.pages = append(f.pages, page)
	f.loadedAt = append(f.loadedAt, step)
}

// Replace evicts the page at position victim and appends page at the tail.
// Returns the evicted page.
func (f *FrameSet) Replace(victim, page, step int) int {
	evicted := f.pages[victim]
	f.pages = slices.Delete(f.pages, victim, victim+1)
	f.loadedAt = slices.Delete(f.loadedAt, victim, victim+1)
	f.Load(page, step)
	return evicted
}

// Snapshot returns a copy of the resident pages in frame order. The result never
// aliases the FrameSet.
func (f *FrameSet) Snapshot() []int {
	out := make([]int, len(f.pages))
	copy(out, f.pages)
	return out
}
