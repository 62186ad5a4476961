package sim

// RecencyTable maps every page seen during a run to the 0-based step of its most
// recent access. Entries are updated on every access and never removed.
type RecencyTable struct {
	last map[int]int
}

// NewRecencyTable creates an empty RecencyTable.
func NewRecencyTable() *RecencyTable {
	return &RecencyTable{last: make(map[int]int)}
}

// Touch records an access to page at step. Steps must be non-decreasing across calls.
func (r *RecencyTable) Touch(page, step int) {
	r.last[page] = step
}

// Lookup returns the last access step of page and whether it has ever been accessed.
func (r *RecencyTable) Lookup(page int) (int, bool) {
	step, ok := r.last[page]
	return step, ok
}

// Len returns the number of distinct pages recorded.
func (r *RecencyTable) Len() int { return len(r.last) }
