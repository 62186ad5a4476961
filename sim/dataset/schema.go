package dataset

import (
	"github.com/pkg/errors"

	"github.com/inference-sim/pagesim/sim"
)

// Feature column names, in schema order.
const (
	ColPage       = "page"
	ColSeqLen     = "seq_len"
	ColCapacity   = "capacity"
	ColInMemory   = "in_memory"
	ColRecency    = "recency"
	ColFutureFreq = "future_freq"
	policyPrefix  = "policy_"
)

// PolicyColumn returns the one-hot column name for a policy tag.
func PolicyColumn(policy string) string { return policyPrefix + policy }

// Schema returns the stable classifier column order: the six numeric features
// followed by one one-hot column per registered policy.
func Schema() []string {
	cols := []string{ColPage, ColSeqLen, ColCapacity, ColInMemory, ColRecency, ColFutureFreq}
	for _, p := range sim.PolicyNames() {
		cols = append(cols, PolicyColumn(p))
	}
	return cols
}

// Matrix is an encoded dataset: one feature row per example with named columns,
// and the fault labels when known.
type Matrix struct {
	Columns []string
	X       [][]float64
	Y       []int
}

// Len returns the number of examples.
func (m *Matrix) Len() int { return len(m.X) }

// Subset returns a matrix holding the examples at idx. Rows are shared, not copied.
func (m *Matrix) Subset(idx []int) *Matrix {
	out := &Matrix{Columns: m.Columns, X: make([][]float64, len(idx))}
	if m.Y != nil {
		out.Y = make([]int, len(idx))
	}
	for i, j := range idx {
		out.X[i] = m.X[j]
		if m.Y != nil {
			out.Y[i] = m.Y[j]
		}
	}
	return out
}

// Encode converts rows into a Matrix. Policy tags are one-hot encoded into one
// column per distinct tag present in rows, in canonical policy order, so an
// encoding of a single-policy batch carries only that policy's column.
func Encode(rows []Row) *Matrix {
	present := make(map[string]bool)
	for _, r := range rows {
		present[r.Policy] = true
	}
	cols := append([]string(nil), Schema()[:6]...)
	for _, p := range sim.PolicyNames() {
		if present[p] {
			cols = append(cols, PolicyColumn(p))
		}
	}
	index := columnIndex(cols)

	m := &Matrix{Columns: cols, X: make([][]float64, len(rows)), Y: make([]int, len(rows))}
	for i, r := range rows {
		x := make([]float64, len(cols))
		copy(x, r.Vector.Values())
		if j, ok := index[PolicyColumn(r.Policy)]; ok {
			x[j] = 1
		}
		m.X[i] = x
		m.Y[i] = r.Fault
	}
	return m
}

// Align returns m re-laid out to columns. Columns missing from m are filled with 0;
// columns of m not listed are dropped. Missing columns are never an error.
func Align(m *Matrix, columns []string) *Matrix {
	src := columnIndex(m.Columns)
	out := &Matrix{Columns: append([]string(nil), columns...), X: make([][]float64, len(m.X)), Y: m.Y}
	for i, row := range m.X {
		x := make([]float64, len(columns))
		for j, c := range columns {
			if k, ok := src[c]; ok {
				x[j] = row[k]
			}
		}
		out.X[i] = x
	}
	return out
}

// EncodeAligned encodes rows and aligns them to the full Schema.
func EncodeAligned(rows []Row) *Matrix {
	return Align(Encode(rows), Schema())
}

func columnIndex(cols []string) map[string]int {
	idx := make(map[string]int, len(cols))
	for i, c := range cols {
		idx[c] = i
	}
	return idx
}

// SplitHoldout partitions m into train and test sets. The split is stratified by
// label: each class contributes round(n*testFraction) examples to the test set,
// chosen by a seeded shuffle. The same seed always yields the same split.
func SplitHoldout(m *Matrix, testFraction float64, seed int64) (train, test *Matrix, err error) {
	if testFraction <= 0 || testFraction >= 1 {
		return nil, nil, errors.Errorf("test fraction must be in (0,1), got %v", testFraction)
	}
	if m.Y == nil {
		return nil, nil, errors.New("cannot split an unlabeled matrix")
	}
	rng := sim.NewPartitionedRNG(sim.NewSimulationKey(seed)).ForSubsystem(sim.SubsystemSplit)

	byClass := make(map[int][]int)
	var classes []int
	for i, y := range m.Y {
		if _, ok := byClass[y]; !ok {
			classes = append(classes, y)
		}
		byClass[y] = append(byClass[y], i)
	}

	var trainIdx, testIdx []int
	for _, c := range classes {
		idx := byClass[c]
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		nTest := int(float64(len(idx))*testFraction + 0.5)
		testIdx = append(testIdx, idx[:nTest]...)
		trainIdx = append(trainIdx, idx[nTest:]...)
	}
	return m.Subset(trainIdx), m.Subset(testIdx), nil
}
