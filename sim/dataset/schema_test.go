package dataset

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/features"
)

func row(page int, policy string, fault int) Row {
	return Row{
		Vector: features.Vector{Page: page, SeqLen: 5, Capacity: 2, InMemory: 1 - fault, Recency: 1, FutureFreq: 0},
		Policy: policy,
		Fault:  fault,
	}
}

func TestSchema_StableOrder(t *testing.T) {
	assert.Equal(t, []string{
		"page", "seq_len", "capacity", "in_memory", "recency", "future_freq",
		"policy_fifo", "policy_lru", "policy_mru",
	}, Schema())
}

func TestEncode_OneHotPresentPolicies(t *testing.T) {
	m := Encode([]Row{row(3, sim.PolicyMRU, 1), row(4, sim.PolicyFIFO, 0)})

	assert.Equal(t, append(Schema()[:6:6], "policy_fifo", "policy_mru"), m.Columns)
	assert.Equal(t, []float64{3, 5, 2, 0, 1, 0, 0, 1}, m.X[0])
	assert.Equal(t, []float64{4, 5, 2, 1, 1, 0, 1, 0}, m.X[1])
	assert.Equal(t, []int{1, 0}, m.Y)
}

func TestAlign_MissingColumnsAreZero(t *testing.T) {
	// GIVEN an inference batch carrying only the LRU one-hot column
	m := Encode([]Row{row(7, sim.PolicyLRU, 0)})
	require.NotContains(t, m.Columns, "policy_fifo")

	// WHEN aligned to the full schema
	aligned := Align(m, Schema())

	// THEN absent columns read as 0 and no error occurs
	assert.Equal(t, Schema(), aligned.Columns)
	assert.Equal(t, []float64{7, 5, 2, 1, 1, 0, 0, 1, 0}, aligned.X[0])
}

func TestAlign_DropsUnknownColumnsAndReorders(t *testing.T) {
	m := &Matrix{Columns: []string{"b", "extra", "a"}, X: [][]float64{{2, 9, 1}}}
	aligned := Align(m, []string{"a", "b", "c"})
	assert.Equal(t, []float64{1, 2, 0}, aligned.X[0])
}

func TestEncodeAligned_UsesFullSchema(t *testing.T) {
	m := EncodeAligned([]Row{row(1, sim.PolicyFIFO, 1)})
	assert.Equal(t, Schema(), m.Columns)
	assert.Len(t, m.X[0], len(Schema()))
}

func TestSplitHoldout_StratifiedAndReproducible(t *testing.T) {
	var rows []Row
	for i := 0; i < 80; i++ {
		rows = append(rows, row(i, sim.PolicyFIFO, 1))
	}
	for i := 0; i < 20; i++ {
		rows = append(rows, row(100+i, sim.PolicyLRU, 0))
	}
	m := EncodeAligned(rows)

	train, test, err := SplitHoldout(m, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, 80, train.Len())
	assert.Equal(t, 20, test.Len())

	faults := 0
	for _, y := range test.Y {
		faults += y
	}
	assert.Equal(t, 16, faults, "test set keeps the 80/20 class balance")

	train2, test2, err := SplitHoldout(m, 0.2, 42)
	require.NoError(t, err)
	assert.Equal(t, train.X, train2.X)
	assert.Equal(t, test.Y, test2.Y)
}

func TestSplitHoldout_InvalidFraction(t *testing.T) {
	m := EncodeAligned([]Row{row(1, sim.PolicyFIFO, 1)})
	for _, f := range []float64{0, 1, -0.1, 1.5} {
		_, _, err := SplitHoldout(m, f, 1)
		assert.Error(t, err, "fraction %v", f)
	}
	_, _, err := SplitHoldout(&Matrix{X: [][]float64{{1}}}, 0.2, 1)
	assert.Error(t, err, "unlabeled matrix")
}

func TestFingerprint_SensitiveToContent(t *testing.T) {
	a := []Row{row(1, sim.PolicyFIFO, 1)}
	b := []Row{row(1, sim.PolicyLRU, 1)}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(b))
	assert.Equal(t, Fingerprint(a), Fingerprint([]Row{row(1, sim.PolicyFIFO, 1)}))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Row{row(3, sim.PolicyMRU, 1)}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"3", "5", "2", "0", "1", "0", "mru", "1"}, records[1])
}
