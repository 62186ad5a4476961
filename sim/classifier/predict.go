package classifier

import (
	"github.com/inference-sim/pagesim/sim/dataset"
)

// Prediction pairs a model's fault prediction for one step with the fault the
// simulator observed.
type Prediction struct {
	Step      int // 1-indexed
	Page      int
	Predicted int
	Observed  int
}

// PredictTrace simulates policy over refs, extracts each step's features and
// predicts its fault label with model.
func PredictTrace(model Model, policy string, refs []int, capacity int) ([]Prediction, error) {
	rows, err := dataset.RowsForTrace(policy, refs, capacity)
	if err != nil {
		return nil, err
	}
	labels, err := PredictRows(model, rows)
	if err != nil {
		return nil, err
	}
	out := make([]Prediction, len(rows))
	for i, r := range rows {
		out[i] = Prediction{Step: i + 1, Page: r.Page, Predicted: labels[i], Observed: r.Fault}
	}
	return out, nil
}

// PredictedFaults counts steps predicted to fault.
func PredictedFaults(preds []Prediction) int {
	n := 0
	for _, p := range preds {
		n += p.Predicted
	}
	return n
}
