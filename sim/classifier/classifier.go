// Package classifier defines the fault-predictor boundary and provides a random
// forest implementation of it.
//
// The boundary is a fit/predict contract over encoded dataset matrices. Models
// remember the columns they were trained on; inputs are aligned to those columns
// before prediction, so a one-hot column absent at inference time reads as 0.
package classifier

import (
	"errors"
	"fmt"

	"github.com/inference-sim/pagesim/sim/dataset"
)

// ErrEmptyTrainingSet is returned when Fit receives no examples.
var ErrEmptyTrainingSet = errors.New("empty training set")

// ErrMissingLabels is returned when Fit receives a matrix without one label per row.
var ErrMissingLabels = errors.New("training matrix must carry one label per row")

// ErrLabelCountMismatch is returned when predicted and observed labels differ in count.
var ErrLabelCountMismatch = errors.New("predicted and observed label counts differ")

// Trainer fits a Model to labeled examples.
type Trainer interface {
	Fit(m *dataset.Matrix) (Model, error)
}

// Model predicts one label per feature row. X rows must be laid out in Columns()
// order; use PredictMatrix to align arbitrary encodings first.
type Model interface {
	Columns() []string
	Predict(X [][]float64) ([]int, error)
}

// PredictMatrix aligns m to the model's columns and predicts.
func PredictMatrix(model Model, m *dataset.Matrix) ([]int, error) {
	aligned := dataset.Align(m, model.Columns())
	return model.Predict(aligned.X)
}

// PredictRows encodes rows, aligns them to the model's columns and predicts.
func PredictRows(model Model, rows []dataset.Row) ([]int, error) {
	return PredictMatrix(model, dataset.Encode(rows))
}

// checkWidth verifies every row has exactly width features.
func checkWidth(X [][]float64, width int) error {
	for i, row := range X {
		if len(row) != width {
			return fmt.Errorf("row %d has %d features, model expects %d", i, len(row), width)
		}
	}
	return nil
}
