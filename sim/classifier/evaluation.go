package classifier

import (
	"fmt"

	"gonum.org/v1/gonum/stat"

	"github.com/inference-sim/pagesim/sim/dataset"
)

// Holdout defaults: an 80/20 split with a fixed seed for reproducible accuracy.
const (
	DefaultTestFraction = 0.2
	DefaultSplitSeed    = 42
)

// Evaluation reports holdout performance of a trained model. The confusion counts
// treat label 1 (fault) as the positive class.
type Evaluation struct {
	Accuracy       float64
	TrainSize      int
	TestSize       int
	TruePositives  int
	TrueNegatives  int
	FalsePositives int
	FalseNegatives int
}

// Evaluate splits m into stratified train/test sets, fits trainer on the train
// set and scores the model on the test set.
func Evaluate(trainer Trainer, m *dataset.Matrix, testFraction float64, seed int64) (Model, *Evaluation, error) {
	train, test, err := dataset.SplitHoldout(m, testFraction, seed)
	if err != nil {
		return nil, nil, err
	}
	model, err := trainer.Fit(train)
	if err != nil {
		return nil, nil, fmt.Errorf("fitting model: %w", err)
	}
	predicted, err := PredictMatrix(model, test)
	if err != nil {
		return nil, nil, fmt.Errorf("scoring holdout: %w", err)
	}
	ev, err := Score(predicted, test.Y)
	if err != nil {
		return nil, nil, fmt.Errorf("scoring holdout: %w", err)
	}
	ev.TrainSize = train.Len()
	return model, ev, nil
}

// Score compares predicted against observed labels. Label 1 is a fault.
// Accuracy is 0 for empty inputs. Slices of different length return ErrLabelCountMismatch.
func Score(predicted, observed []int) (*Evaluation, error) {
	if len(predicted) != len(observed) {
		return nil, fmt.Errorf("%w: %d predicted, %d observed", ErrLabelCountMismatch, len(predicted), len(observed))
	}
	ev := &Evaluation{TestSize: len(observed)}
	if len(observed) == 0 {
		return ev, nil
	}
	correct := make([]float64, len(observed))
	for i, y := range observed {
		p := predicted[i]
		if p == y {
			correct[i] = 1
		}
		switch {
		case p == 1 && y == 1:
			ev.TruePositives++
		case p != 1 && y != 1:
			ev.TrueNegatives++
		case p == 1:
			ev.FalsePositives++
		default:
			ev.FalseNegatives++
		}
	}
	ev.Accuracy = stat.Mean(correct, nil)
	return ev, nil
}
