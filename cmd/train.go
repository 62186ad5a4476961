package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/pagesim/sim/classifier"
	"github.com/inference-sim/pagesim/sim/dataset"
)

var (
	trainSamples int     // Number of synthetic configurations to train on
	trainSeed    int64   // Seed for dataset synthesis
	trees        int     // Number of trees in the forest
	maxDepth     int     // Maximum tree depth (0 = unlimited)
	forestSeed   int64   // Seed for bootstrap sampling
	testFraction float64 // Holdout fraction
	splitSeed    int64   // Seed for the holdout split
)

// trainCmd synthesizes a dataset and reports holdout accuracy of the fault predictor
var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the page-fault predictor and report holdout accuracy",
	Run: func(cmd *cobra.Command, args []string) {
		startTime := time.Now()
		_, ev, err := trainModel()
		if err != nil {
			logrus.Fatalf("Training failed: %v", err)
		}
		printEvaluation(cmd.OutOrStdout(), ev)
		logrus.Infof("Training complete in %s", time.Since(startTime).Round(time.Millisecond))
	},
}

// trainModel synthesizes the training set and fits a random forest with an
// 80/20 holdout.
func trainModel() (classifier.Model, *classifier.Evaluation, error) {
	rows, err := dataset.SynthesizeN(trainSamples, trainSeed)
	if err != nil {
		return nil, nil, err
	}
	forest := &classifier.RandomForest{Trees: trees, MaxDepth: maxDepth, Seed: forestSeed}
	logrus.Infof("Training %d trees on %s rows", trees, humanize.Comma(int64(len(rows))))
	return classifier.Evaluate(forest, dataset.EncodeAligned(rows), testFraction, splitSeed)
}

func printEvaluation(w io.Writer, ev *classifier.Evaluation) {
	fmt.Fprintf(w, "Train rows: %s, test rows: %s\n", humanize.Comma(int64(ev.TrainSize)), humanize.Comma(int64(ev.TestSize)))
	fmt.Fprintf(w, "Model accuracy: %.1f%%\n", ev.Accuracy*100)
	fmt.Fprintf(w, "Confusion (fault=positive): TP=%d TN=%d FP=%d FN=%d\n",
		ev.TruePositives, ev.TrueNegatives, ev.FalsePositives, ev.FalseNegatives)
}

// addTrainFlags registers the training flags shared by train and predict.
func addTrainFlags(c *cobra.Command) {
	c.Flags().IntVar(&trainSamples, "samples", 1000, "Number of synthetic configurations to train on")
	c.Flags().Int64Var(&trainSeed, "train-seed", 42, "Seed for training dataset synthesis")
	c.Flags().IntVar(&trees, "trees", classifier.DefaultTrees, "Number of trees in the forest")
	c.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum tree depth (0 = unlimited)")
	c.Flags().Int64Var(&forestSeed, "forest-seed", classifier.DefaultSeed, "Seed for bootstrap sampling")
	c.Flags().Float64Var(&testFraction, "test-fraction", classifier.DefaultTestFraction, "Holdout fraction")
	c.Flags().Int64Var(&splitSeed, "split-seed", classifier.DefaultSplitSeed, "Seed for the holdout split")
}

func init() {
	addTrainFlags(trainCmd)
}
