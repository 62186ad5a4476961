package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/classifier"
)

// predictCmd trains the predictor and compares its per-step predictions with
// the simulated faults of every policy
var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict page faults for a reference stream under every policy",
	Run: func(cmd *cobra.Command, args []string) {
		stream, err := referenceStream()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if capacity < 1 {
			logrus.Fatalf("%v, got %d", sim.ErrInvalidCapacity, capacity)
		}
		model, ev, err := trainModel()
		if err != nil {
			logrus.Fatalf("Training failed: %v", err)
		}

		out := cmd.OutOrStdout()
		printEvaluation(out, ev)
		printStream(out, stream)
		for _, name := range sim.PolicyNames() {
			preds, err := classifier.PredictTrace(model, name, stream, capacity)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			printPredictions(out, name, preds)
		}
	},
}

func printPredictions(w io.Writer, policy string, preds []classifier.Prediction) {
	observed := 0
	steps := make([]string, len(preds))
	for i, p := range preds {
		observed += p.Observed
		label := "Hit"
		if p.Predicted == 1 {
			label = "Fault"
		}
		steps[i] = fmt.Sprintf("%d→%s", p.Page, label)
	}
	fmt.Fprintf(w, "\n=== %s ===\n", strings.ToUpper(policy))
	fmt.Fprintf(w, "%s\n", strings.Join(steps, " "))
	fmt.Fprintf(w, "Predicted faults: %d, simulated faults: %d\n", classifier.PredictedFaults(preds), observed)
}

func init() {
	addStreamFlags(predictCmd)
	addTrainFlags(predictCmd)
}
