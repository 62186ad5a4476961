package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/inference-sim/pagesim/sim"
	"github.com/inference-sim/pagesim/sim/trace"
)

var (
	runPolicy   string // "all" or one of fifo, lru, mru
	capacity    int    // Number of frames
	refs        []int  // Explicit reference stream
	randomRefs  bool   // Generate a random reference stream instead of --refs
	refsLength  int    // Length of a random reference stream
	maxPage     int    // Largest page number of a random reference stream
	refsSeed    int64  // Seed for random reference streams
	showHistory bool   // Print the per-step trace table
)

// runCmd simulates one or all eviction policies over a reference stream
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Simulate page replacement over a reference stream",
	Run: func(cmd *cobra.Command, args []string) {
		stream, err := referenceStream()
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		policies, err := selectedPolicies(runPolicy)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		logrus.Infof("Simulating %v over %d references with %d frames", policies, len(stream), capacity)

		out := cmd.OutOrStdout()
		printStream(out, stream)
		for _, name := range policies {
			_, tr, err := sim.RunByName(name, stream, capacity)
			if err != nil {
				logrus.Fatalf("%v", err)
			}
			printRun(out, tr, showHistory)
		}
	},
}

// referenceStream returns --refs, or a seeded random stream with --random.
func referenceStream() ([]int, error) {
	if randomRefs {
		if refsLength < 0 || maxPage < 0 {
			return nil, fmt.Errorf("--length and --max-page must be non-negative")
		}
		return sim.RandomReferences(sim.NewPartitionedRNG(sim.NewSimulationKey(refsSeed)), refsLength, maxPage), nil
	}
	if len(refs) == 0 {
		return nil, fmt.Errorf("reference stream is empty; pass --refs 1,2,3 or --random")
	}
	return refs, nil
}

// selectedPolicies expands "all" into every registered policy in canonical order.
func selectedPolicies(name string) ([]string, error) {
	name = strings.ToLower(name)
	if name == "all" {
		return sim.PolicyNames(), nil
	}
	if !sim.ValidEvictionPolicies[name] {
		return nil, fmt.Errorf("%w %q; valid policies: all, %s", sim.ErrUnknownPolicy, name, strings.Join(sim.PolicyNames(), ", "))
	}
	return []string{name}, nil
}

func printStream(w io.Writer, stream []int) {
	fmt.Fprintf(w, "Reference stream: %v\n", stream)
	fmt.Fprintf(w, "Unique pages: %d, repetition ratio: %.2f\n", sim.UniqueCount(stream), sim.RepetitionRatio(stream))
}

func printRun(w io.Writer, tr *trace.Trace, history bool) {
	s := trace.Summarize(tr)
	fmt.Fprintf(w, "\n=== %s (%d frames) ===\n", strings.ToUpper(tr.Policy), tr.Capacity)
	if history {
		fmt.Fprintf(w, "%-6s %-6s %-8s %s\n", "Step", "Page", "Result", "Frames")
		for _, e := range tr.Entries {
			result := "Hit"
			if e.Fault {
				result = "Fault"
			}
			fmt.Fprintf(w, "%-6d %-6d %-8s %v\n", e.Step, e.Page, result, e.Frames)
		}
	}
	fmt.Fprintf(w, "Total page faults: %d\n", s.Faults)
	fmt.Fprintf(w, "Hit ratio (%%): %.2f\n", s.HitRatio)
}

func init() {
	runCmd.Flags().StringVar(&runPolicy, "policy", "all", "Eviction policy (all, fifo, lru, mru)")
	addStreamFlags(runCmd)
	runCmd.Flags().BoolVar(&showHistory, "history", true, "Print the per-step trace")
}

// addStreamFlags registers the reference-stream flags shared by run and predict.
func addStreamFlags(c *cobra.Command) {
	c.Flags().IntVar(&capacity, "frames", 3, "Number of frames")
	c.Flags().IntSliceVar(&refs, "refs", nil, "Comma-separated reference stream, e.g. 7,0,1,2,0")
	c.Flags().BoolVar(&randomRefs, "random", false, "Generate a random reference stream")
	c.Flags().IntVar(&refsLength, "length", 10, "Length of a random reference stream")
	c.Flags().IntVar(&maxPage, "max-page", 5, "Largest page number of a random reference stream")
	c.Flags().Int64Var(&refsSeed, "seed", 42, "Seed for random reference streams")
}
