// Package testutil provides shared test infrastructure for the page-replacement
// simulator. It consolidates the reference-trace dataset and assertion helpers
// used across sim/ and its sub-package tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/inference-sim/pagesim/sim/trace"
)

// ReferenceTraces represents the structure of testdata/reference_traces.json.
type ReferenceTraces struct {
	Traces []ReferenceTrace `json:"traces"`
}

// ReferenceTrace is one hand-checked simulation: a policy, a stream and the
// expected frame contents after every step.
type ReferenceTrace struct {
	Name       string  `json:"name"`
	Policy     string  `json:"policy"`
	Capacity   int     `json:"capacity"`
	Refs       []int   `json:"refs"`
	Faults     int     `json:"faults"`
	FaultSteps []int   `json:"fault_steps"` // 1-indexed
	Frames     [][]int `json:"frames"`
}

// LoadReferenceTraces loads the reference traces from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadReferenceTraces(t *testing.T) *ReferenceTraces {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "reference_traces.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read reference traces: %v", err)
	}

	var refs ReferenceTraces
	if err := json.Unmarshal(data, &refs); err != nil {
		t.Fatalf("Failed to parse reference traces: %v", err)
	}
	return &refs
}

// AssertTraceMatches compares a simulated trace against a reference trace step by step.
func AssertTraceMatches(t *testing.T, want ReferenceTrace, gotFaults int, got *trace.Trace) {
	t.Helper()
	if gotFaults != want.Faults {
		t.Errorf("%s: faults = %d, want %d", want.Name, gotFaults, want.Faults)
	}
	if got.Len() != len(want.Frames) {
		t.Fatalf("%s: trace has %d entries, want %d", want.Name, got.Len(), len(want.Frames))
	}
	var faultSteps []int
	for i, e := range got.Entries {
		if !slices.Equal(e.Frames, want.Frames[i]) {
			t.Errorf("%s: frames after step %d = %v, want %v", want.Name, e.Step, e.Frames, want.Frames[i])
		}
		if e.Fault {
			faultSteps = append(faultSteps, e.Step)
		}
	}
	if !slices.Equal(faultSteps, want.FaultSteps) {
		t.Errorf("%s: fault steps = %v, want %v", want.Name, faultSteps, want.FaultSteps)
	}
}

// AssertFrameInvariant checks that every snapshot respects capacity and holds no
// duplicate page.
func AssertFrameInvariant(t *testing.T, tr *trace.Trace) {
	t.Helper()
	for _, e := range tr.Entries {
		if len(e.Frames) > tr.Capacity {
			t.Errorf("step %d: %d resident pages exceed capacity %d", e.Step, len(e.Frames), tr.Capacity)
		}
		seen := make(map[int]bool, len(e.Frames))
		for _, p := range e.Frames {
			if seen[p] {
				t.Errorf("step %d: page %d resident twice in %v", e.Step, p, e.Frames)
			}
			seen[p] = true
		}
	}
}
