package sim

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/pagesim/sim/internal/testutil"
)

func TestRun_ReferenceTraces(t *testing.T) {
	refs := testutil.LoadReferenceTraces(t)
	require.NotEmpty(t, refs.Traces)

	for _, tc := range refs.Traces {
		t.Run(tc.Name, func(t *testing.T) {
			faults, tr, err := RunByName(tc.Policy, tc.Refs, tc.Capacity)
			require.NoError(t, err)
			testutil.AssertTraceMatches(t, tc, faults, tr)
			testutil.AssertFrameInvariant(t, tr)
		})
	}
}

func TestRun_FIFO_EvictsOldestResident(t *testing.T) {
	// GIVEN [1,2,3,4] with two frames
	faults, tr, err := Run(&FIFOPolicy{}, []int{1, 2, 3, 4}, 2)
	require.NoError(t, err)

	// THEN every access faults and the two newest pages remain
	assert.Equal(t, 4, faults)
	assert.Equal(t, []int{3, 4}, tr.Entries[3].Frames)
	assert.Equal(t, 1, tr.Entries[2].Evicted)
	assert.Equal(t, 2, tr.Entries[3].Evicted)
	assert.False(t, tr.Entries[1].HasEviction, "cold fill must not evict")
}

func TestRun_LRU_PerStepFrames(t *testing.T) {
	// GIVEN [1,2,3,1,4] with two frames
	faults, tr, err := Run(&LRUPolicy{}, []int{1, 2, 3, 1, 4}, 2)
	require.NoError(t, err)

	// THEN step 3 evicts 1, step 4 reloads 1 evicting 2, step 5 evicts 3
	assert.Equal(t, []int{2, 3}, tr.Entries[2].Frames)
	assert.Equal(t, []int{3, 1}, tr.Entries[3].Frames)
	assert.ElementsMatch(t, []int{1, 3}, tr.Entries[3].Frames)
	assert.Equal(t, []int{1, 4}, tr.Entries[4].Frames)
	assert.Equal(t, []int{1, 2, 3}, []int{tr.Entries[2].Evicted, tr.Entries[3].Evicted, tr.Entries[4].Evicted})
	assert.Equal(t, 5, faults)
}

func TestRun_MRU_FallsBackToFIFOWhenNothingTouched(t *testing.T) {
	// GIVEN a stream that never revisits a resident page
	refs := []int{1, 2, 3, 4}
	_, fifo, err := Run(&FIFOPolicy{}, refs, 2)
	require.NoError(t, err)
	_, mru, err := Run(&MRUPolicy{}, refs, 2)
	require.NoError(t, err)

	// THEN MRU makes the same eviction at every step
	for i := range refs {
		assert.Equal(t, fifo.Entries[i].Frames, mru.Entries[i].Frames, "step %d", i+1)
		assert.Equal(t, fifo.Entries[i].Evicted, mru.Entries[i].Evicted, "step %d", i+1)
	}
}

func TestRun_MRU_EvictsMostRecentlyTouched(t *testing.T) {
	// GIVEN 1 is revisited at step 3 while 2 is never touched again
	_, tr, err := Run(&MRUPolicy{}, []int{1, 2, 1, 3}, 2)
	require.NoError(t, err)

	// THEN the fault at step 4 evicts 1, not the longest-resident-untouched 2
	assert.Equal(t, 1, tr.Entries[3].Evicted)
	assert.Equal(t, []int{2, 3}, tr.Entries[3].Frames)
}

func TestRun_EmptyStream(t *testing.T) {
	for _, name := range PolicyNames() {
		faults, tr, err := RunByName(name, nil, 3)
		require.NoError(t, err)
		assert.Equal(t, 0, faults)
		assert.Equal(t, 0, tr.Len())
	}
}

func TestRun_InvalidCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1, -100} {
		_, tr, err := Run(&FIFOPolicy{}, []int{1, 2}, capacity)
		if !errors.Is(err, ErrInvalidCapacity) {
			t.Errorf("capacity %d: got err %v, want ErrInvalidCapacity", capacity, err)
		}
		if tr != nil {
			t.Errorf("capacity %d: got non-nil trace", capacity)
		}
	}
}

func TestRunByName_UnknownPolicy(t *testing.T) {
	_, _, err := RunByName("clock", []int{1}, 1)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestRun_Properties_RandomStreams(t *testing.T) {
	// Properties: trace length equals stream length, fault count equals faulted
	// entries, frame invariant holds, hit ratio within [0,100].
	rng := rand.New(rand.NewSource(99))
	for iter := 0; iter < 200; iter++ {
		capacity := 1 + rng.Intn(6)
		refs := make([]int, rng.Intn(30))
		for i := range refs {
			refs[i] = rng.Intn(8)
		}
		for _, name := range PolicyNames() {
			faults, tr, err := RunByName(name, refs, capacity)
			require.NoError(t, err)

			require.Equal(t, len(refs), tr.Len())
			counted := 0
			for i, e := range tr.Entries {
				if e.Fault {
					counted++
				}
				assert.Equal(t, i+1, e.Step)
				assert.Equal(t, counted, e.Faults)
				assert.Contains(t, e.Frames, e.Page, "accessed page must be resident after its step")
			}
			assert.Equal(t, counted, faults)
			testutil.AssertFrameInvariant(t, tr)

			ratio := HitRatio(faults, len(refs))
			assert.GreaterOrEqual(t, ratio, 0.0)
			assert.LessOrEqual(t, ratio, 100.0)
		}
	}
}

func TestRun_ReplayIsDeterministic(t *testing.T) {
	refs := []int{3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8, 9, 7, 9}
	for _, name := range PolicyNames() {
		f1, t1, err := RunByName(name, refs, 3)
		require.NoError(t, err)
		f2, t2, err := RunByName(name, refs, 3)
		require.NoError(t, err)
		assert.Equal(t, f1, f2)
		assert.Equal(t, t1, t2)
	}
}

func TestRun_SnapshotsDoNotAlias(t *testing.T) {
	_, tr, err := Run(&LRUPolicy{}, []int{1, 2, 3}, 2)
	require.NoError(t, err)

	// Mutating one snapshot must not leak into another entry.
	tr.Entries[1].Frames[0] = 99
	assert.Equal(t, []int{1}, tr.Entries[0].Frames)
	assert.Equal(t, []int{2, 3}, tr.Entries[2].Frames)
}
