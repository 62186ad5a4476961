package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrameSet_LoadAndReplace(t *testing.T) {
	f := NewFrameSet(2)
	assert.False(t, f.Full())

	f.Load(1, 0)
	f.Load(2, 1)
	assert.True(t, f.Full())
	assert.Equal(t, 2, f.Len())
	assert.True(t, f.Contains(2))
	assert.Equal(t, -1, f.IndexOf(3))

	// GIVEN a replacement of the head
	evicted := f.Replace(0, 3, 2)

	// THEN the victim is removed and the newcomer appended at the tail
	assert.Equal(t, 1, evicted)
	assert.Equal(t, []int{2, 3}, f.Snapshot())
	assert.Equal(t, 1, f.LoadedAt(0))
	assert.Equal(t, 2, f.LoadedAt(1))
}

func TestFrameSet_SnapshotIsCopy(t *testing.T) {
	f := NewFrameSet(2)
	f.Load(1, 0)
	snap := f.Snapshot()
	snap[0] = 42
	assert.Equal(t, 1, f.At(0))
}

func TestRecencyTable_NeverShrinks(t *testing.T) {
	r := NewRecencyTable()
	_, ok := r.Lookup(1)
	assert.False(t, ok)

	r.Touch(1, 0)
	r.Touch(2, 1)
	r.Touch(1, 2)
	step, ok := r.Lookup(1)
	assert.True(t, ok)
	assert.Equal(t, 2, step)
	assert.Equal(t, 2, r.Len())
}
