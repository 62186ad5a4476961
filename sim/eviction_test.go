package sim

import (
	"errors"
	"testing"
)

// loadedFrames builds a full FrameSet where page i was loaded at step i.
func loadedFrames(pages ...int) (*FrameSet, *RecencyTable) {
	f := NewFrameSet(len(pages))
	r := NewRecencyTable()
	for step, p := range pages {
		f.Load(p, step)
		r.Touch(p, step)
	}
	return f, r
}

func TestNewEvictionPolicy_ValidNames(t *testing.T) {
	for _, name := range PolicyNames() {
		p, err := NewEvictionPolicy(name)
		if err != nil {
			t.Fatalf("NewEvictionPolicy(%q): unexpected error %v", name, err)
		}
		if p.Name() != name {
			t.Errorf("Name() = %q, want %q", p.Name(), name)
		}
		if !ValidEvictionPolicies[name] {
			t.Errorf("%q missing from ValidEvictionPolicies", name)
		}
	}
}

func TestNewEvictionPolicy_UnknownName(t *testing.T) {
	for _, name := range []string{"", "FIFO", "clock", "lfu"} {
		if _, err := NewEvictionPolicy(name); !errors.Is(err, ErrUnknownPolicy) {
			t.Errorf("NewEvictionPolicy(%q) err = %v, want ErrUnknownPolicy", name, err)
		}
	}
}

func TestVictim_FreeRoom_NoEviction(t *testing.T) {
	f := NewFrameSet(3)
	r := NewRecencyTable()
	f.Load(1, 0)
	r.Touch(1, 0)
	for _, name := range PolicyNames() {
		p, _ := NewEvictionPolicy(name)
		if _, ok := p.Victim(f, r, 2); ok {
			t.Errorf("%s: Victim reported eviction with free room", name)
		}
	}
}

func TestFIFO_IgnoresRecency(t *testing.T) {
	f, r := loadedFrames(5, 6, 7)
	r.Touch(5, 10) // head is the most recently used page
	idx, ok := (&FIFOPolicy{}).Victim(f, r, 8)
	if !ok || idx != 0 {
		t.Errorf("FIFO victim = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestLRU_SmallestRecency(t *testing.T) {
	f, r := loadedFrames(5, 6, 7)
	r.Touch(5, 3)
	r.Touch(7, 4)
	idx, ok := (&LRUPolicy{}).Victim(f, r, 8)
	if !ok || f.At(idx) != 6 {
		t.Errorf("LRU victim = page %d, want 6", f.At(idx))
	}
}

func TestLRU_TieBreaksOnFrameOrder(t *testing.T) {
	// GIVEN residents with no recorded access (equal sentinel recency)
	f := NewFrameSet(3)
	for step, p := range []int{9, 4, 6} {
		f.Load(p, step)
	}
	idx, ok := (&LRUPolicy{}).Victim(f, NewRecencyTable(), 1)

	// THEN the earliest frame position wins
	if !ok || idx != 0 {
		t.Errorf("LRU tie victim = (%d, %v), want (0, true)", idx, ok)
	}
}

func TestMRU_Fallback_NoTouchedResident(t *testing.T) {
	f, r := loadedFrames(5, 6, 7)
	idx, ok := (&MRUPolicy{}).Victim(f, r, 8)
	if !ok || idx != 0 {
		t.Errorf("MRU fallback victim = (%d, %v), want head (0, true)", idx, ok)
	}
}

func TestMRU_LargestTouchedRecency(t *testing.T) {
	f, r := loadedFrames(5, 6, 7)
	r.Touch(5, 4)
	r.Touch(6, 5)
	// 7 was loaded last (step 2) but never touched again, so it is not a candidate.
	idx, ok := (&MRUPolicy{}).Victim(f, r, 8)
	if !ok || f.At(idx) != 6 {
		t.Errorf("MRU victim = page %d, want 6", f.At(idx))
	}
}

func TestMRU_TieBreaksOnFrameOrder(t *testing.T) {
	f := NewFrameSet(2)
	r := NewRecencyTable()
	f.Load(1, 0)
	f.Load(2, 0)
	r.Touch(1, 3)
	r.Touch(2, 3)
	idx, ok := (&MRUPolicy{}).Victim(f, r, 3)
	if !ok || idx != 0 {
		t.Errorf("MRU tie victim = (%d, %v), want (0, true)", idx, ok)
	}
}
