package spatial

import (
	"math"
	"testing"
)

func TestStampController_Monotonic(t *testing.T) {
	var c StampController

	if got := c.Next(); got != 1 {
		t.Fatalf("first stamp = %d, want 1", got)
	}
	if got := c.Next(); got != 2 {
		t.Fatalf("second stamp = %d, want 2", got)
	}
	if c.Current() != 2 {
		t.Errorf("Current() = %d, want 2", c.Current())
	}
}

func TestSeenSet_MarkExactlyOncePerStamp(t *testing.T) {
	var c StampController
	var seen SeenSet

	stamp := c.Next(&seen)

	if !seen.Mark(0, 3, stamp) {
		t.Fatal("first Mark should report unseen")
	}
	// Second chunk referencing the same object in the same pass.
	if seen.Mark(0, 3, stamp) {
		t.Fatal("second Mark in the same pass should be suppressed")
	}

	stamp = c.Next(&seen)
	if !seen.Mark(0, 3, stamp) {
		t.Fatal("new frame should see the object again")
	}
}

func TestSeenSet_ResizesToObjectCount(t *testing.T) {
	var seen SeenSet

	if !seen.Mark(2, 3, 1) {
		t.Fatal("Mark within fresh count should succeed")
	}
	// Layer grew; prior stamps must survive, new slots default to unseen.
	if !seen.Mark(4, 5, 1) {
		t.Fatal("Mark of new slot should succeed")
	}
	if seen.Mark(2, 5, 1) {
		t.Fatal("previously marked slot must stay suppressed after resize")
	}
	if seen.Mark(9, 5, 1) {
		t.Fatal("out-of-range index must not be processed")
	}
}

func TestStampController_OverflowResetsSeenSets(t *testing.T) {
	var c StampController
	sets := []*SeenSet{{}, {}}

	c.SetCurrent(math.MaxUint32 - 1)

	stamp := c.Next(sets...)
	if stamp != math.MaxUint32 {
		t.Fatalf("stamp = %d, want MaxUint32", stamp)
	}
	const n = 3
	for i := 0; i < n; i++ {
		if !sets[0].Mark(i, n, stamp) {
			t.Fatalf("object %d should be fresh at MaxUint32", i)
		}
	}

	stamp = c.Next(sets...)
	if stamp != 1 {
		t.Fatalf("wrapped stamp = %d, want 1", stamp)
	}
	for i := 0; i < n; i++ {
		if sets[0].Stamp(i) != 0 {
			t.Fatalf("object %d retained stale stamp %d after wrap", i, sets[0].Stamp(i))
		}
		if !sets[0].Mark(i, n, stamp) {
			t.Fatalf("object %d suppressed after wrap", i)
		}
	}
}
