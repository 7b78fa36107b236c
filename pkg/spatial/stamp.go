package spatial

import "math"

// SeenSet records, per object index within one layer, the last frame stamp at
// which that object was processed. It is the only state mutated during a draw
// pass and must stay confined to one thread per frame.
type SeenSet struct {
	lastSeen []uint32
}

// Reset clears every recorded stamp. Called on stamp wraparound so stale
// entries from the previous epoch can never alias a fresh stamp.
func (s *SeenSet) Reset() {
	for i := range s.lastSeen {
		s.lastSeen[i] = 0
	}
}

// Mark performs the dedup check-and-set for one object. count is the layer's
// current object count; the backing array is resized to it first, with new
// slots defaulting to unseen. Mark returns true exactly once per object per
// stamp, no matter how many chunks reference the object.
func (s *SeenSet) Mark(index int, count int, stamp uint32) bool {
	if len(s.lastSeen) != count {
		resized := make([]uint32, count)
		copy(resized, s.lastSeen)
		s.lastSeen = resized
	}
	if index < 0 || index >= count {
		return false
	}
	if s.lastSeen[index] == stamp {
		return false
	}
	s.lastSeen[index] = stamp
	return true
}

// Stamp returns the recorded stamp for an object index, or 0 when unseen.
func (s *SeenSet) Stamp(index int) uint32 {
	if index < 0 || index >= len(s.lastSeen) {
		return 0
	}
	return s.lastSeen[index]
}

// StampController issues monotonically increasing per-frame stamps. It is an
// explicit owned field of the renderer-facing map, not a singleton.
type StampController struct {
	current uint32
}

// Current returns the stamp of the frame in progress.
func (c *StampController) Current() uint32 {
	return c.current
}

// SetCurrent overrides the stamp counter. Intended for tests and for
// restoring saved renderer state.
func (c *StampController) SetCurrent(v uint32) {
	c.current = v
}

// Next advances to the next frame stamp. When the counter would overflow,
// every given seen-set is reset before the wrapped stamp 1 is issued, so
// entries recorded in earlier epochs cannot suppress objects in the new one.
func (c *StampController) Next(sets ...*SeenSet) uint32 {
	if c.current == math.MaxUint32 {
		for _, s := range sets {
			if s != nil {
				s.Reset()
			}
		}
		c.current = 1
		return c.current
	}
	c.current++
	return c.current
}
