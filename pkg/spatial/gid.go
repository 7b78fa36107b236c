// Package spatial implements the chunked spatial index used for
// viewport-driven tile map rendering: tile identifier decoding, chunk
// addressing, the global chunk index, visibility culling and frame-stamp
// based object deduplication.
package spatial

// GID is a raw 32-bit global tile identifier. The three highest bits carry
// orientation flags; the remaining 29 bits are the identifier index space.
type GID uint32

// Orientation flag bits and the identifier mask.
const (
	FlipHorizontalFlag GID = 0x80000000 // bit 31
	FlipVerticalFlag   GID = 0x40000000 // bit 30
	FlipDiagonalFlag   GID = 0x20000000 // bit 29
	GIDMask            GID = 0x1FFFFFFF // lower 29 bits (bit 28 is unused)
)

// Raw returns the identifier including flag bits.
func (g GID) Raw() uint32 {
	return uint32(g)
}

// Clean returns the identifier with all flag bits masked off.
func (g GID) Clean() uint32 {
	return uint32(g & GIDMask)
}

// FlipH reports whether the horizontal flip flag is set.
func (g GID) FlipH() bool {
	return g&FlipHorizontalFlag != 0
}

// FlipV reports whether the vertical flip flag is set.
func (g GID) FlipV() bool {
	return g&FlipVerticalFlag != 0
}

// FlipD reports whether the diagonal flip flag is set.
func (g GID) FlipD() bool {
	return g&FlipDiagonalFlag != 0
}

// Orientation decodes the flag bits into a draw transform: a rotation in
// degrees plus X/Y mirroring applied after the rotation.
//
// Note that the mapping is not a full 8-orientation decode: every
// diagonal-flagged combination except H+V+D lands on the same 90 degree
// rotation. This matches the reference behavior and is kept intact; callers
// relying on a distinct 270 degree class will not get one.
func (g GID) Orientation() (rotation float32, flipX, flipY bool) {
	h, v, d := g.FlipH(), g.FlipV(), g.FlipD()

	switch {
	case d && h && v:
		rotation = 180
	case d:
		rotation = 90
	}

	flipX = h != d
	flipY = v
	return rotation, flipX, flipY
}
