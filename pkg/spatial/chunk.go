package spatial

import "github.com/Faultbox/tilemap/pkg/geom"

// ChunkSize is the side length of one chunk in world units.
const ChunkSize int32 = 256

// Coord identifies one chunk. Coords compare by value and are used as map
// keys.
type Coord struct {
	X, Y int32
}

// WorldToChunk maps a world position to the chunk containing it. Components
// are truncated to integers, then floor-divided so that negative positions
// land in correctly signed chunks.
func WorldToChunk(p geom.Vec2) Coord {
	return Coord{
		X: floorDiv(int32(p.X), ChunkSize),
		Y: floorDiv(int32(p.Y), ChunkSize),
	}
}

// Rel maps a world position to its offset from the containing chunk's origin.
// Both components satisfy 0 <= c < ChunkSize, including for negative input.
func Rel(p geom.Vec2) geom.Vec2 {
	return geom.Vec2{
		X: float32(floorMod(int32(p.X), ChunkSize)),
		Y: float32(floorMod(int32(p.Y), ChunkSize)),
	}
}

// Origin returns the world position of the chunk's top-left corner.
func Origin(c Coord) geom.Vec2 {
	return geom.Vec2{
		X: float32(c.X * ChunkSize),
		Y: float32(c.Y * ChunkSize),
	}
}

// floorDiv is Euclidean division: the quotient is rounded toward negative
// infinity rather than zero.
func floorDiv(a, n int32) int32 {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}

// floorMod is the Euclidean remainder; for n > 0 the result is in [0, n).
func floorMod(a, n int32) int32 {
	m := a % n
	if m != 0 && (m < 0) != (n < 0) {
		m += n
	}
	return m
}
