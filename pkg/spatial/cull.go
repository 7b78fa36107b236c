package spatial

import (
	"sort"

	"github.com/Faultbox/tilemap/pkg/geom"
)

// ChunkView is a read-only view of one populated chunk returned by a
// visibility query.
type ChunkView struct {
	Coord  Coord
	Layers map[LayerID]*Bucket
}

// VisibleCoords returns every chunk coordinate overlapped by the given world
// rectangle, whether populated or not, in row-major (y, x) order. Swapped
// corners are normalized.
func VisibleCoords(viewMin, viewMax geom.Vec2) []Coord {
	cxMin, cyMin, cxMax, cyMax := chunkRange(viewMin, viewMax, 0)

	coords := make([]Coord, 0, int(cxMax-cxMin+1)*int(cyMax-cyMin+1))
	for cy := cyMin; cy <= cyMax; cy++ {
		for cx := cxMin; cx <= cxMax; cx++ {
			coords = append(coords, Coord{X: cx, Y: cy})
		}
	}
	return coords
}

// VisibleChunks returns the populated chunks overlapping the world rectangle
// expanded by margin chunks in each direction. Results are sorted by (Y, X)
// ascending so that draw order is reproducible across runs.
func (ix *Index) VisibleChunks(viewMin, viewMax geom.Vec2, margin int32) []ChunkView {
	cxMin, cyMin, cxMax, cyMax := chunkRange(viewMin, viewMax, margin)

	var chunks []ChunkView
	for coord, chunk := range ix.Buckets {
		if coord.X >= cxMin && coord.X <= cxMax && coord.Y >= cyMin && coord.Y <= cyMax {
			chunks = append(chunks, ChunkView{Coord: coord, Layers: chunk.Layers})
		}
	}
	sort.Slice(chunks, func(i, j int) bool {
		a, b := chunks[i].Coord, chunks[j].Coord
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return chunks
}

// chunkRange converts two world-space corners into an inclusive chunk
// rectangle, normalizing swapped corners and expanding by margin.
func chunkRange(viewMin, viewMax geom.Vec2, margin int32) (cxMin, cyMin, cxMax, cyMax int32) {
	cxMin = floorDiv(int32(viewMin.X), ChunkSize)
	cyMin = floorDiv(int32(viewMin.Y), ChunkSize)
	cxMax = floorDiv(int32(viewMax.X), ChunkSize)
	cyMax = floorDiv(int32(viewMax.Y), ChunkSize)

	if cxMin > cxMax {
		cxMin, cxMax = cxMax, cxMin
	}
	if cyMin > cyMax {
		cyMin, cyMax = cyMax, cyMin
	}

	cxMin -= margin
	cyMin -= margin
	cxMax += margin
	cyMax += margin
	return cxMin, cyMin, cxMax, cyMax
}
