// Package tilemap assembles decoded map data into the chunked runtime
// representation used by the render loop: the global spatial index, the gid
// resolution table, object layers and the frame-stamp allocator.
package tilemap

import (
	"math"

	"go.uber.org/zap"

	"github.com/Faultbox/tilemap/pkg/geom"
	"github.com/Faultbox/tilemap/pkg/spatial"
	"github.com/Faultbox/tilemap/pkg/tiled"
)

// noTileset marks resolution table entries claimed by no tileset.
const noTileset = math.MaxUint16

// Tileset is one atlas image referenced by a contiguous gid range.
type Tileset struct {
	FirstGID  uint32
	Image     string
	TileW     uint32
	TileH     uint32
	TileCount uint32
	Columns   uint32
	Spacing   uint32
	Margin    uint32

	Properties tiled.Properties
}

// SourceRect returns the atlas pixel rectangle for a tileset-local index,
// honoring spacing between tiles and the outer margin.
func (ts *Tileset) SourceRect(local uint32) geom.Rect {
	if ts.Columns == 0 {
		return geom.NewRect(0, 0, float32(ts.TileW), float32(ts.TileH))
	}
	col := local % ts.Columns
	row := local / ts.Columns
	x := ts.Margin + col*(ts.TileW+ts.Spacing)
	y := ts.Margin + row*(ts.TileH+ts.Spacing)
	return geom.NewRect(float32(x), float32(y), float32(ts.TileW), float32(ts.TileH))
}

// LayerMeta carries per-layer presentation data shared by tile and object
// layers.
type LayerMeta struct {
	ID         spatial.LayerID
	Name       string
	Kind       tiled.LayerKind
	Visible    bool
	Opacity    float32
	Offset     geom.Vec2
	Properties tiled.Properties
}

// ObjectLayer owns the objects of one object-bearing layer plus the
// last-seen stamps used for per-frame deduplication.
type ObjectLayer struct {
	ID      spatial.LayerID
	Name    string
	Objects []tiled.Object

	seen spatial.SeenSet
}

// Map is the loaded, render-ready map. It is built once and read-only
// afterwards except for the frame-stamp state.
type Map struct {
	TileW, TileH uint32
	Properties   tiled.Properties

	Tilesets     []*Tileset
	Layers       []LayerMeta
	ObjectLayers []*ObjectLayer

	Index *spatial.Index

	gidLUT       []uint16
	objectLayers map[spatial.LayerID]*ObjectLayer
	stamps       spatial.StampController
	log          *zap.Logger
}

// buildLUT builds the dense gid resolution table from tilesets sorted
// ascending by FirstGID. Overlapping ranges (buggy input) overwrite earlier
// entries instead of failing.
func buildLUT(tilesets []*Tileset) []uint16 {
	var maxGID uint32
	for _, ts := range tilesets {
		if ts.TileCount == 0 {
			continue
		}
		if end := ts.FirstGID + ts.TileCount - 1; end > maxGID {
			maxGID = end
		}
	}

	lut := make([]uint16, maxGID+1)
	for i := range lut {
		lut[i] = noTileset
	}
	for i, ts := range tilesets {
		for gid := ts.FirstGID; gid < ts.FirstGID+ts.TileCount; gid++ {
			lut[gid] = uint16(i)
		}
	}
	return lut
}

// Resolve maps a raw identifier to its owning tileset and tileset-local
// index. ok is false for the empty gid 0, identifiers beyond the table, and
// gaps no tileset claims; such tiles are skipped by the draw layer.
func (m *Map) Resolve(id spatial.GID) (ts *Tileset, local uint32, ok bool) {
	clean := id.Clean()
	if clean == 0 || clean >= uint32(len(m.gidLUT)) {
		return nil, 0, false
	}
	idx := m.gidLUT[clean]
	if idx == noTileset {
		return nil, 0, false
	}
	ts = m.Tilesets[idx]
	return ts, clean - ts.FirstGID, true
}

// MaxGID returns the highest identifier any tileset claims.
func (m *Map) MaxGID() uint32 {
	if len(m.gidLUT) == 0 {
		return 0
	}
	return uint32(len(m.gidLUT)) - 1
}

// ObjectLayerByID returns the object layer with the given layer id, or nil.
func (m *Map) ObjectLayerByID(id spatial.LayerID) *ObjectLayer {
	return m.objectLayers[id]
}
