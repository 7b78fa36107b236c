package tilemap

import (
	"sort"

	"github.com/Faultbox/tilemap/pkg/geom"
	"github.com/Faultbox/tilemap/pkg/spatial"
	"github.com/Faultbox/tilemap/pkg/tiled"
)

// DefaultCullMargin is the number of extra chunk rings kept around the
// viewport so edge tiles pop in before they scroll into view.
const DefaultCullMargin int32 = 1

// Camera describes a viewport-driven view: a world-space target, per-axis
// zoom and the viewport size in pixels.
type Camera struct {
	Target    geom.Vec2
	Zoom      geom.Vec2
	ViewportW int32
	ViewportH int32
}

// WorldRect returns the world rectangle the camera sees. Zero zoom
// components are treated as 1.
func (c Camera) WorldRect() (viewMin, viewMax geom.Vec2) {
	zx, zy := c.Zoom.X, c.Zoom.Y
	if zx == 0 {
		zx = 1
	}
	if zy == 0 {
		zy = 1
	}
	half := geom.V(float32(c.ViewportW)/zx/2, float32(c.ViewportH)/zy/2)
	return c.Target.Sub(half), c.Target.Add(half)
}

// VisibleChunks returns the populated chunks overlapping the world
// rectangle expanded by margin chunks, ordered by (y, x).
func (m *Map) VisibleChunks(viewMin, viewMax geom.Vec2, margin int32) []spatial.ChunkView {
	return m.Index.VisibleChunks(viewMin, viewMax, margin)
}

// VisibleRect is VisibleChunks with the default cull margin.
func (m *Map) VisibleRect(viewMin, viewMax geom.Vec2) []spatial.ChunkView {
	return m.Index.VisibleChunks(viewMin, viewMax, DefaultCullMargin)
}

// Visible translates the camera to a world rectangle and funnels into the
// same rectangle query.
func (m *Map) Visible(cam Camera) []spatial.ChunkView {
	viewMin, viewMax := cam.WorldRect()
	return m.VisibleRect(viewMin, viewMax)
}

// BeginFrame allocates the stamp for one draw pass. On counter overflow all
// object layers' last-seen state is reset before the wrapped stamp is
// issued.
func (m *Map) BeginFrame() uint32 {
	sets := make([]*spatial.SeenSet, len(m.ObjectLayers))
	for i, ol := range m.ObjectLayers {
		sets[i] = &ol.seen
	}
	return m.stamps.Next(sets...)
}

// FrameStamp returns the stamp of the pass in progress.
func (m *Map) FrameStamp() uint32 {
	return m.stamps.Current()
}

// SetFrameStamp overrides the stamp counter. Intended for tests and for
// restoring saved renderer state.
func (m *Map) SetFrameStamp(v uint32) {
	m.stamps.SetCurrent(v)
}

// VisibleTile is one tile occurrence produced by a chunk walk.
type VisibleTile struct {
	Layer spatial.LayerID
	Rec   spatial.TileRec
	World geom.Vec2
}

// EachVisibleTile walks the tile records of the given chunks in layer order
// and hands each to fn with its reconstructed world position. Resolution and
// orientation decoding stay with the caller, which knows how to draw.
func (m *Map) EachVisibleTile(chunks []spatial.ChunkView, fn func(VisibleTile)) {
	for _, cv := range chunks {
		origin := spatial.Origin(cv.Coord)
		for _, id := range sortedLayerIDs(cv.Layers) {
			bucket := cv.Layers[id]
			for _, rec := range bucket.Tiles {
				fn(VisibleTile{
					Layer: id,
					Rec:   rec,
					World: origin.Add(rec.RelPos),
				})
			}
		}
	}
}

// VisibleObject is one deduplicated object occurrence.
type VisibleObject struct {
	Layer  *ObjectLayer
	Index  int
	Object *tiled.Object
	World  geom.Vec2
}

// EachVisibleObject walks the object records of the given chunks under one
// frame stamp. An object reachable from several visible chunks is handed to
// fn exactly once per stamp; repeat calls with the same stamp yield nothing
// new.
func (m *Map) EachVisibleObject(chunks []spatial.ChunkView, stamp uint32, fn func(VisibleObject)) {
	for _, cv := range chunks {
		origin := spatial.Origin(cv.Coord)
		for _, id := range sortedLayerIDs(cv.Layers) {
			ol := m.objectLayers[id]
			if ol == nil {
				continue
			}
			for _, rec := range cv.Layers[id].Objects {
				idx := int(rec.Handle)
				if !ol.seen.Mark(idx, len(ol.Objects), stamp) {
					continue
				}
				fn(VisibleObject{
					Layer:  ol,
					Index:  idx,
					Object: &ol.Objects[idx],
					World:  origin.Add(rec.RelPos),
				})
			}
		}
	}
}

func sortedLayerIDs(layers map[spatial.LayerID]*spatial.Bucket) []spatial.LayerID {
	ids := make([]spatial.LayerID, 0, len(layers))
	for id := range layers {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}
