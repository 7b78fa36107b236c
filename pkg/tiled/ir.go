// Package tiled decodes tile-grid map descriptions in the Tiled JSON format
// into a canonical, format-agnostic intermediate representation consumed by
// the tilemap package.
package tiled

import (
	"github.com/Faultbox/tilemap/pkg/geom"
	"github.com/Faultbox/tilemap/pkg/spatial"
)

// IRMap is the canonical decoded map.
type IRMap struct {
	TileW, TileH uint32
	Properties   Properties
	Tilesets     []IRTileset // sorted ascending by FirstGID
	Layers       []IRLayer   // draw order: slice order
}

// IRTileset describes one atlas image organized as a regular tile grid.
type IRTileset struct {
	FirstGID  uint32
	Image     string
	TileW     uint32
	TileH     uint32
	TileCount uint32
	Columns   uint32
	Spacing   uint32
	Margin    uint32

	Properties Properties
	Tiles      []IRTileMeta
}

// IRTileMeta carries per-tile metadata: custom properties and collision
// shapes drawn in the tileset editor.
type IRTileMeta struct {
	ID         uint32
	Properties Properties
	Objects    []Object
}

// LayerKind discriminates layer payloads.
type LayerKind int

// Layer kinds.
const (
	LayerTiles LayerKind = iota
	LayerObjects
	LayerUnsupported
)

// IRLayer is one decoded layer.
type IRLayer struct {
	Name       string
	Visible    bool
	Opacity    float32
	Offset     geom.Vec2
	Properties Properties

	Kind LayerKind

	// Tile layer payload.
	Width, Height int
	Data          []spatial.GID // raw gids, flip flags included

	// Object layer payload.
	Objects []Object
}

// ObjectShape classifies an object's geometry.
type ObjectShape int

// Object shapes.
const (
	ShapeRectangle ObjectShape = iota
	ShapePoint
	ShapePolygon
	ShapePolyline
	ShapeTile
)

// Object is one placed object record.
type Object struct {
	ID       uint32
	Name     string
	Class    string
	X, Y     float32
	Width    float32
	Height   float32
	Rotation float32
	Visible  bool

	Shape  ObjectShape
	Points []geom.Vec2 // polygon/polyline vertices, relative to (X, Y)
	GID    spatial.GID // tile reference, ShapeTile only

	Properties Properties
}

// AABB returns the object's world-space axis-aligned bounding box. Tile
// objects are anchored at their bottom-left corner; polygon and polyline
// bounds are taken over their translated vertices.
func (o *Object) AABB() geom.Rect {
	switch o.Shape {
	case ShapeTile:
		return geom.NewRect(o.X, o.Y-o.Height, o.Width, o.Height)
	case ShapePolygon, ShapePolyline:
		if len(o.Points) == 0 {
			return geom.NewRect(o.X, o.Y, 0, 0)
		}
		mn, mx := o.Points[0], o.Points[0]
		for _, p := range o.Points[1:] {
			mn = mn.Min(p)
			mx = mx.Max(p)
		}
		return geom.NewRect(o.X+mn.X, o.Y+mn.Y, mx.X-mn.X, mx.Y-mn.Y)
	default:
		// Rectangle; points have zero size.
		return geom.NewRect(o.X, o.Y, o.Width, o.Height)
	}
}

// MaxGID returns the highest identifier claimed by any tileset, or 0 when no
// tilesets exist.
func (m *IRMap) MaxGID() uint32 {
	var max uint32
	for _, ts := range m.Tilesets {
		if end := ts.FirstGID + ts.TileCount - 1; ts.TileCount > 0 && end > max {
			max = end
		}
	}
	return max
}
