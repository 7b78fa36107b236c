package tiled

import (
	"testing"

	"github.com/Faultbox/tilemap/pkg/geom"
)

func TestObject_AABB(t *testing.T) {
	tests := []struct {
		name string
		obj  Object
		want geom.Rect
	}{
		{
			name: "rectangle",
			obj:  Object{Shape: ShapeRectangle, X: 10, Y: 20, Width: 30, Height: 40},
			want: geom.NewRect(10, 20, 30, 40),
		},
		{
			name: "point",
			obj:  Object{Shape: ShapePoint, X: 5, Y: 6},
			want: geom.NewRect(5, 6, 0, 0),
		},
		{
			name: "tile anchored bottom-left",
			obj:  Object{Shape: ShapeTile, X: 0, Y: 64, Width: 16, Height: 16},
			want: geom.NewRect(0, 48, 16, 16),
		},
		{
			name: "polygon bounds",
			obj: Object{
				Shape:  ShapePolygon,
				X:      100,
				Y:      200,
				Points: []geom.Vec2{{X: 0, Y: 0}, {X: 8, Y: -4}, {X: 4, Y: 8}},
			},
			want: geom.NewRect(100, 196, 8, 12),
		},
		{
			name: "empty polyline collapses to origin",
			obj:  Object{Shape: ShapePolyline, X: 3, Y: 4},
			want: geom.NewRect(3, 4, 0, 0),
		},
	}

	for _, tt := range tests {
		if got := tt.obj.AABB(); got != tt.want {
			t.Errorf("%s: AABB() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIRMap_MaxGID(t *testing.T) {
	m := &IRMap{Tilesets: []IRTileset{
		{FirstGID: 1, TileCount: 4},
		{FirstGID: 5, TileCount: 10},
	}}
	if got := m.MaxGID(); got != 14 {
		t.Errorf("MaxGID() = %d, want 14", got)
	}

	empty := &IRMap{}
	if got := empty.MaxGID(); got != 0 {
		t.Errorf("MaxGID() on empty map = %d, want 0", got)
	}
}
