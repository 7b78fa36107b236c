package spatial

import (
	"testing"

	"github.com/Faultbox/tilemap/pkg/geom"
)

func TestAddTile_HandlesAreUniqueAndLocated(t *testing.T) {
	ix := NewIndex()

	seen := make(map[TileHandle]bool)
	positions := []geom.Vec2{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
		{X: 300, Y: 0},
		{X: -10, Y: -10},
		{X: 0, Y: 0}, // same position twice still gets a fresh handle
	}

	for _, p := range positions {
		h := ix.AddTile(GID(1), 0, p)
		if seen[h] {
			t.Fatalf("handle %d issued twice", h)
		}
		seen[h] = true

		loc := ix.Handles[h]
		if loc == nil {
			t.Fatalf("handle %d has no location descriptor", h)
		}
		if loc.Chunk != WorldToChunk(p) {
			t.Errorf("handle %d located in chunk %v, want %v", h, loc.Chunk, WorldToChunk(p))
		}
		rec := ix.Buckets[loc.Chunk].Layers[loc.Layer].Tiles[loc.Slot]
		if rec.Handle != h {
			t.Errorf("location slot holds handle %d, want %d", rec.Handle, h)
		}
	}

	if len(ix.Handles) != len(positions) {
		t.Errorf("handle table has %d entries, want %d", len(ix.Handles), len(positions))
	}
}

func TestAddTile_LazyChunkAndBucketCreation(t *testing.T) {
	ix := NewIndex()

	if len(ix.Buckets) != 0 {
		t.Fatalf("fresh index has %d chunks, want 0", len(ix.Buckets))
	}

	ix.AddTile(GID(5), 3, geom.V(10, 10))
	ix.AddTile(GID(6), 3, geom.V(20, 20))
	ix.AddTile(GID(7), 4, geom.V(30, 30))

	if len(ix.Buckets) != 1 {
		t.Fatalf("index has %d chunks, want 1", len(ix.Buckets))
	}
	chunk := ix.Buckets[Coord{0, 0}]
	if len(chunk.Layers) != 2 {
		t.Fatalf("chunk has %d layer buckets, want 2", len(chunk.Layers))
	}
	if got := len(chunk.Layers[3].Tiles); got != 2 {
		t.Errorf("layer 3 has %d tiles, want 2", got)
	}
	if got := len(chunk.Layers[4].Tiles); got != 1 {
		t.Errorf("layer 4 has %d tiles, want 1", got)
	}
}

func TestAddTile_StoresChunkRelativePosition(t *testing.T) {
	ix := NewIndex()

	h := ix.AddTile(GID(9), 0, geom.V(300, 520))

	loc := ix.Handles[h]
	if loc.Chunk != (Coord{1, 2}) {
		t.Fatalf("chunk = %v, want {1 2}", loc.Chunk)
	}
	rec := ix.Buckets[loc.Chunk].Layers[0].Tiles[loc.Slot]
	if rec.RelPos != geom.V(44, 8) {
		t.Errorf("RelPos = %v, want {44 8}", rec.RelPos)
	}
}

func TestInsertObject_AppendsIntoGivenChunk(t *testing.T) {
	ix := NewIndex()

	// Same object deliberately inserted into two chunks, as the map builder
	// does for spanning bounding boxes.
	ix.InsertObject(1, Coord{0, 0}, ObjectRec{Handle: 0, RelPos: geom.V(200, 10)})
	ix.InsertObject(1, Coord{1, 0}, ObjectRec{Handle: 0, RelPos: geom.V(-56, 10)})

	b0 := ix.Buckets[Coord{0, 0}].Layers[1]
	b1 := ix.Buckets[Coord{1, 0}].Layers[1]
	if len(b0.Objects) != 1 || len(b1.Objects) != 1 {
		t.Fatalf("expected one record per chunk, got %d and %d", len(b0.Objects), len(b1.Objects))
	}

	// Both records must reconstruct the same world position.
	w0 := Origin(Coord{0, 0}).Add(b0.Objects[0].RelPos)
	w1 := Origin(Coord{1, 0}).Add(b1.Objects[0].RelPos)
	if w0 != w1 {
		t.Errorf("world positions differ: %v vs %v", w0, w1)
	}
}
