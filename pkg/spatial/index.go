package spatial

import "github.com/Faultbox/tilemap/pkg/geom"

// TileHandle is an opaque reference to one tile insertion. Handles are
// process unique and never reused.
type TileHandle uint32

// ObjectHandle references an object within its owning layer's object list.
type ObjectHandle uint32

// LayerID identifies a logical map layer. Draw order follows numeric order.
type LayerID uint16

// TileRec is one tile placement inside a chunk.
type TileRec struct {
	Handle TileHandle
	ID     GID
	RelPos geom.Vec2 // offset from the chunk origin
}

// ObjectRec is one object reference inside a chunk. An object spanning
// several chunks has one record per spanned chunk, each holding the position
// relative to that chunk's origin, so any record reconstructs the same world
// position.
type ObjectRec struct {
	Handle ObjectHandle
	RelPos geom.Vec2
}

// Bucket holds the per-chunk, per-layer tile and object records.
type Bucket struct {
	Tiles   []TileRec
	Objects []ObjectRec
}

// Chunk holds all layer buckets for one chunk coordinate.
type Chunk struct {
	Layers map[LayerID]*Bucket
}

// TileLoc records where a tile handle lives.
type TileLoc struct {
	Chunk Coord
	Layer LayerID
	Slot  int
}

// Index is the global spatial index: a mapping from chunk coordinate to
// chunk contents plus an append-only handle table. It is built once at map
// load time and read-only afterwards.
type Index struct {
	Buckets map[Coord]*Chunk

	// Handles maps each issued TileHandle to its location. Entries are
	// never removed; a nil entry means the handle was allocated but the
	// record has not been placed yet.
	Handles []*TileLoc

	nextHandle uint32
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{
		Buckets: make(map[Coord]*Chunk),
	}
}

func (ix *Index) allocHandle() TileHandle {
	h := TileHandle(ix.nextHandle)
	ix.nextHandle++
	ix.Handles = append(ix.Handles, nil)
	return h
}

// bucket returns the layer bucket at (c, layer), creating chunk and bucket
// as needed.
func (ix *Index) bucket(c Coord, layer LayerID) *Bucket {
	chunk, ok := ix.Buckets[c]
	if !ok {
		chunk = &Chunk{Layers: make(map[LayerID]*Bucket)}
		ix.Buckets[c] = chunk
	}
	b, ok := chunk.Layers[layer]
	if !ok {
		b = &Bucket{}
		chunk.Layers[layer] = b
	}
	return b
}

// AddTile inserts a tile at the given world position and returns its handle.
// The chunk and layer bucket are created lazily; insertion always succeeds.
func (ix *Index) AddTile(id GID, layer LayerID, world geom.Vec2) TileHandle {
	cc := WorldToChunk(world)
	handle := ix.allocHandle()
	b := ix.bucket(cc, layer)

	slot := len(b.Tiles)
	b.Tiles = append(b.Tiles, TileRec{
		Handle: handle,
		ID:     id,
		RelPos: Rel(world),
	})
	ix.Handles[handle] = &TileLoc{Chunk: cc, Layer: layer, Slot: slot}
	return handle
}

// InsertObject appends a pre-computed object record into the given chunk and
// layer. The caller is responsible for computing the set of chunks an
// object's bounding box spans and calling this once per spanned chunk with
// that chunk's relative position.
func (ix *Index) InsertObject(layer LayerID, chunk Coord, rec ObjectRec) {
	b := ix.bucket(chunk, layer)
	b.Objects = append(b.Objects, rec)
}
