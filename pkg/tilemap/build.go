package tilemap

import (
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/tilemap/pkg/geom"
	"github.com/Faultbox/tilemap/pkg/spatial"
	"github.com/Faultbox/tilemap/pkg/tiled"
)

// Load decodes a map document from disk and builds the runtime map.
// A nil logger disables load-time stats.
func Load(path string, log *zap.Logger) (*Map, error) {
	ir, _, err := tiled.DecodeFile(path)
	if err != nil {
		return nil, err
	}
	return FromIR(ir, log), nil
}

// LoadStrict is Load with the decoder's schema validation pre-pass.
func LoadStrict(path string, log *zap.Logger) (*Map, error) {
	ir, _, err := tiled.DecodeFileStrict(path)
	if err != nil {
		return nil, err
	}
	return FromIR(ir, log), nil
}

// FromIR builds the runtime map from decoded IR in one pass: tileset table,
// gid resolution table, spatial index and object layers. The IR is assumed
// validated by the decoder; building cannot fail.
func FromIR(ir *tiled.IRMap, log *zap.Logger) *Map {
	if log == nil {
		log = zap.NewNop()
	}

	m := &Map{
		TileW:        ir.TileW,
		TileH:        ir.TileH,
		Properties:   ir.Properties,
		Index:        spatial.NewIndex(),
		objectLayers: make(map[spatial.LayerID]*ObjectLayer),
		log:          log,
	}

	m.Tilesets = make([]*Tileset, 0, len(ir.Tilesets))
	for _, ts := range ir.Tilesets {
		m.Tilesets = append(m.Tilesets, &Tileset{
			FirstGID:   ts.FirstGID,
			Image:      ts.Image,
			TileW:      ts.TileW,
			TileH:      ts.TileH,
			TileCount:  ts.TileCount,
			Columns:    ts.Columns,
			Spacing:    ts.Spacing,
			Margin:     ts.Margin,
			Properties: ts.Properties,
		})
	}
	sort.Slice(m.Tilesets, func(a, b int) bool {
		return m.Tilesets[a].FirstGID < m.Tilesets[b].FirstGID
	})
	m.gidLUT = buildLUT(m.Tilesets)

	var tileCount, objectCount int
	for lz := range ir.Layers {
		layer := &ir.Layers[lz]
		id := spatial.LayerID(lz)

		m.Layers = append(m.Layers, LayerMeta{
			ID:         id,
			Name:       layer.Name,
			Kind:       layer.Kind,
			Visible:    layer.Visible,
			Opacity:    layer.Opacity,
			Offset:     layer.Offset,
			Properties: layer.Properties,
		})

		switch layer.Kind {
		case tiled.LayerTiles:
			tileCount += m.buildTileLayer(id, layer)
		case tiled.LayerObjects:
			objectCount += len(layer.Objects)
			m.buildObjectLayer(id, layer)
		}
	}

	log.Info("map built",
		zap.Int("tilesets", len(m.Tilesets)),
		zap.Int("layers", len(m.Layers)),
		zap.Int("chunks", len(m.Index.Buckets)),
		zap.Int("tiles", tileCount),
		zap.Int("objects", objectCount),
	)
	return m
}

// buildTileLayer inserts every non-empty gid at its world position.
func (m *Map) buildTileLayer(id spatial.LayerID, layer *tiled.IRLayer) int {
	if layer.Width <= 0 {
		return 0
	}
	inserted := 0
	for idx, gid := range layer.Data {
		if gid == 0 {
			continue
		}
		col := idx % layer.Width
		row := idx / layer.Width
		world := layer.Offset.Add(geom.V(
			float32(col)*float32(m.TileW),
			float32(row)*float32(m.TileH),
		))
		m.Index.AddTile(gid, id, world)
		inserted++
	}
	return inserted
}

// buildObjectLayer retains the layer's objects and inserts one record into
// every chunk the object's bounding box overlaps. Each record stores the
// position relative to its own chunk, so no chunk is authoritative.
func (m *Map) buildObjectLayer(id spatial.LayerID, layer *tiled.IRLayer) {
	ol := &ObjectLayer{
		ID:      id,
		Name:    layer.Name,
		Objects: layer.Objects,
	}
	m.ObjectLayers = append(m.ObjectLayers, ol)
	m.objectLayers[id] = ol

	for oi := range ol.Objects {
		obj := &ol.Objects[oi]

		aabb := obj.AABB()
		aabb.X += layer.Offset.X
		aabb.Y += layer.Offset.Y
		world := layer.Offset.Add(geom.V(obj.X, obj.Y))

		cMin := spatial.WorldToChunk(aabb.Min())
		cMax := spatial.WorldToChunk(aabb.Max())
		for cy := cMin.Y; cy <= cMax.Y; cy++ {
			for cx := cMin.X; cx <= cMax.X; cx++ {
				chunk := spatial.Coord{X: cx, Y: cy}
				m.Index.InsertObject(id, chunk, spatial.ObjectRec{
					Handle: spatial.ObjectHandle(oi),
					RelPos: world.Sub(spatial.Origin(chunk)),
				})
			}
		}
	}
}
