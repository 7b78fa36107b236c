package tiled

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/tilemap/pkg/geom"
	"github.com/Faultbox/tilemap/pkg/spatial"
)

// DecodeFile reads and decodes a map document from disk. It returns the IR
// and the map's directory, which relative tileset image paths resolve
// against. Only JSON documents (.json, .tmj) are supported.
func DecodeFile(path string) (*IRMap, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".tmj":
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading map file %s: %w", path, err)
	}

	ir, err := Decode(data, filepath.Dir(path))
	if err != nil {
		return nil, "", fmt.Errorf("decoding map file %s: %w", path, err)
	}
	return ir, filepath.Dir(path), nil
}

// DecodeFileStrict is DecodeFile with an upfront schema validation pass over
// the raw document.
func DecodeFileStrict(path string) (*IRMap, string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".tmj":
	default:
		return nil, "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("reading map file %s: %w", path, err)
	}
	if err := ValidateDocument(data); err != nil {
		return nil, "", fmt.Errorf("validating map file %s: %w", path, err)
	}

	ir, err := Decode(data, filepath.Dir(path))
	if err != nil {
		return nil, "", fmt.Errorf("decoding map file %s: %w", path, err)
	}
	return ir, filepath.Dir(path), nil
}

// Decode decodes a raw map document. dir is the directory external tileset
// references are resolved against.
func Decode(data []byte, dir string) (*IRMap, error) {
	var j jsonMap
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, fmt.Errorf("parsing map document: %w", err)
	}

	tilesets, err := loadTilesets(j.Tilesets, dir)
	if err != nil {
		return nil, err
	}
	sort.Slice(tilesets, func(a, b int) bool {
		return tilesets[a].FirstGID < tilesets[b].FirstGID
	})

	mapProps, err := parseProperties(j.Properties)
	if err != nil {
		return nil, err
	}

	ir := &IRMap{
		TileW:      j.TileWidth,
		TileH:      j.TileHeight,
		Properties: mapProps,
		Tilesets:   tilesets,
	}
	maxGID := ir.MaxGID()

	ir.Layers = make([]IRLayer, 0, len(j.Layers))
	for i := range j.Layers {
		layer, err := decodeLayer(&j.Layers[i], maxGID)
		if err != nil {
			return nil, err
		}
		ir.Layers = append(ir.Layers, layer)
	}
	return ir, nil
}

// loadTilesets resolves external tileset references. The files are
// independent, so they are read and parsed concurrently; results keep the
// reference order.
func loadTilesets(refs []jsonTilesetRef, dir string) ([]IRTileset, error) {
	tilesets := make([]IRTileset, len(refs))

	var g errgroup.Group
	for i, ref := range refs {
		g.Go(func() error {
			if !strings.HasSuffix(ref.Source, ".json") && !strings.HasSuffix(ref.Source, ".tsj") {
				return &InvalidMapError{
					Reason: fmt.Sprintf("external tileset must be JSON: %s", ref.Source),
				}
			}
			path := filepath.Join(dir, ref.Source)
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading tileset %s: %w", path, err)
			}
			var ext jsonExternalTileset
			if err := json.Unmarshal(data, &ext); err != nil {
				return fmt.Errorf("parsing tileset %s: %w", path, err)
			}
			ts, err := tilesetToIR(&ext, ref.FirstGID)
			if err != nil {
				return err
			}
			tilesets[i] = ts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tilesets, nil
}

func tilesetToIR(ext *jsonExternalTileset, firstGID uint32) (IRTileset, error) {
	props, err := parseProperties(ext.Properties)
	if err != nil {
		return IRTileset{}, err
	}

	tiles := make([]IRTileMeta, 0, len(ext.Tiles))
	for _, tile := range ext.Tiles {
		tileProps, err := parseProperties(tile.Properties)
		if err != nil {
			return IRTileset{}, err
		}
		objects := make([]Object, 0, len(tile.ObjectGroup.Objects))
		for _, obj := range tile.ObjectGroup.Objects {
			o, err := objectToIR(obj)
			if err != nil {
				return IRTileset{}, err
			}
			objects = append(objects, o)
		}
		tiles = append(tiles, IRTileMeta{
			ID:         tile.ID,
			Properties: tileProps,
			Objects:    objects,
		})
	}

	return IRTileset{
		FirstGID:   firstGID,
		Image:      ext.Image,
		TileW:      ext.TileWidth,
		TileH:      ext.TileHeight,
		TileCount:  ext.TileCount,
		Columns:    ext.Columns,
		Spacing:    ext.Spacing,
		Margin:     ext.Margin,
		Properties: props,
		Tiles:      tiles,
	}, nil
}

func decodeLayer(l *jsonLayer, maxGID uint32) (IRLayer, error) {
	props, err := parseProperties(l.Properties)
	if err != nil {
		return IRLayer{}, err
	}

	layer := IRLayer{
		Name:       l.Name,
		Visible:    l.Visible == nil || *l.Visible,
		Opacity:    1,
		Offset:     geom.V(l.OffsetX, l.OffsetY),
		Properties: props,
	}
	if l.Opacity != nil {
		layer.Opacity = *l.Opacity
	}

	kind := l.Type
	if kind == "" {
		kind = "tilelayer"
	}
	switch kind {
	case "tilelayer":
		gids, err := decodeLayerData(l)
		if err != nil {
			return IRLayer{}, err
		}
		for _, raw := range gids {
			if gid := raw.Clean(); gid != 0 && gid > maxGID {
				return IRLayer{}, &InvalidTileGIDError{Layer: l.Name, GID: gid, MaxGID: maxGID}
			}
		}
		layer.Kind = LayerTiles
		layer.Width = l.Width
		layer.Height = l.Height
		layer.Data = gids
	case "objectgroup":
		layer.Kind = LayerObjects
		layer.Objects = make([]Object, 0, len(l.Objects))
		for _, obj := range l.Objects {
			if obj.GID != nil {
				if gid := spatial.GID(*obj.GID).Clean(); gid == 0 || gid > maxGID {
					return IRLayer{}, &InvalidObjectGIDError{
						Layer: l.Name, ObjectID: obj.ID, GID: gid, MaxGID: maxGID,
					}
				}
			}
			o, err := objectToIR(obj)
			if err != nil {
				return IRLayer{}, err
			}
			layer.Objects = append(layer.Objects, o)
		}
	default:
		layer.Kind = LayerUnsupported
	}
	return layer, nil
}

func objectToIR(obj jsonObject) (Object, error) {
	props, err := parseProperties(obj.Props)
	if err != nil {
		return Object{}, err
	}

	out := Object{
		ID:         obj.ID,
		Name:       obj.Name,
		X:          obj.X,
		Y:          obj.Y,
		Width:      obj.Width,
		Height:     obj.Height,
		Rotation:   obj.Rotation,
		Visible:    obj.Visible == nil || *obj.Visible,
		Properties: props,
	}

	// "class" superseded the legacy "type" field; prefer it when present.
	out.Class = obj.Class
	if out.Class == "" {
		out.Class = obj.Type
	}

	switch {
	case obj.GID != nil:
		out.Shape = ShapeTile
		out.GID = spatial.GID(*obj.GID)
	case obj.Point:
		out.Shape = ShapePoint
	case len(obj.Polygon) > 0:
		out.Shape = ShapePolygon
		out.Points = toPoints(obj.Polygon)
	case len(obj.Polyline) > 0:
		out.Shape = ShapePolyline
		out.Points = toPoints(obj.Polyline)
	default:
		out.Shape = ShapeRectangle
	}
	return out, nil
}

func toPoints(pts []jsonPoint) []geom.Vec2 {
	out := make([]geom.Vec2, len(pts))
	for i, p := range pts {
		out[i] = geom.V(p.X, p.Y)
	}
	return out
}
