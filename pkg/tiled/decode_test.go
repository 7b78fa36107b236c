package tiled

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const testTilesetJSON = `{
  "tilewidth": 16,
  "tileheight": 16,
  "tilecount": 4,
  "columns": 2,
  "image": "tiles.png"
}`

// writeMapFixture writes a map document plus tileset.json into a temp dir
// and returns the map path.
func writeMapFixture(t *testing.T, mapJSON, tilesetJSON string) string {
	t.Helper()
	dir := t.TempDir()
	mapPath := filepath.Join(dir, "map.json")
	if err := os.WriteFile(mapPath, []byte(mapJSON), 0644); err != nil {
		t.Fatalf("writing map fixture: %v", err)
	}
	if tilesetJSON != "" {
		if err := os.WriteFile(filepath.Join(dir, "tileset.json"), []byte(tilesetJSON), 0644); err != nil {
			t.Fatalf("writing tileset fixture: %v", err)
		}
	}
	return mapPath
}

func TestDecodeFile_PropertiesAtEveryLevel(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16,
	  "tileheight": 16,
	  "properties": [
	    {"name":"is_night","type":"bool","value":true},
	    {"name":"gravity","type":"float","value":9.8},
	    {"name":"theme","type":"string","value":"forest"}
	  ],
	  "layers": [
	    {
	      "type":"tilelayer", "name":"ground", "width":2, "height":2,
	      "data":[1,0,0,0],
	      "properties":[
	        {"name":"is_solid","type":"bool","value":true},
	        {"name":"difficulty","type":"int","value":3}
	      ]
	    },
	    {
	      "type":"objectgroup", "name":"spawns",
	      "objects":[
	        {"id":7,"name":"spawn_1","type":"spawn",
	         "properties":[{"name":"kind","type":"string","value":"player"}]}
	      ]
	    }
	  ],
	  "tilesets":[{"firstgid":1,"source":"tileset.json"}]
	}`

	tilesetJSON := `{
	  "tilewidth":16, "tileheight":16, "tilecount":4, "columns":2,
	  "image":"tiles.png",
	  "properties":[{"name":"biome","type":"string","value":"forest"}],
	  "tiles":[
	    {"id":0,
	     "properties":[{"name":"damage","type":"int","value":10}],
	     "objectgroup":{"objects":[
	       {"id":1,"name":"hitbox","type":"shape",
	        "properties":[{"name":"sensor","type":"bool","value":false}]}
	     ]}}
	  ]
	}`

	ir, _, err := DecodeFile(writeMapFixture(t, mapJSON, tilesetJSON))
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	if v, ok := ir.Properties.Bool("is_night"); !ok || !v {
		t.Errorf("map is_night = %v %v, want true", v, ok)
	}
	if v, ok := ir.Properties.Float("gravity"); !ok || v != 9.8 {
		t.Errorf("map gravity = %v %v, want 9.8", v, ok)
	}
	if v, ok := ir.Properties.String("theme"); !ok || v != "forest" {
		t.Errorf("map theme = %q %v, want forest", v, ok)
	}

	if v, ok := ir.Layers[0].Properties.Int("difficulty"); !ok || v != 3 {
		t.Errorf("layer difficulty = %d %v, want 3", v, ok)
	}

	if ir.Layers[1].Kind != LayerObjects {
		t.Fatalf("layer 1 kind = %v, want objects", ir.Layers[1].Kind)
	}
	obj := ir.Layers[1].Objects[0]
	if obj.Class != "spawn" {
		t.Errorf("object class = %q, want spawn (legacy type field)", obj.Class)
	}
	if v, ok := obj.Properties.String("kind"); !ok || v != "player" {
		t.Errorf("object kind = %q %v, want player", v, ok)
	}

	ts := ir.Tilesets[0]
	if v, ok := ts.Properties.String("biome"); !ok || v != "forest" {
		t.Errorf("tileset biome = %q %v, want forest", v, ok)
	}
	if len(ts.Tiles) != 1 {
		t.Fatalf("tileset has %d tile metas, want 1", len(ts.Tiles))
	}
	if v, ok := ts.Tiles[0].Properties.Int("damage"); !ok || v != 10 {
		t.Errorf("tile damage = %d %v, want 10", v, ok)
	}
	if len(ts.Tiles[0].Objects) != 1 {
		t.Fatalf("tile has %d collision objects, want 1", len(ts.Tiles[0].Objects))
	}
	if v, ok := ts.Tiles[0].Objects[0].Properties.Bool("sensor"); !ok || v {
		t.Errorf("collision sensor = %v %v, want false", v, ok)
	}
}

func TestDecodeFile_LargeIntPropertyKeepsFullWidth(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16, "tileheight": 16,
	  "properties": [{"name":"big_id","type":"object","value":5000000000}],
	  "layers": [],
	  "tilesets":[{"firstgid":1,"source":"tileset.json"}]
	}`

	ir, _, err := DecodeFile(writeMapFixture(t, mapJSON, testTilesetJSON))
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	if v, ok := ir.Properties.Int64("big_id"); !ok || v != 5_000_000_000 {
		t.Errorf("Int64(big_id) = %d %v, want 5000000000", v, ok)
	}
	if _, ok := ir.Properties.Int("big_id"); ok {
		t.Error("Int(big_id) should fail for values outside 32 bits")
	}
}

func TestDecodeFile_UntypedPropertiesInferred(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16, "tileheight": 16,
	  "properties": [
	    {"name":"flag","value":true},
	    {"name":"count","value":12},
	    {"name":"ratio","value":0.5},
	    {"name":"label","value":"hi"}
	  ],
	  "layers": [],
	  "tilesets":[{"firstgid":1,"source":"tileset.json"}]
	}`

	ir, _, err := DecodeFile(writeMapFixture(t, mapJSON, testTilesetJSON))
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	if v, ok := ir.Properties.Bool("flag"); !ok || !v {
		t.Errorf("flag = %v %v, want true", v, ok)
	}
	if v, ok := ir.Properties.Int("count"); !ok || v != 12 {
		t.Errorf("count = %d %v, want 12", v, ok)
	}
	if v, ok := ir.Properties.Float("ratio"); !ok || v != 0.5 {
		t.Errorf("ratio = %v %v, want 0.5", v, ok)
	}
	if v, ok := ir.Properties.String("label"); !ok || v != "hi" {
		t.Errorf("label = %q %v, want hi", v, ok)
	}
}

func TestDecodeFile_MalformedJSON(t *testing.T) {
	path := writeMapFixture(t, "{ not json", "")

	_, _, err := DecodeFile(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestDecodeFile_MissingTilesetFile(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16, "tileheight": 16, "layers": [],
	  "tilesets":[{"firstgid":1,"source":"missing_tileset.json"}]
	}`

	_, _, err := DecodeFile(writeMapFixture(t, mapJSON, ""))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected wrapped os.ErrNotExist, got %v", err)
	}
}

func TestDecodeFile_InvalidTileGID(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16, "tileheight": 16,
	  "layers": [
	    {"type":"tilelayer","name":"ground","width":1,"height":1,"data":[99]}
	  ],
	  "tilesets":[{"firstgid":1,"source":"tileset.json"}]
	}`

	_, _, err := DecodeFile(writeMapFixture(t, mapJSON, testTilesetJSON))
	var gidErr *InvalidTileGIDError
	if !errors.As(err, &gidErr) {
		t.Fatalf("expected InvalidTileGIDError, got %v", err)
	}
	if gidErr.Layer != "ground" || gidErr.GID != 99 || gidErr.MaxGID != 4 {
		t.Errorf("error = %+v, want layer=ground gid=99 max=4", gidErr)
	}
}

func TestDecodeFile_InvalidObjectGID(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16, "tileheight": 16,
	  "layers": [
	    {"type":"objectgroup","name":"props",
	     "objects":[{"id":3,"gid":99,"x":0,"y":0,"width":16,"height":16}]}
	  ],
	  "tilesets":[{"firstgid":1,"source":"tileset.json"}]
	}`

	_, _, err := DecodeFile(writeMapFixture(t, mapJSON, testTilesetJSON))
	var gidErr *InvalidObjectGIDError
	if !errors.As(err, &gidErr) {
		t.Fatalf("expected InvalidObjectGIDError, got %v", err)
	}
	if gidErr.Layer != "props" || gidErr.ObjectID != 3 || gidErr.GID != 99 {
		t.Errorf("error = %+v, want layer=props object=3 gid=99", gidErr)
	}
}

func TestDecodeFile_UnknownPropertyType(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16, "tileheight": 16,
	  "properties": [{"name":"mystery","type":"not_supported","value":"x"}],
	  "layers": [],
	  "tilesets":[{"firstgid":1,"source":"tileset.json"}]
	}`

	_, _, err := DecodeFile(writeMapFixture(t, mapJSON, testTilesetJSON))
	var propErr *UnsupportedPropertyTypeError
	if !errors.As(err, &propErr) {
		t.Fatalf("expected UnsupportedPropertyTypeError, got %v", err)
	}
	if propErr.Name != "mystery" || propErr.Kind != "not_supported" {
		t.Errorf("error = %+v, want name=mystery kind=not_supported", propErr)
	}
}

func TestDecodeFile_UnsupportedExtension(t *testing.T) {
	_, _, err := DecodeFile("level.tmx")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestDecodeFile_ObjectShapes(t *testing.T) {
	mapJSON := `{
	  "tilewidth": 16, "tileheight": 16,
	  "layers": [
	    {"type":"objectgroup","name":"shapes","objects":[
	      {"id":1,"x":1,"y":2,"width":10,"height":20},
	      {"id":2,"x":5,"y":5,"point":true},
	      {"id":3,"x":0,"y":0,"polygon":[{"x":0,"y":0},{"x":8,"y":0},{"x":4,"y":8}]},
	      {"id":4,"x":0,"y":0,"polyline":[{"x":0,"y":0},{"x":16,"y":16}]},
	      {"id":5,"x":0,"y":32,"width":16,"height":16,"gid":2}
	    ]}
	  ],
	  "tilesets":[{"firstgid":1,"source":"tileset.json"}]
	}`

	ir, _, err := DecodeFile(writeMapFixture(t, mapJSON, testTilesetJSON))
	if err != nil {
		t.Fatalf("DecodeFile failed: %v", err)
	}

	objs := ir.Layers[0].Objects
	wantShapes := []ObjectShape{ShapeRectangle, ShapePoint, ShapePolygon, ShapePolyline, ShapeTile}
	for i, want := range wantShapes {
		if objs[i].Shape != want {
			t.Errorf("object %d shape = %v, want %v", i, objs[i].Shape, want)
		}
	}
	if objs[4].GID.Clean() != 2 {
		t.Errorf("tile object gid = %d, want 2", objs[4].GID.Clean())
	}
}
