package tiled

import "encoding/json"

// Raw JSON document shapes. Unknown fields are ignored by encoding/json,
// matching the tolerance the format requires.

type jsonMap struct {
	TileWidth  uint32           `json:"tilewidth"`
	TileHeight uint32           `json:"tileheight"`
	Layers     []jsonLayer      `json:"layers"`
	Tilesets   []jsonTilesetRef `json:"tilesets"`
	Properties []jsonProperty   `json:"properties"`
}

type jsonLayer struct {
	Name        string          `json:"name"`
	Type        string          `json:"type"` // "tilelayer" or "objectgroup"
	Data        json.RawMessage `json:"data"` // array of gids, or base64 string
	Encoding    string          `json:"encoding"`
	Compression string          `json:"compression"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Visible     *bool           `json:"visible"`
	Opacity     *float32        `json:"opacity"`
	OffsetX     float32         `json:"offsetx"`
	OffsetY     float32         `json:"offsety"`
	Objects     []jsonObject    `json:"objects"`
	Properties  []jsonProperty  `json:"properties"`
}

type jsonTilesetRef struct {
	FirstGID uint32 `json:"firstgid"`
	Source   string `json:"source"`
}

type jsonExternalTileset struct {
	TileWidth  uint32         `json:"tilewidth"`
	TileHeight uint32         `json:"tileheight"`
	TileCount  uint32         `json:"tilecount"`
	Columns    uint32         `json:"columns"`
	Image      string         `json:"image"`
	Spacing    uint32         `json:"spacing"`
	Margin     uint32         `json:"margin"`
	Properties []jsonProperty `json:"properties"`
	Tiles      []jsonTile     `json:"tiles"`
}

type jsonProperty struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

type jsonObject struct {
	ID       uint32         `json:"id"`
	Name     string         `json:"name"`
	Type     string         `json:"type"` // legacy class field
	Class    string         `json:"class"`
	X        float32        `json:"x"`
	Y        float32        `json:"y"`
	Width    float32        `json:"width"`
	Height   float32        `json:"height"`
	Rotation float32        `json:"rotation"`
	Visible  *bool          `json:"visible"`
	Point    bool           `json:"point"`
	Polygon  []jsonPoint    `json:"polygon"`
	Polyline []jsonPoint    `json:"polyline"`
	GID      *uint32        `json:"gid"`
	Props    []jsonProperty `json:"properties"`
}

type jsonPoint struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

type jsonObjectGroup struct {
	Objects []jsonObject `json:"objects"`
}

type jsonTile struct {
	ID          uint32          `json:"id"`
	Properties  []jsonProperty  `json:"properties"`
	ObjectGroup jsonObjectGroup `json:"objectgroup"`
}
