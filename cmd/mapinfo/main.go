// mapinfo is a CLI utility for inspecting chunked tile map documents.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/Faultbox/tilemap/pkg/spatial"
	"github.com/Faultbox/tilemap/pkg/tiled"
	"github.com/Faultbox/tilemap/pkg/tilemap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "validate", "check":
		cmdValidate(args)
	case "chunks":
		cmdChunks(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mapinfo - tile map inspection utility

Usage:
  mapinfo <command> [options]

Commands:
  info <map.tmj>              Show map, tileset and layer information
  validate <map.tmj>          Validate the document against the schema
  chunks <map.tmj> [-layer N] Show per-chunk tile and object counts

Examples:
  mapinfo info maps/town.tmj
  mapinfo validate maps/town.tmj
  mapinfo chunks maps/town.tmj -layer 2`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mapinfo info <map.tmj>")
		os.Exit(1)
	}

	m, err := tilemap.Load(args[0], nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var tiles, objects int
	for _, c := range m.Index.Buckets {
		for _, b := range c.Layers {
			tiles += len(b.Tiles)
			objects += len(b.Objects)
		}
	}

	fmt.Printf("Map:       %s\n", args[0])
	fmt.Printf("Tile size: %dx%d px\n", m.TileW, m.TileH)
	fmt.Printf("Chunks:    %d (%d tiles, %d object records)\n",
		len(m.Index.Buckets), tiles, objects)
	fmt.Println()

	fmt.Println("Tilesets:")
	for _, ts := range m.Tilesets {
		fmt.Printf("  gid %5d..%-5d %4d tiles  %s\n",
			ts.FirstGID, ts.FirstGID+ts.TileCount-1, ts.TileCount, ts.Image)
	}
	fmt.Println()

	fmt.Println("Layers:")
	for _, l := range m.Layers {
		visible := " "
		if !l.Visible {
			visible = "H"
		}
		fmt.Printf("  %3d %s %-12s %s\n", l.ID, visible, kindName(l.Kind), l.Name)
	}
}

func kindName(k tiled.LayerKind) string {
	switch k {
	case tiled.LayerTiles:
		return "tiles"
	case tiled.LayerObjects:
		return "objects"
	default:
		return "unsupported"
	}
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mapinfo validate <map.tmj>")
		os.Exit(1)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := tiled.ValidateDocument(data); err != nil {
		fmt.Fprintf(os.Stderr, "Schema: %v\n", err)
		os.Exit(1)
	}

	// Schema-valid documents can still carry bad gids or tileset refs.
	if _, _, err := tiled.DecodeFileStrict(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "Decode: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s: OK\n", args[0])
}

func cmdChunks(args []string) {
	fs := flag.NewFlagSet("chunks", flag.ExitOnError)
	layer := fs.Int("layer", -1, "Only show this layer (-1 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mapinfo chunks <map.tmj> [-layer N]")
		os.Exit(1)
	}

	m, err := tilemap.Load(fs.Arg(0), nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	coords := make([]spatial.Coord, 0, len(m.Index.Buckets))
	for c := range m.Index.Buckets {
		coords = append(coords, c)
	}
	sort.Slice(coords, func(i, j int) bool {
		if coords[i].Y != coords[j].Y {
			return coords[i].Y < coords[j].Y
		}
		return coords[i].X < coords[j].X
	})

	for _, c := range coords {
		chunk := m.Index.Buckets[c]

		ids := make([]spatial.LayerID, 0, len(chunk.Layers))
		for id := range chunk.Layers {
			if *layer >= 0 && int(id) != *layer {
				continue
			}
			ids = append(ids, id)
		}
		if len(ids) == 0 {
			continue
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

		fmt.Printf("chunk (%d, %d)\n", c.X, c.Y)
		for _, id := range ids {
			b := chunk.Layers[id]
			fmt.Printf("  layer %3d: %4d tiles, %3d objects\n", id, len(b.Tiles), len(b.Objects))
		}
	}
}
