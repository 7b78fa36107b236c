package tiled

import (
	"bytes"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"

	"github.com/Faultbox/tilemap/pkg/spatial"
)

// decodeLayerData turns a tile layer's "data" field into raw gids. The field
// is either a plain JSON array or a base64 string of little-endian uint32s,
// optionally compressed with gzip, zlib or zstd.
func decodeLayerData(layer *jsonLayer) ([]spatial.GID, error) {
	if len(layer.Data) == 0 {
		return nil, nil
	}

	trimmed := bytes.TrimSpace(layer.Data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var gids []spatial.GID
		if err := json.Unmarshal(trimmed, &gids); err != nil {
			return nil, fmt.Errorf("layer %q: parsing tile data array: %w", layer.Name, err)
		}
		return gids, nil
	}

	var encoded string
	if err := json.Unmarshal(trimmed, &encoded); err != nil {
		return nil, fmt.Errorf("layer %q: tile data is neither array nor string: %w", layer.Name, err)
	}
	if layer.Encoding != "base64" {
		return nil, &InvalidMapError{
			Reason: fmt.Sprintf("layer %q: string tile data requires base64 encoding, got %q", layer.Name, layer.Encoding),
		}
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("layer %q: decoding base64 tile data: %w", layer.Name, err)
	}

	raw, err = decompress(raw, layer.Compression)
	if err != nil {
		return nil, fmt.Errorf("layer %q: %w", layer.Name, err)
	}

	if len(raw)%4 != 0 {
		return nil, &InvalidMapError{
			Reason: fmt.Sprintf("layer %q: tile data length %d is not a multiple of 4", layer.Name, len(raw)),
		}
	}
	gids := make([]spatial.GID, len(raw)/4)
	for i := range gids {
		gids[i] = spatial.GID(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return gids, nil
}

func decompress(data []byte, compression string) ([]byte, error) {
	switch compression {
	case "":
		return data, nil
	case "gzip":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening gzip tile data: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading gzip tile data: %w", err)
		}
		return out, nil
	case "zlib":
		r, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening zlib tile data: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading zlib tile data: %w", err)
		}
		return out, nil
	case "zstd":
		r, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("opening zstd tile data: %w", err)
		}
		defer r.Close()
		out, err := io.ReadAll(r.IOReadCloser())
		if err != nil {
			return nil, fmt.Errorf("reading zstd tile data: %w", err)
		}
		return out, nil
	default:
		return nil, &InvalidMapError{
			Reason: fmt.Sprintf("unsupported tile data compression %q", compression),
		}
	}
}
