package tiled

import (
	"errors"
	"fmt"
)

// Format errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported map format")
	ErrNoLayers          = errors.New("map has no layers")
)

// InvalidMapError reports a map document that violates the format contract.
type InvalidMapError struct {
	Reason string
}

func (e *InvalidMapError) Error() string {
	return fmt.Sprintf("invalid map: %s", e.Reason)
}

// UnsupportedPropertyTypeError reports an explicit property type the decoder
// does not understand.
type UnsupportedPropertyTypeError struct {
	Name string
	Kind string
}

func (e *UnsupportedPropertyTypeError) Error() string {
	return fmt.Sprintf("unsupported property type %q for property %q", e.Kind, e.Name)
}

// InvalidTileGIDError reports a tile layer entry referencing an identifier
// outside the known tileset range.
type InvalidTileGIDError struct {
	Layer  string
	GID    uint32
	MaxGID uint32
}

func (e *InvalidTileGIDError) Error() string {
	return fmt.Sprintf("invalid tile gid %d in layer %q; max known gid is %d", e.GID, e.Layer, e.MaxGID)
}

// InvalidObjectGIDError reports an object tile reference outside the known
// tileset range.
type InvalidObjectGIDError struct {
	Layer    string
	ObjectID uint32
	GID      uint32
	MaxGID   uint32
}

func (e *InvalidObjectGIDError) Error() string {
	return fmt.Sprintf("invalid object tile gid %d in layer %q object id %d; max known gid is %d",
		e.GID, e.Layer, e.ObjectID, e.MaxGID)
}
