package tiled

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed tiled.schema.json
var schemaJSON []byte

var compileSchema = sync.OnceValue(func() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("tiled.schema.json", bytes.NewReader(schemaJSON)); err != nil {
		panic(fmt.Sprintf("tiled: adding embedded schema: %v", err))
	}
	return c.MustCompile("tiled.schema.json")
})

// ValidateDocument checks a raw map document against the embedded map
// schema. It rejects structurally broken documents before the decoder runs,
// with a path-precise validation error.
func ValidateDocument(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing map document: %w", err)
	}
	if err := compileSchema().Validate(doc); err != nil {
		return fmt.Errorf("map document failed schema validation: %w", err)
	}
	return nil
}
