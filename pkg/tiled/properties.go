package tiled

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Properties holds custom key/value properties. Stored values are one of
// bool, int64, float32 or string.
type Properties map[string]any

// Bool returns the named boolean property.
func (p Properties) Bool(name string) (bool, bool) {
	v, ok := p[name].(bool)
	return v, ok
}

// Int returns the named integer property if it fits in 32 bits.
func (p Properties) Int(name string) (int, bool) {
	v, ok := p[name].(int64)
	if !ok || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, false
	}
	return int(v), true
}

// Int64 returns the named integer property at full width.
func (p Properties) Int64(name string) (int64, bool) {
	v, ok := p[name].(int64)
	return v, ok
}

// Float returns the named float property.
func (p Properties) Float(name string) (float32, bool) {
	v, ok := p[name].(float32)
	return v, ok
}

// String returns the named string property.
func (p Properties) String(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// parseProperty converts one raw JSON property into its stored value.
// A nil value with nil error means the property is dropped (type mismatch or
// JSON null), matching the reference decoder.
func parseProperty(prop jsonProperty) (any, error) {
	switch prop.Type {
	case "bool":
		var v bool
		if json.Unmarshal(prop.Value, &v) == nil {
			return v, nil
		}
		return nil, nil
	case "int", "object":
		var v int64
		if json.Unmarshal(prop.Value, &v) == nil {
			return v, nil
		}
		return nil, nil
	case "float":
		var v float64
		if json.Unmarshal(prop.Value, &v) == nil {
			return float32(v), nil
		}
		return nil, nil
	case "string", "file", "color", "class":
		var v string
		if json.Unmarshal(prop.Value, &v) == nil {
			return v, nil
		}
		return nil, nil
	case "":
		return inferProperty(prop.Value), nil
	default:
		return nil, &UnsupportedPropertyTypeError{Name: prop.Name, Kind: prop.Type}
	}
}

// inferProperty guesses the value type when no explicit type tag is given.
func inferProperty(raw json.RawMessage) any {
	var v any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if dec.Decode(&v) != nil {
		return nil
	}
	switch tv := v.(type) {
	case bool:
		return tv
	case json.Number:
		if i, err := strconv.ParseInt(tv.String(), 10, 64); err == nil {
			return i
		}
		if f, err := tv.Float64(); err == nil {
			return float32(f)
		}
		return nil
	case string:
		return tv
	default:
		return nil
	}
}

func parseProperties(props []jsonProperty) (Properties, error) {
	if len(props) == 0 {
		return nil, nil
	}
	out := make(Properties, len(props))
	for _, p := range props {
		v, err := parseProperty(p)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out[p.Name] = v
		}
	}
	return out, nil
}
