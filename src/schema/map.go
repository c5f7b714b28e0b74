package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Map is an insertion-ordered mapping with string keys.
// Loaders produce it so that caller key order survives normalization.
type Map struct {
	keys   []string
	values map[string]any
}

// NewMap returns an empty Map.
func NewMap() *Map {
	return &Map{values: make(map[string]any)}
}

// Set stores v under key. A new key is appended; an existing key keeps its position.
func (m *Map) Set(key string, v any) {
	if m.values == nil {
		m.values = make(map[string]any)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (any, bool) {
	if m == nil {
		return nil, false
	}
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present, even with a nil value.
func (m *Map) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of entries.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Clone returns a deep copy.
func (m *Map) Clone() *Map {
	if m == nil {
		return nil
	}
	out := NewMap()
	for _, k := range m.keys {
		out.Set(k, cloneValue(m.values[k]))
	}
	return out
}

// CloneValue lets value containers that do not know this package copy a Map deeply.
func (m *Map) CloneValue() any {
	return m.Clone()
}

// Shallow returns the entries as a plain map without converting nested values.
func (m *Map) Shallow() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out[k] = m.values[k]
	}
	return out
}

// Plain converts the Map and every nested Map into map[string]any.
// Key order is lost.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, m.Len())
	if m == nil {
		return out
	}
	for _, k := range m.keys {
		out[k] = plainValue(m.values[k])
	}
	return out
}

// MarshalYAML emits the entries as a YAML mapping in insertion order.
func (m *Map) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.Keys() {
		var val yaml.Node
		if err := val.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k},
			&val,
		)
	}
	return node, nil
}

// MarshalJSON emits the entries as a JSON object in insertion order.
func (m *Map) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// AsMap views v as an ordered mapping. Plain Go maps are taken in sorted key order.
func AsMap(v any) (*Map, bool) {
	switch t := v.(type) {
	case *Map:
		if t == nil {
			return NewMap(), true
		}
		return t, true
	case map[string]any:
		out := NewMap()
		for _, k := range sortedKeys(t) {
			out.Set(k, t[k])
		}
		return out, true
	case map[string]string:
		out := NewMap()
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			out.Set(k, t[k])
		}
		return out, true
	default:
		return nil, false
	}
}

// AsSequence views v as an ordered sequence.
func AsSequence(v any) ([]any, bool) {
	switch t := v.(type) {
	case []any:
		return t, true
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// ShapeOf classifies a raw value. Nil is reported as a scalar.
func ShapeOf(v any) (Kind, bool) {
	if _, ok := AsMap(v); ok {
		return KindMapping, true
	}
	if _, ok := AsSequence(v); ok {
		return KindSequence, true
	}
	switch v.(type) {
	case nil, string, bool,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64:
		return KindScalar, true
	}
	return 0, false
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func cloneValue(v any) any {
	if m, ok := AsMap(v); ok {
		return m.Clone()
	}
	if s, ok := AsSequence(v); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

func plainValue(v any) any {
	if m, ok := AsMap(v); ok {
		return m.Plain()
	}
	if s, ok := AsSequence(v); ok {
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = plainValue(item)
		}
		return out
	}
	return v
}
