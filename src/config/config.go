// Package config defines the extension's configuration schema, the typed
// record produced by normalizing a document against it, and loaders that
// read documents from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/boga881/drupalextension/src/schema"
)

// ExtensionKey is the key the extension's section lives under in a
// profile's extensions mapping.
const ExtensionKey = `Drupal\DrupalExtension`

// DefaultProfile is the profile every other profile inherits from.
const DefaultProfile = "default"

// Load reads a configuration file and returns the raw extension document
// for profile. YAML files keep their key order; TOML mappings are taken in
// sorted key order.
//
// Files shaped like a behat configuration (profile → extensions → section)
// are unwrapped; a named profile is deep-merged over the default profile.
// Any other file is taken to be the extension section itself.
func Load(path, profile string) (*schema.Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(data, formatOf(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return Section(doc, profile)
}

// Format is a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// Parse decodes a document into an ordered tree.
func Parse(data []byte, format Format) (*schema.Map, error) {
	switch format {
	case FormatTOML:
		var out map[string]any
		if err := toml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
		m, _ := schema.AsMap(tomlScalars(out))
		// Clone converts nested plain maps into ordered ones.
		return m.Clone(), nil
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(data, &node); err != nil {
			return nil, err
		}
		if node.Kind == 0 {
			return schema.NewMap(), nil
		}
		v, err := fromNode(&node)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return schema.NewMap(), nil
		}
		m, ok := v.(*schema.Map)
		if !ok {
			return nil, errors.New("document root must be a mapping")
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// tomlScalars replaces TOML date and time values with their text form.
func tomlScalars(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, item := range t {
			t[k] = tomlScalars(item)
		}
		return t
	case []any:
		for i, item := range t {
			t[i] = tomlScalars(item)
		}
		return t
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return fmt.Sprint(t)
	default:
		return v
	}
}

// fromNode converts a YAML node into raw document values, keeping mapping order.
func fromNode(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromNode(n.Content[0])
	case yaml.AliasNode:
		return fromNode(n.Alias)
	case yaml.MappingNode:
		m := schema.NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			var key string
			if err := n.Content[i].Decode(&key); err != nil {
				return nil, fmt.Errorf("line %d: mapping key: %w", n.Content[i].Line, err)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, v)
		}
		return m, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	default:
		// Dates stay text; the schema only knows plain scalars.
		if n.ShortTag() == "!!timestamp" {
			return n.Value, nil
		}
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	}
}

// Section extracts the extension section for profile from a parsed document.
func Section(doc *schema.Map, profile string) (*schema.Map, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	if !isProfileDocument(doc) {
		return doc, nil
	}

	section, err := extensionOf(doc, DefaultProfile)
	if err != nil {
		return nil, err
	}
	if profile == DefaultProfile {
		return section, nil
	}
	if !doc.Has(profile) {
		return nil, fmt.Errorf("profile %q not found", profile)
	}
	over, err := extensionOf(doc, profile)
	if err != nil {
		return nil, err
	}
	return schema.Merge(section, over), nil
}

func isProfileDocument(doc *schema.Map) bool {
	for _, key := range doc.Keys() {
		v, _ := doc.Get(key)
		p, ok := v.(*schema.Map)
		if ok && p.Has("extensions") {
			return true
		}
	}
	return false
}

func extensionOf(doc *schema.Map, profile string) (*schema.Map, error) {
	p, _ := doc.Get(profile)
	if p == nil {
		return schema.NewMap(), nil
	}
	pm, ok := p.(*schema.Map)
	if !ok {
		return nil, fmt.Errorf("profile %q must be a mapping", profile)
	}
	ext, _ := pm.Get("extensions")
	if ext == nil {
		return schema.NewMap(), nil
	}
	em, ok := ext.(*schema.Map)
	if !ok {
		return nil, fmt.Errorf("profile %q: extensions must be a mapping", profile)
	}
	section, _ := em.Get(ExtensionKey)
	if section == nil {
		// A null section enables the extension with defaults.
		return schema.NewMap(), nil
	}
	sm, ok := section.(*schema.Map)
	if !ok {
		return nil, fmt.Errorf("profile %q: %s must be a mapping", profile, ExtensionKey)
	}
	return sm, nil
}
