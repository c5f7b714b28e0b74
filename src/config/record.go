package config

import (
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/boga881/drupalextension/src/schema"
)

// Record is the normalized extension configuration.
// It is built once per assembly run and must not be modified afterwards.
type Record struct {
	DefaultDriver string            `mapstructure:"default_driver"`
	APIDriver     string            `mapstructure:"api_driver"`
	DrushDriver   string            `mapstructure:"drush_driver"`
	BasicAuth     *BasicAuth        `mapstructure:"basic_auth"`
	RegionMap     []Region          `mapstructure:"region_map"`
	Text          Text              `mapstructure:"text"`
	Selectors     map[string]string `mapstructure:"selectors"`

	Blackbox *BlackboxDriver `mapstructure:"blackbox"`
	Drupal   *DrupalDriver   `mapstructure:"drupal"`
	Drush    *DrushDriver    `mapstructure:"drush"`

	Subcontexts Subcontexts `mapstructure:"subcontexts"`

	// Extra holds unrecognized top-level keys, verbatim.
	Extra map[string]any `mapstructure:"-"`

	tree *schema.Map
}

// BasicAuth holds HTTP basic auth credentials for the site under test.
type BasicAuth struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// Region maps a region name to its CSS selector.
type Region struct {
	Name     string
	Selector string
}

// Text holds the UI strings the steps match against.
type Text struct {
	LogIn         string `mapstructure:"log_in"`
	LogOut        string `mapstructure:"log_out"`
	PasswordField string `mapstructure:"password_field"`
	UsernameField string `mapstructure:"username_field"`
}

// BlackboxDriver marks the blackbox driver as requested. It has no fields.
type BlackboxDriver struct{}

// DrupalDriver configures the driver that bootstraps Drupal in-process.
type DrupalDriver struct {
	DrupalRoot string `mapstructure:"drupal_root"`
}

// DrushDriver configures the driver that shells out to drush.
// Alias and Root are nil when not given.
type DrushDriver struct {
	Alias  *string `mapstructure:"alias"`
	Binary string  `mapstructure:"binary"`
	Root   *string `mapstructure:"root"`
}

// Subcontexts lists extra step definition locations.
type Subcontexts struct {
	Paths    []string `mapstructure:"paths"`
	Autoload bool     `mapstructure:"autoload"`
}

// Normalize validates raw against the extension schema and returns the typed record.
func Normalize(raw any) (*Record, error) {
	tree, err := Schema().Normalize(raw)
	if err != nil {
		return nil, err
	}

	rec := &Record{tree: tree}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       orderedMapHook,
		WeaklyTypedInput: true,
		// Keys are case-sensitive; "Drupal" is an unknown key, not the drupal section.
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
		Result:    rec,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(tree); err != nil {
		return nil, &schema.Error{Msg: err.Error()}
	}

	root := Schema().Root()
	rec.Extra = make(map[string]any)
	for _, key := range tree.Keys() {
		if _, known := root.Child(key); known {
			continue
		}
		v, _ := tree.Get(key)
		if m, ok := v.(*schema.Map); ok {
			rec.Extra[key] = m.Plain()
			continue
		}
		rec.Extra[key] = v
	}
	return rec, nil
}

// Raw returns the normalized tree in raw document form. Normalizing it again
// yields an equal record.
func (r *Record) Raw() *schema.Map {
	return r.tree.Clone()
}

// Tree returns the normalized tree. Callers must not modify it.
func (r *Record) Tree() *schema.Map {
	return r.tree
}

// Region returns the selector for a named region.
func (r *Record) Region(name string) (string, bool) {
	for _, reg := range r.RegionMap {
		if reg.Name == name {
			return reg.Selector, true
		}
	}
	return "", false
}

var (
	mapType    = reflect.TypeOf(&schema.Map{})
	regionType = reflect.TypeOf([]Region{})
)

// orderedMapHook turns ordered maps into the shapes mapstructure understands.
// The region map becomes a []Region so its order survives.
func orderedMapHook(from, to reflect.Type, data any) (any, error) {
	if from != mapType {
		return data, nil
	}
	m := data.(*schema.Map)
	if to == regionType {
		regions := make([]Region, 0, m.Len())
		for _, name := range m.Keys() {
			v, _ := m.Get(name)
			sel := ""
			if v != nil {
				sel = fmt.Sprint(v)
			}
			regions = append(regions, Region{Name: name, Selector: sel})
		}
		return regions, nil
	}
	return m.Shallow(), nil
}
