package output

import (
	"github.com/boga881/drupalextension/src/assembly"
	"github.com/boga881/drupalextension/src/container"
	"github.com/boga881/drupalextension/src/schema"
)

// Snapshot is the serializable form of an assembly result.
type Snapshot struct {
	RunID      string         `json:"run_id" yaml:"run_id"`
	Drivers    []string       `json:"drivers" yaml:"drivers"`
	Warnings   []string       `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Components []Component    `json:"components" yaml:"components"`
	Parameters map[string]any `json:"parameters" yaml:"parameters"`
}

// Component is the serializable form of a definition.
// References render as "@id" and parameter placeholders as "%name%".
type Component struct {
	ID         string         `json:"id" yaml:"id"`
	Class      string         `json:"class,omitempty" yaml:"class,omitempty"`
	Parameters map[string]any `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Tags       []TagEntry     `json:"tags,omitempty" yaml:"tags,omitempty"`
	Calls      []CallEntry    `json:"calls,omitempty" yaml:"calls,omitempty"`
}

type TagEntry struct {
	Name       string            `json:"name" yaml:"name"`
	Priority   int               `json:"priority,omitempty" yaml:"priority,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

type CallEntry struct {
	Operation string `json:"operation" yaml:"operation"`
	Argument  any    `json:"argument" yaml:"argument"`
}

// NewSnapshot captures res.
func NewSnapshot(res *assembly.Result) Snapshot {
	s := Snapshot{
		RunID:      res.RunID,
		Drivers:    append([]string{}, res.Drivers...),
		Warnings:   res.Warnings,
		Parameters: make(map[string]any),
	}
	for name, v := range res.Registry.Parameters() {
		s.Parameters[name] = placeholders(v)
	}
	for _, def := range res.Registry.Definitions() {
		c := Component{ID: def.ID, Class: def.Class}
		if len(def.Parameters) > 0 {
			c.Parameters = make(map[string]any, len(def.Parameters))
			for k, v := range def.Parameters {
				c.Parameters[k] = placeholders(v)
			}
		}
		for _, t := range def.Tags {
			c.Tags = append(c.Tags, TagEntry{Name: t.Name, Priority: t.Priority, Attributes: t.Attributes})
		}
		for _, call := range def.Calls {
			c.Calls = append(c.Calls, CallEntry{Operation: call.Operation, Argument: placeholders(call.Argument)})
		}
		s.Components = append(s.Components, c)
	}
	return s
}

// placeholders replaces references and parameter placeholders with their
// string forms, recursing into containers.
func placeholders(v any) any {
	switch t := v.(type) {
	case container.Reference:
		return t.String()
	case container.Parameter:
		return t.String()
	case *schema.Map:
		out := schema.NewMap()
		for _, k := range t.Keys() {
			item, _ := t.Get(k)
			out.Set(k, placeholders(item))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = placeholders(item)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = placeholders(item)
		}
		return out
	default:
		return v
	}
}
