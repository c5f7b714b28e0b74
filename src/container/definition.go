// Package container holds the component registry that assembly builds:
// component definitions keyed by id, their capability tags and recorded
// registration calls, plus process-wide parameters.
package container

import "sort"

// Definition describes one component.
type Definition struct {
	ID         string
	Class      string
	Parameters map[string]any
	Tags       []Tag
	Calls      []RegistrationCall
}

// Tag marks a definition as a member of a capability.
// Higher priority members are bound first.
type Tag struct {
	Name       string
	Priority   int
	Attributes map[string]string
}

// RegistrationCall is an instruction, executed by the consumer at
// instantiation time, to call Operation on Target with Argument.
type RegistrationCall struct {
	Target    string
	Operation string
	Argument  any
}

// Reference points at another component by id.
type Reference struct {
	ID string
}

func (r Reference) String() string { return "@" + r.ID }

// Parameter points at a process-wide parameter by name.
type Parameter struct {
	Name string
}

// Param returns a placeholder for the named parameter.
func Param(name string) Parameter {
	return Parameter{Name: name}
}

func (p Parameter) String() string { return "%" + p.Name + "%" }

// HasTag reports whether the definition carries the named tag.
func (d Definition) HasTag(name string) bool {
	_, ok := d.Tag(name)
	return ok
}

// Tag returns the first membership of the named tag.
func (d Definition) Tag(name string) (Tag, bool) {
	for _, t := range d.Tags {
		if t.Name == name {
			return t, true
		}
	}
	return Tag{}, false
}

// ParameterNames returns the definition's parameter names, sorted.
func (d Definition) ParameterNames() []string {
	names := make([]string, 0, len(d.Parameters))
	for name := range d.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the definition.
func (d Definition) Clone() Definition {
	out := Definition{ID: d.ID, Class: d.Class}
	if d.Parameters != nil {
		out.Parameters = make(map[string]any, len(d.Parameters))
		for k, v := range d.Parameters {
			out.Parameters[k] = CloneValue(v)
		}
	}
	if d.Tags != nil {
		out.Tags = make([]Tag, len(d.Tags))
		for i, t := range d.Tags {
			out.Tags[i] = t.clone()
		}
	}
	if d.Calls != nil {
		out.Calls = make([]RegistrationCall, len(d.Calls))
		for i, c := range d.Calls {
			c.Argument = CloneValue(c.Argument)
			out.Calls[i] = c
		}
	}
	return out
}

func (t Tag) clone() Tag {
	if t.Attributes == nil {
		return t
	}
	attrs := make(map[string]string, len(t.Attributes))
	for k, v := range t.Attributes {
		attrs[k] = v
	}
	t.Attributes = attrs
	return t
}

// Cloner is implemented by values that know how to copy themselves deeply.
type Cloner interface {
	CloneValue() any
}

// CloneValue deep-copies parameter values: plain maps, slices and Cloners.
// Anything else is returned as is.
func CloneValue(v any) any {
	switch t := v.(type) {
	case Cloner:
		return t.CloneValue()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, item := range t {
			out[k] = CloneValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(t))
		for k, item := range t {
			out[k] = item
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = CloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	default:
		return v
	}
}
