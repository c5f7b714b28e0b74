package container

import (
	"fmt"
	"sort"
	"sync"
)

// Registry maps component ids to definitions and holds process-wide
// parameters. It is built during one assembly run and frozen at the end;
// every mutator fails with ErrFrozen afterwards. Definitions go in and
// come out as deep copies.
type Registry struct {
	mu     sync.RWMutex
	defs   map[string]*Definition
	order  []string
	params map[string]any
	frozen bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		defs:   make(map[string]*Definition),
		params: make(map[string]any),
	}
}

// Member is one tagged definition found by Tagged.
type Member struct {
	ID  string
	Tag Tag
}

// Register adds a definition.
func (r *Registry) Register(def Definition) error {
	return r.Merge([]Definition{def})
}

// Merge adds every definition or none of them.
func (r *Registry) Merge(defs []Definition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}

	seen := make(map[string]bool, len(defs))
	for _, def := range defs {
		if err := validate(def); err != nil {
			return err
		}
		if _, exists := r.defs[def.ID]; exists || seen[def.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateComponent, def.ID)
		}
		seen[def.ID] = true
	}

	for _, def := range defs {
		c := def.Clone()
		r.defs[def.ID] = &c
		r.order = append(r.order, def.ID)
	}
	return nil
}

func validate(def Definition) error {
	if def.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidDefinition)
	}
	for _, t := range def.Tags {
		if t.Name == "" {
			return fmt.Errorf("%w: %s: empty tag name", ErrInvalidDefinition, def.ID)
		}
	}
	return nil
}

// SetParameter stores a process-wide parameter, replacing any previous value.
func (r *Registry) SetParameter(name string, value any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}
	r.params[name] = CloneValue(value)
	return nil
}

// Parameter returns a copy of the named parameter.
func (r *Registry) Parameter(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.params[name]
	if !ok {
		return nil, false
	}
	return CloneValue(v), true
}

// Parameters returns a copy of every parameter.
func (r *Registry) Parameters() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.params))
	for k, v := range r.params {
		out[k] = CloneValue(v)
	}
	return out
}

// ParameterNames returns the parameter names, sorted.
func (r *Registry) ParameterNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.params))
	for name := range r.params {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a component is registered under id.
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[id]
	return ok
}

// Definition returns a copy of the definition registered under id.
func (r *Registry) Definition(id string) (Definition, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[id]
	if !ok {
		return Definition{}, false
	}
	return def.Clone(), true
}

// Definitions returns copies of every definition in registration order.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id].Clone())
	}
	return out
}

// Tagged returns the definitions carrying the named tag in registration
// order. A definition listing the tag more than once appears once, with
// its first membership.
func (r *Registry) Tagged(name string) []Member {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Member
	for _, id := range r.order {
		if t, ok := r.defs[id].Tag(name); ok {
			out = append(out, Member{ID: id, Tag: t.clone()})
		}
	}
	return out
}

// AddCalls appends registration calls to the target's definition, in order.
// Target is filled in on every call. Either all calls are recorded or none.
func (r *Registry) AddCalls(target string, calls ...RegistrationCall) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.frozen {
		return ErrFrozen
	}
	def, ok := r.defs[target]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownComponent, target)
	}
	for _, c := range calls {
		if c.Operation == "" {
			return fmt.Errorf("%w: %s: empty operation", ErrInvalidDefinition, target)
		}
	}
	for _, c := range calls {
		c.Target = target
		c.Argument = CloneValue(c.Argument)
		def.Calls = append(def.Calls, c)
	}
	return nil
}

// Freeze makes the registry read-only. Freezing twice is a no-op.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Frozen reports whether Freeze has been called.
func (r *Registry) Frozen() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.frozen
}

// Len returns the number of registered components.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
