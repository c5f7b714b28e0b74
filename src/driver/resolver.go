package driver

import (
	"fmt"
	"sort"

	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/container"
)

// Resolver turns a configuration record into the components and parameters
// to merge into a registry.
type Resolver struct {
	drivers []string
}

// NewResolver returns a resolver over the named drivers, or over the whole
// catalog when no names are given. Drivers are activated in sorted order.
func NewResolver(names ...string) *Resolver {
	if len(names) == 0 {
		names = All()
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return &Resolver{drivers: sorted}
}

// Resolution is what a record contributes to a registry.
type Resolution struct {
	// Drivers lists the active drivers in activation order.
	Drivers     []string
	Definitions []container.Definition
	Parameters  map[string]any
	Warnings    []string
}

// Resolve validates the active driver sections of rec. It does not modify rec.
func (r *Resolver) Resolve(rec *config.Record) (*Resolution, error) {
	res := &Resolution{
		Definitions: baseDefinitions(),
		Parameters:  baseParameters(rec),
	}

	active := make(map[string]bool)
	for _, name := range r.drivers {
		d, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if !d.Active(rec) {
			continue
		}
		act, err := d.Activate(rec)
		if err != nil {
			return nil, err
		}
		active[name] = true
		res.Drivers = append(res.Drivers, name)
		res.Definitions = append(res.Definitions, act.Definitions...)
		for k, v := range act.Parameters {
			res.Parameters[k] = v
		}
	}

	for _, sel := range []struct{ key, name string }{
		{config.KeyDefaultDriver, rec.DefaultDriver},
		{config.KeyAPIDriver, rec.APIDriver},
	} {
		if sel.name == "" || active[sel.name] {
			continue
		}
		if _, err := Lookup(sel.name); err != nil {
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s %q is not a known driver", sel.key, sel.name))
			continue
		}
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("%s %q has no %q section; the driver is not active", sel.key, sel.name, sel.name))
	}
	return res, nil
}

// Apply merges the resolution into reg. Definitions are merged all at once;
// parameters are set in sorted name order.
func (res *Resolution) Apply(reg *container.Registry) error {
	if err := reg.Merge(res.Definitions); err != nil {
		return err
	}
	names := make([]string, 0, len(res.Parameters))
	for name := range res.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := reg.SetParameter(name, res.Parameters[name]); err != nil {
			return err
		}
	}
	return nil
}
