// Package driver decides which optional drivers a configuration record
// activates, validates their sections and emits the component definitions
// and parameters each active driver contributes.
package driver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/container"
)

// Driver is the interface every driver activation implements.
type Driver interface {
	Name() string
	// Active reports whether the record carries the driver's section.
	Active(rec *config.Record) bool
	// Activate validates the section and returns what the driver contributes.
	Activate(rec *config.Record) (*Activation, error)
}

// Activation is one driver's contribution to the registry.
type Activation struct {
	Definitions []container.Definition
	Parameters  map[string]any
}

var (
	registryMu sync.RWMutex
	registry   = map[string]func() Driver{}
)

// Register adds a driver constructor to the global catalog.
// Called from init() in each driver file.
func Register(name string, constructor func() Driver) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("driver: duplicate driver registration: %s", name))
	}
	registry[name] = constructor
}

// Lookup returns a new instance of the named driver.
func Lookup(name string) (Driver, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("driver: unknown driver: %s", name)
	}
	return ctor(), nil
}

// All returns sorted names of all registered drivers.
func All() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// definition builds a driver component carrying the driver tag.
func definition(name, class string, params map[string]any) container.Definition {
	return container.Definition{
		ID:         DriverPrefix + name,
		Class:      class,
		Parameters: params,
		Tags: []container.Tag{{
			Name:       TagDriver,
			Attributes: map[string]string{"alias": name},
		}},
	}
}
