package driver

import (
	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/container"
)

// Component ids emitted on every run.
const (
	ComponentDrupal           = "drupal.drupal"
	ComponentSelectorsHandler = "drupal.selectors_handler"
	ComponentEnvReader        = "drupal.context.environment.reader"
	ComponentInitializer      = "drupal.context.initializer"
	ComponentEventDispatcher  = "drupal.event_dispatcher"

	// DriverPrefix prefixes every driver component id.
	DriverPrefix = "drupal.driver."
)

// Parameter names emitted on every run.
const (
	ParamDefaultDriver = "drupal.drupal.default_driver"
	ParamParameters    = "drupal.parameters"
	ParamRegionMap     = "drupal.region_map"
)

// Capability tags.
const (
	TagDriver          = "drupal.driver"
	TagEventSubscriber = "drupal.event_subscriber"
	TagContextReader   = "context.reader"
)

func baseDefinitions() []container.Definition {
	return []container.Definition{
		{
			ID:    ComponentDrupal,
			Class: `Drupal\Drupal`,
			Parameters: map[string]any{
				"default_driver": container.Param(ParamDefaultDriver),
			},
		},
		{
			ID:    ComponentSelectorsHandler,
			Class: `Drupal\DrupalExtension\Selector\RegionSelector`,
			Parameters: map[string]any{
				"region_map": container.Param(ParamRegionMap),
			},
		},
		{
			ID:    ComponentEnvReader,
			Class: `Drupal\DrupalExtension\Context\Environment\Reader\Reader`,
			Parameters: map[string]any{
				"drupal":     container.Reference{ID: ComponentDrupal},
				"parameters": container.Param(ParamParameters),
			},
		},
		{
			ID:    ComponentInitializer,
			Class: `Drupal\DrupalExtension\Context\Initializer\DrupalAwareInitializer`,
			Parameters: map[string]any{
				"drupal":     container.Reference{ID: ComponentDrupal},
				"parameters": container.Param(ParamParameters),
				"dispatcher": container.Reference{ID: ComponentEventDispatcher},
			},
			Tags: []container.Tag{{Name: "context.initializer"}},
		},
		{
			ID:    ComponentEventDispatcher,
			Class: `Drupal\DrupalExtension\Event\Dispatcher`,
		},
	}
}

func baseParameters(rec *config.Record) map[string]any {
	tree := rec.Tree()
	regions, _ := tree.Get(config.KeyRegionMap)
	return map[string]any{
		ParamDefaultDriver: rec.DefaultDriver,
		ParamParameters:    tree.Plain(),
		ParamRegionMap:     regions,
	}
}
