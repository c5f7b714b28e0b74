package driver

import (
	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/container"
)

const ParamDrupalRoot = "drupal.driver.drupal.drupal_root"

func init() {
	Register("drupal", func() Driver { return &drupal{} })
}

// drupal bootstraps the site in-process and needs its document root.
type drupal struct{}

func (d *drupal) Name() string { return "drupal" }

func (d *drupal) Active(rec *config.Record) bool { return rec.Drupal != nil }

func (d *drupal) Activate(rec *config.Record) (*Activation, error) {
	if rec.Drupal.DrupalRoot == "" {
		return nil, &ConfigError{
			Driver: d.Name(),
			Field:  "drupal_root",
			Err:    ErrMissingRequiredField,
		}
	}
	return &Activation{
		Definitions: []container.Definition{
			definition(d.Name(), `Drupal\Driver\DrupalDriver`, map[string]any{
				"drupal_root": container.Param(ParamDrupalRoot),
				"uri":         "default",
			}),
		},
		Parameters: map[string]any{
			ParamDrupalRoot: rec.Drupal.DrupalRoot,
		},
	}, nil
}
