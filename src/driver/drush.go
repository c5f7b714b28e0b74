package driver

import (
	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/container"
)

const (
	ParamDrushAlias  = "drupal.driver.drush.alias"
	ParamDrushBinary = "drupal.driver.drush.binary"
	ParamDrushRoot   = "drupal.driver.drush.root"
)

func init() {
	Register("drush", func() Driver { return &drush{} })
}

// drush shells out to the drush binary against an alias or a site root.
type drush struct{}

func (d *drush) Name() string { return "drush" }

func (d *drush) Active(rec *config.Record) bool { return rec.Drush != nil }

func (d *drush) Activate(rec *config.Record) (*Activation, error) {
	sec := rec.Drush
	if sec.Alias == nil && sec.Root == nil {
		return nil, &ConfigError{
			Driver: d.Name(),
			Msg:    "drush `alias` or `root` path is required for the drush driver",
			Err:    ErrInvalidDriverConfig,
		}
	}

	binary := sec.Binary
	if binary == "" {
		binary = "drush"
	}
	return &Activation{
		Definitions: []container.Definition{
			definition(d.Name(), `Drupal\Driver\DrushDriver`, map[string]any{
				"alias":  container.Param(ParamDrushAlias),
				"binary": container.Param(ParamDrushBinary),
				"root":   container.Param(ParamDrushRoot),
			}),
		},
		Parameters: map[string]any{
			ParamDrushAlias:  orFalse(sec.Alias),
			ParamDrushBinary: binary,
			ParamDrushRoot:   orFalse(sec.Root),
		},
	}, nil
}

// orFalse returns the string, or false when it was not given.
func orFalse(s *string) any {
	if s == nil {
		return false
	}
	return *s
}
