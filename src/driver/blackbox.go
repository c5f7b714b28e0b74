package driver

import (
	"github.com/boga881/drupalextension/src/config"
	"github.com/boga881/drupalextension/src/container"
)

func init() {
	Register("blackbox", func() Driver { return &blackbox{} })
}

// blackbox drives nothing; it only exercises the site through a browser.
type blackbox struct{}

func (b *blackbox) Name() string { return "blackbox" }

func (b *blackbox) Active(rec *config.Record) bool { return rec.Blackbox != nil }

func (b *blackbox) Activate(rec *config.Record) (*Activation, error) {
	return &Activation{
		Definitions: []container.Definition{
			definition(b.Name(), `Drupal\Driver\BlackboxDriver`, nil),
		},
	}, nil
}
