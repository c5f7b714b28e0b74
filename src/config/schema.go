package config

import (
	"sync"

	"github.com/boga881/drupalextension/src/schema"
)

// Top-level keys recognized by the extension.
const (
	KeyBasicAuth     = "basic_auth"
	KeyDefaultDriver = "default_driver"
	KeyAPIDriver     = "api_driver"
	KeyDrushDriver   = "drush_driver"
	KeyRegionMap     = "region_map"
	KeyText          = "text"
	KeySelectors     = "selectors"
	KeyBlackbox      = "blackbox"
	KeyDrupal        = "drupal"
	KeyDrush         = "drush"
	KeySubcontexts   = "subcontexts"
)

// Well-known selector roles. The selectors mapping is open; these are the
// roles the message steps look up.
const (
	SelectorMessage        = "message_selector"
	SelectorErrorMessage   = "error_message_selector"
	SelectorSuccessMessage = "success_message_selector"
	SelectorWarningMessage = "warning_message_selector"
)

var (
	schemaOnce sync.Once
	extSchema  *schema.Schema
)

// Schema returns the configuration tree of the extension.
func Schema() *schema.Schema {
	schemaOnce.Do(func() {
		extSchema = buildSchema()
	})
	return extSchema
}

func buildSchema() *schema.Schema {
	return schema.New(
		schema.Group(KeyBasicAuth,
			schema.Scalar("username"),
			schema.Scalar("password"),
		),
		schema.Scalar(KeyDefaultDriver).
			Default("blackbox").
			Info(`Use "blackbox" to test remote site. See "api_driver" for easier integration.`),
		schema.Scalar(KeyAPIDriver).
			Default("drush").
			Info(`Bootstraps drupal through "drupal" or "drush".`),
		schema.Scalar(KeyDrushDriver).
			Default("drush"),
		schema.Prototype(KeyRegionMap).
			Info("Targeting content in specific regions can be accomplished once those regions have been defined.\n" +
				`  My region: "#css-selector"` + "\n" +
				`  Content: "#main .region-content"` + "\n" +
				`  Right sidebar: "#sidebar-second"`),
		schema.Group(KeyText,
			schema.Scalar("log_in").Default("Log in"),
			schema.Scalar("log_out").Default("Log out"),
			schema.Scalar("password_field").Default("Password"),
			schema.Scalar("username_field").Default("Username"),
		).DefaultsIfNotSet().
			Info("Text strings, such as Log out or the Username field can be altered if they vary from the default values.\n" +
				`  log_out: "Sign out"` + "\n" +
				`  log_in: "Sign in"` + "\n" +
				`  password_field: "Enter your password"` + "\n" +
				`  username_field: "Nickname"`),
		schema.Prototype(KeySelectors).
			Info("CSS selectors for status messages, keyed by role:\n" +
				"  " + SelectorMessage + ", " + SelectorErrorMessage + ",\n" +
				"  " + SelectorSuccessMessage + ", " + SelectorWarningMessage),

		// Drivers.
		schema.Group(KeyBlackbox),
		schema.Group(KeyDrupal,
			schema.Scalar("drupal_root"),
		),
		schema.Group(KeyDrush,
			schema.Scalar("alias"),
			schema.Scalar("binary").Default("drush"),
			schema.Scalar("root"),
		),

		schema.Group(KeySubcontexts,
			schema.List("paths").
				Info("- /path/to/additional/subcontexts\n- /another/path"),
			schema.Scalar("autoload").Default(true),
		).DefaultsIfNotSet().
			Info("Additional step definitions can be discovered from subcontexts.\n" +
				"Modules provide them in files named foo.behat.inc; extra directories can be listed here."),
	)
}
