package driver

import (
	"errors"
	"fmt"
)

var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidDriverConfig  = errors.New("invalid driver configuration")
)

// ConfigError reports a driver section that is present but unusable.
type ConfigError struct {
	Driver string
	Field  string
	Msg    string
	Err    error
}

func (e *ConfigError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("%s driver: %s: %v", e.Driver, e.Field, e.Err)
	}
	return fmt.Sprintf("%s driver: %v", e.Driver, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
