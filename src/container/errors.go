package container

import "errors"

var (
	ErrFrozen             = errors.New("registry is frozen")
	ErrDuplicateComponent = errors.New("duplicate component")
	ErrUnknownComponent   = errors.New("unknown component")
	ErrInvalidDefinition  = errors.New("invalid definition")
)
