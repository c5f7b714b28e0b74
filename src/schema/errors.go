package schema

import (
	"errors"
	"fmt"
)

// ErrSchema matches every normalization failure.
var ErrSchema = errors.New("schema error")

// Error reports a value that does not fit the schema.
type Error struct {
	Path     string
	Expected Kind
	Got      string
	Msg      string
}

func (e *Error) Error() string {
	path := e.Path
	if path == "" {
		path = "<root>"
	}
	if e.Msg != "" {
		return fmt.Sprintf("schema: %s: %s", path, e.Msg)
	}
	return fmt.Sprintf("schema: %s: expected %s, got %s", path, e.Expected, e.Got)
}

// Is makes errors.Is(err, ErrSchema) hold for every *Error.
func (e *Error) Is(target error) bool {
	return target == ErrSchema
}

func shapeError(path string, expected Kind, v any) *Error {
	got := "unsupported value"
	if k, ok := ShapeOf(v); ok {
		got = k.String()
	}
	return &Error{Path: path, Expected: expected, Got: got}
}
