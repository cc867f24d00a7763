package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrNotImplemented is returned by Base conversions. Field kinds must override
	// both ConvertLoaded and ConvertToSave.
	ErrNotImplemented = errors.New("not implemented")

	// ErrUnknownField is returned when no default is registered for a name.
	ErrUnknownField = errors.New("unknown field")

	// ErrNotContainer is returned when a path walk reaches a value that is not a
	// JSON object before its last step.
	ErrNotContainer = errors.New("not a container")

	// ErrInvalidValue is returned by field kinds given a raw value they cannot convert.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidSchema is returned by Builder.Build for malformed declarations.
	ErrInvalidSchema = errors.New("invalid schema")
)

// PathError reports a structural problem found while walking a field path.
type PathError struct {
	Path string // full field path
	Step string // step at which the walk failed
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("field path %q: step %q: %s", e.Path, e.Step, e.Err)
}

// Unwrap returns the underlying error.
func (e *PathError) Unwrap() error {
	return e.Err
}

// ConversionError wraps an error returned by a field conversion.
type ConversionError struct {
	Field     string
	Direction Direction
	Err       error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s field %q: %s", e.Direction, e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConversionError) Unwrap() error {
	return e.Err
}
