package store

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingFilePath is returned when a file operation has no path to use.
	ErrMissingFilePath = errors.New("configuration error: you must set configFilePath or implement getConfigFilePath")

	// ErrMalformed is returned when the config file is not a JSON object.
	ErrMalformed = errors.New("malformed config")

	// ErrUnknownAttribute is returned by Get when a key has neither a value
	// nor a default.
	ErrUnknownAttribute = errors.New("unknown attribute")
)

// MalformedError names the config file that failed to parse.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("unable to load config file %s, check it's a proper json file: %s", e.Path, e.Err)
}

// Unwrap returns both ErrMalformed and the parse error.
func (e *MalformedError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

// TypeError is returned by Value when a stored value has another type.
type TypeError struct {
	Key  string
	Want string
	Got  any
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("config key %q: want %s, got %T", e.Key, e.Want, e.Got)
}
