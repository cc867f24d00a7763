// Package docschema checks an exported config document against a JSON Schema
// file supplied by the user.
package docschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/vcstodo-go/internal/schema"
)

// ErrSchemaUnavailable is returned when the schema file cannot be used.
var ErrSchemaUnavailable = errors.New("schema unavailable")

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // field path of the offending value, e.g. "ui__color"
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Result contains validation results.
type Result struct {
	Valid  bool
	Errors []error
}

// Validate checks doc against the JSON Schema at schemaPath.
// An unusable schema file is an error; a document that does not conform is
// reported in the Result.
func Validate(doc map[string]any, schemaPath string) (*Result, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schema path: %v", ErrSchemaUnavailable, err)
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaUnavailable, err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	compiled, err := compiler.Compile(absPath)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid schema file: %v", ErrSchemaUnavailable, err)
	}

	// The validator expects plain JSON values, so round-trip through encoding.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal document for validation: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var instance any
	if err := dec.Decode(&instance); err != nil {
		return nil, fmt.Errorf("unmarshal document for validation: %w", err)
	}

	result := &Result{Valid: true}
	if err := compiled.Validate(instance); err != nil {
		result.Valid = false
		appendSchemaErrors(result, err)
	}
	return result, nil
}

func appendSchemaErrors(result *Result, err error) {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		result.Errors = append(result.Errors, err)
		return
	}
	collectSchemaErrors(result, ve)
}

func collectSchemaErrors(result *Result, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}

	if len(err.Causes) == 0 {
		result.Errors = append(result.Errors, &ValidationError{
			Path: pointerPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}

	for _, cause := range err.Causes {
		collectSchemaErrors(result, cause)
	}
}

// pointerPath turns a JSON Pointer such as "/ui/color" or "/tags/0" into the
// field path form used by schema declarations: "ui__color", "tags[0]".
func pointerPath(ptr string) string {
	ptr = strings.TrimPrefix(strings.TrimPrefix(ptr, "#"), "/")
	if ptr == "" {
		return ""
	}

	var b strings.Builder
	for _, token := range strings.Split(ptr, "/") {
		token = strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
		if token == "" {
			continue
		}
		if idx, err := strconv.Atoi(token); err == nil {
			fmt.Fprintf(&b, "[%d]", idx)
			continue
		}
		if b.Len() > 0 {
			b.WriteString(schema.Separator)
		}
		b.WriteString(token)
	}
	return b.String()
}
