package schema

import (
	"errors"
	"fmt"
)

// Getter is the read side of a store, handed to default producers.
type Getter interface {
	Get(key string) (any, error)
}

// DefaultFunc computes a default at read time. It must be side-effect free.
type DefaultFunc func(g Getter, name string) (any, error)

// Entry is one registered field with its resolved path.
type Entry struct {
	Name  string
	Path  string
	Field Field
}

// Schema is an immutable, ordered field list plus its default mapping.
type Schema struct {
	name     string
	entries  []Entry
	defaults map[string]any
}

// Builder collects field declarations for a Schema.
type Builder struct {
	name     string
	entries  []Entry
	seen     map[string]bool
	defaults map[string]any
	errs     []error
}

// New starts a schema declaration. The name only appears in errors and logs.
func New(name string) *Builder {
	return &Builder{
		name:     name,
		seen:     make(map[string]bool),
		defaults: make(map[string]any),
	}
}

// Field registers f under name. The field learns its name here; its path
// defaults to that name unless At was given.
func (b *Builder) Field(name string, f Field) *Builder {
	switch {
	case name == "":
		b.errs = append(b.errs, fmt.Errorf("%w: empty field name", ErrInvalidSchema))
		return b
	case f == nil:
		b.errs = append(b.errs, fmt.Errorf("%w: field %q is nil", ErrInvalidSchema, name))
		return b
	case b.seen[name]:
		b.errs = append(b.errs, fmt.Errorf("%w: duplicate field %q", ErrInvalidSchema, name))
		return b
	}

	base := f.base()
	if base.name != "" && base.name != name {
		b.errs = append(b.errs, fmt.Errorf("%w: field %q already registered as %q", ErrInvalidSchema, name, base.name))
		return b
	}
	base.name = name

	b.seen[name] = true
	b.entries = append(b.entries, Entry{Name: name, Path: f.Path(), Field: f})
	return b
}

// Default registers a static default value for name. value is returned as-is
// even when it is a function; only a DefaultFunc, or a func with exactly that
// signature, is called. Use DefaultFunc to register producers.
func (b *Builder) Default(name string, value any) *Builder {
	b.defaults[name] = value
	return b
}

// DefaultFunc registers a default producer for name.
func (b *Builder) DefaultFunc(name string, fn DefaultFunc) *Builder {
	if fn == nil {
		b.errs = append(b.errs, fmt.Errorf("%w: nil default producer for %q", ErrInvalidSchema, name))
		return b
	}
	b.defaults[name] = fn
	return b
}

// Build returns the schema, or every declaration error joined.
func (b *Builder) Build() (*Schema, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("schema %s: %w", b.name, errors.Join(b.errs...))
	}

	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)
	defaults := make(map[string]any, len(b.defaults))
	for k, v := range b.defaults {
		defaults[k] = v
	}

	return &Schema{name: b.name, entries: entries, defaults: defaults}, nil
}

// MustBuild is like Build but panics on error. Intended for package-level shapes.
func (b *Builder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// Name returns the schema name.
func (s *Schema) Name() string { return s.name }

// Entries returns the fields in declaration order.
func (s *Schema) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Paths returns the field paths in declaration order.
func (s *Schema) Paths() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Path
	}
	return out
}

// Field returns the field registered under name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, e := range s.entries {
		if e.Name == name {
			return e.Field, true
		}
	}
	return nil, false
}

// HasDefault reports whether a default is registered for name.
func (s *Schema) HasDefault(name string) bool {
	_, ok := s.defaults[name]
	return ok
}

// DefaultNames returns every name with a registered default.
func (s *Schema) DefaultNames() []string {
	out := make([]string, 0, len(s.defaults))
	for name := range s.defaults {
		out = append(out, name)
	}
	return out
}

// Default resolves the default for name against g. Producers are called with
// (g, name) and their result returned; static values are returned as-is.
func (s *Schema) Default(g Getter, name string) (any, error) {
	def, ok := s.defaults[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if fn, ok := def.(DefaultFunc); ok {
		return fn(g, name)
	}
	if fn, ok := def.(func(Getter, string) (any, error)); ok {
		return fn(g, name)
	}
	return def, nil
}
