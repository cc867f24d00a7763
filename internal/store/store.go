package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/nibzard/vcstodo-go/internal/logging"
	"github.com/nibzard/vcstodo-go/internal/schema"
	"github.com/spf13/afero"
)

// Indent is the indentation used when writing config files.
const Indent = "    "

// Store is a JSON configuration document held in memory under a schema.
// It is not safe for concurrent use.
type Store struct {
	schema      *schema.Schema
	data        map[string]any
	path        string
	resolver    PathResolver
	fs          afero.Fs
	logger      *log.Logger
	saveOnError bool
}

// New returns an empty store. It performs no I/O.
func New(sch *schema.Schema, opts ...Option) *Store {
	s := &Store{
		schema:      sch,
		data:        make(map[string]any),
		fs:          afero.NewOsFs(),
		logger:      logging.Discard(),
		saveOnError: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// NewFromData returns a store seeded from data through LoadData. The config
// file is not read, even when data is empty.
func NewFromData(sch *schema.Schema, data map[string]any, opts ...Option) (*Store, error) {
	s := New(sch, opts...)
	if data == nil {
		data = map[string]any{}
	}
	if err := s.LoadData(data); err != nil {
		return nil, err
	}
	return s, nil
}

// Open returns a store loaded from its config file.
func Open(sch *schema.Schema, opts ...Option) (*Store, error) {
	s := New(sch, opts...)
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Schema returns the store's schema.
func (s *Store) Schema() *schema.Schema { return s.schema }

// ConfigFilePath returns the explicit file path, else asks the resolver.
func (s *Store) ConfigFilePath() (string, error) {
	if s.path != "" {
		return s.path, nil
	}
	if s.resolver != nil {
		path, err := s.resolver.ConfigFilePath()
		if err != nil {
			return "", fmt.Errorf("resolve config file path: %w", err)
		}
		if path == "" {
			return "", ErrMissingFilePath
		}
		return path, nil
	}
	return "", ErrMissingFilePath
}

// Load reads the config file and merges it into the store.
func (s *Store) Load() error {
	path, err := s.ConfigFilePath()
	if err != nil {
		return err
	}

	raw, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &MalformedError{Path: path, Err: err}
	}
	if doc == nil {
		// A literal null decodes without error.
		return &MalformedError{Path: path, Err: errors.New("document is null")}
	}

	if err := s.merge(doc); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	s.logger.Debug("loaded config", "path", path, "keys", len(doc))
	return nil
}

// LoadData converts data as if it had been read from the file and merges it
// into the store. data itself is not modified.
func (s *Store) LoadData(data map[string]any) error {
	if data == nil {
		return s.Load()
	}
	return s.merge(cloneMap(data))
}

// merge runs the load pass over doc and copies its top-level keys in.
func (s *Store) merge(doc map[string]any) error {
	visit, err := s.schema.Walk(doc, schema.Load)
	if err != nil {
		return err
	}
	s.logVisit("load", visit)
	for k, v := range doc {
		s.data[k] = v
	}
	return nil
}

// Save converts the store for saving and writes it to the config file.
func (s *Store) Save() error {
	path, err := s.ConfigFilePath()
	if err != nil {
		return err
	}
	return s.SaveTo(path)
}

// SaveTo converts the store for saving and writes it to path.
//
// The save pass runs in place: after SaveTo returns, values of converted fields
// are in their saved form until the next Load.
func (s *Store) SaveTo(path string) error {
	if path == "" {
		return s.Save()
	}

	visit, err := s.schema.Walk(s.data, schema.Save)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	s.logVisit("save", visit)

	out, err := json.MarshalIndent(s.data, "", Indent)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	out = append(out, '\n')

	if dir := filepath.Dir(path); dir != "." {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := afero.WriteFile(s.fs, path, out, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	s.logger.Debug("saved config", "path", path, "keys", len(s.data))
	return nil
}

// Export returns a deep copy of the store in saved form. The store is not
// modified.
func (s *Store) Export() (map[string]any, error) {
	doc := cloneMap(s.data)
	if err := s.schema.Apply(doc, schema.Save); err != nil {
		return nil, err
	}
	return doc, nil
}

// Get returns the stored value for key, falling back to its default.
// When neither exists the error matches both ErrUnknownAttribute and
// schema.ErrUnknownField.
func (s *Store) Get(key string) (any, error) {
	if v, ok := s.data[key]; ok {
		return v, nil
	}
	v, err := s.Default(key)
	if err != nil {
		if errors.Is(err, schema.ErrUnknownField) {
			return nil, fmt.Errorf("%w %q: %w", ErrUnknownAttribute, key, err)
		}
		return nil, err
	}
	return v, nil
}

// Default resolves the schema default for name against this store.
func (s *Store) Default(name string) (any, error) {
	return s.schema.Default(s, name)
}

// Lookup returns the stored value without default fallback.
func (s *Store) Lookup(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// Has reports whether key has a stored value.
func (s *Store) Has(key string) bool {
	_, ok := s.data[key]
	return ok
}

// Set stores value under key.
func (s *Store) Set(key string, value any) {
	s.data[key] = value
}

// Update stores every entry of values.
func (s *Store) Update(values map[string]any) {
	for k, v := range values {
		s.data[k] = v
	}
}

// Delete removes key. Reads fall back to the default afterwards.
func (s *Store) Delete(key string) {
	delete(s.data, key)
}

// Keys returns the stored top-level keys, sorted.
func (s *Store) Keys() []string {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of stored top-level keys.
func (s *Store) Len() int { return len(s.data) }

func (s *Store) logVisit(pass string, visit schema.Visit) {
	for _, path := range visit.Skipped {
		s.logger.Debug("skipped field", "pass", pass, "path", path)
	}
	s.logger.Debug("converted fields", "pass", pass, "count", len(visit.Converted))
}

// Value returns the value for key asserted to T. A stored nil (a JSON null)
// counts as unset: the default is returned, or the zero T when there is none.
func Value[T any](s *Store, key string) (T, error) {
	var zero T
	v, err := s.Get(key)
	if err != nil {
		return zero, err
	}
	if v == nil {
		if !s.schema.HasDefault(key) {
			return zero, nil
		}
		if v, err = s.Default(key); err != nil {
			return zero, err
		}
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &TypeError{Key: key, Want: fmt.Sprintf("%T", zero), Got: v}
	}
	return typed, nil
}


func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case schema.Set:
		out := make(schema.Set, len(t))
		for item := range t {
			out[item] = struct{}{}
		}
		return out
	default:
		return v
	}
}
