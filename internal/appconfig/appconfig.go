package appconfig

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/nibzard/vcstodo-go/internal/schema"
	"github.com/nibzard/vcstodo-go/internal/settings"
	"github.com/nibzard/vcstodo-go/internal/store"
	"github.com/spf13/afero"
)

// Keys of the tdo config document.
const (
	KeyTodoFile        = "todo_file"
	KeyArchiveFile     = "archive_file"
	KeyEditor          = "editor"
	KeyTags            = "tags"
	KeyLastSync        = "last_sync"
	KeySyncInterval    = "sync_interval"
	KeyColor           = "color"
	KeyDefaultPriority = "default_priority"
)

// Defaults.
const (
	DefaultTodoFile     = "todo.txt"
	DefaultEditor       = "vi"
	DefaultSyncInterval = 15 * time.Minute
	DefaultColor        = "auto"
	DefaultPriority     = 3
	archiveSuffix       = ".archive"
)

// Schema is the shape of the tdo config document.
var Schema = schema.New("tdo").
	Field(KeyTodoFile, schema.Identity()).
	Field(KeyArchiveFile, schema.Identity()).
	Field(KeyEditor, schema.Identity()).
	Field(KeyTags, schema.StringSet()).
	Field(KeyLastSync, schema.Time(time.RFC3339)).
	Field(KeySyncInterval, schema.Duration(schema.At("sync__interval"))).
	Field(KeyColor, schema.Identity(schema.At("ui__color"))).
	Field(KeyDefaultPriority, schema.Int()).
	Default(KeyTodoFile, DefaultTodoFile).
	DefaultFunc(KeyArchiveFile, archiveDefault).
	Default(KeyEditor, DefaultEditor).
	DefaultFunc(KeyTags, func(schema.Getter, string) (any, error) { return schema.NewSet(), nil }).
	Default(KeySyncInterval, DefaultSyncInterval).
	Default(KeyColor, DefaultColor).
	Default(KeyDefaultPriority, DefaultPriority).
	MustBuild()

func archiveDefault(g schema.Getter, _ string) (any, error) {
	todo, err := g.Get(KeyTodoFile)
	if err != nil {
		return nil, err
	}
	name, ok := todo.(string)
	if !ok {
		return nil, fmt.Errorf("%s: want string, got %T", KeyTodoFile, todo)
	}
	return name + archiveSuffix, nil
}

// Config is a tdo config document with typed accessors.
type Config struct {
	*store.Store
}

// New wraps a store created with opts. Nothing is loaded.
func New(opts ...store.Option) *Config {
	return &Config{Store: store.New(Schema, opts...)}
}

// Options builds the store options described by st: an explicit config file
// when set, otherwise a search over st.SearchPath.
func Options(st *settings.Settings, fs afero.Fs, logger *log.Logger) []store.Option {
	opts := []store.Option{store.WithFs(fs), store.WithLogger(logger)}
	if st.ConfigFile != "" {
		return append(opts, store.WithFile(st.ConfigFile))
	}
	return append(opts, store.WithPathResolver(&store.SearchResolver{
		Name: settings.DefaultConfigName,
		Dirs: st.SearchPath,
		Fs:   fs,
	}))
}

// TodoFile returns the task file name.
func (c *Config) TodoFile() (string, error) {
	return store.Value[string](c.Store, KeyTodoFile)
}

// ArchiveFile returns the archive file name.
func (c *Config) ArchiveFile() (string, error) {
	return store.Value[string](c.Store, KeyArchiveFile)
}

// Editor returns the editor command.
func (c *Config) Editor() (string, error) {
	return store.Value[string](c.Store, KeyEditor)
}

// Tags returns the known tags.
func (c *Config) Tags() (schema.Set, error) {
	return store.Value[schema.Set](c.Store, KeyTags)
}

// AddTags adds tags to the stored set, creating it when absent.
func (c *Config) AddTags(tags ...string) error {
	set, err := c.Tags()
	if err != nil {
		return err
	}
	set.Add(tags...)
	c.Set(KeyTags, set)
	return nil
}

// LastSync returns the last sync time. ok is false when it was never set.
func (c *Config) LastSync() (t time.Time, ok bool, err error) {
	v, found := c.Lookup(KeyLastSync)
	if !found || v == nil {
		return time.Time{}, false, nil
	}
	t, ok = v.(time.Time)
	if !ok {
		return time.Time{}, false, &store.TypeError{Key: KeyLastSync, Want: "time.Time", Got: v}
	}
	return t, true, nil
}

// SetLastSync records a sync time.
func (c *Config) SetLastSync(t time.Time) {
	c.Set(KeyLastSync, t.UTC().Truncate(time.Second))
}

// SyncInterval returns the sync interval stored under sync.interval.
func (c *Config) SyncInterval() (time.Duration, error) {
	if d, ok := c.nested("sync", "interval"); ok {
		if interval, ok := d.(time.Duration); ok {
			return interval, nil
		}
		return 0, &store.TypeError{Key: "sync.interval", Want: "time.Duration", Got: d}
	}
	return store.Value[time.Duration](c.Store, KeySyncInterval)
}

// SetSyncInterval stores the sync interval under sync.interval.
func (c *Config) SetSyncInterval(d time.Duration) {
	c.setNested("sync", "interval", d)
}

// Color returns the color mode stored under ui.color.
func (c *Config) Color() (string, error) {
	if v, ok := c.nested("ui", "color"); ok {
		if color, ok := v.(string); ok {
			return color, nil
		}
		return "", &store.TypeError{Key: "ui.color", Want: "string", Got: v}
	}
	return store.Value[string](c.Store, KeyColor)
}

// SetColor stores the color mode under ui.color.
func (c *Config) SetColor(color string) {
	c.setNested("ui", "color", color)
}

// DefaultPriority returns the priority given to new tasks.
func (c *Config) DefaultPriority() (int, error) {
	return store.Value[int](c.Store, KeyDefaultPriority)
}

// nested reads parent.key from the stored document. A nil value is unset.
func (c *Config) nested(parent, key string) (any, bool) {
	v, ok := c.Lookup(parent)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := m[key]
	return value, ok && value != nil
}

func (c *Config) setNested(parent, key string, value any) {
	m, ok := c.Lookup(parent)
	obj, isMap := m.(map[string]any)
	if !ok || !isMap {
		obj = make(map[string]any)
	}
	obj[key] = value
	c.Set(parent, obj)
}

// IsNotFound reports whether err means the config file does not exist yet.
func IsNotFound(err error) bool {
	return errors.Is(err, afero.ErrFileNotFound)
}
