package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nibzard/vcstodo-go/internal/appconfig"
	"github.com/nibzard/vcstodo-go/internal/docschema"
	"github.com/nibzard/vcstodo-go/internal/schema"
	"github.com/nibzard/vcstodo-go/internal/settings"
	"github.com/nibzard/vcstodo-go/internal/store"
)

func newPathCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := a.config().ConfigFilePath()
			if err != nil {
				return err
			}
			a.logger.Debug("resolved config path", "source", a.settings.ConfigFileSource())
			fmt.Fprintln(a.out, path)
			return nil
		},
	}
}

func newGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Print a config value, falling back to its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadConfig()
			if err != nil {
				return err
			}
			v, err := displayValue(c, args[0])
			if err != nil {
				return err
			}
			return printValue(a, v)
		},
	}
}

func newSetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a config value",
		Long: `Set a config value. VALUE is parsed as JSON when possible and stored
as a plain string otherwise, so 'set default_priority 2' stores a number and
'set editor nvim' stores a string.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value, err := loadedValue(key, parseValue(args[1]))
			if err != nil {
				return err
			}

			c := a.config()
			err = c.Session(func(s *store.Store) error {
				assign(s, key, value)
				return nil
			})
			if appconfig.IsNotFound(err) {
				a.logger.Info("creating config file")
				doc := make(map[string]any)
				setIn(doc, steps(key), value)
				err = store.UpdateFile(appconfig.Schema, doc,
					appconfig.Options(a.settings.Settings, a.fs, a.logger)...)
			}
			return err
		},
	}
}

func newUnsetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Remove a config value so its default applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.config().Session(func(s *store.Store) error {
				if !remove(s, args[0]) {
					a.logger.Warn("key not set", "key", args[0])
				}
				return nil
			})
		},
	}
}

func newShowCommand(a *app) *cobra.Command {
	var format string
	var withDefaults bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the whole config document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadConfig()
			if err != nil {
				return err
			}
			doc, err := c.Export()
			if err != nil {
				return err
			}
			if withDefaults {
				if err := addDefaults(c, doc); err != nil {
					return err
				}
			}

			switch format {
			case "json":
				out, err := json.MarshalIndent(doc, "", store.Indent)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, string(out))
			case "yaml":
				enc := yaml.NewEncoder(a.out)
				enc.SetIndent(2)
				if err := enc.Encode(doc); err != nil {
					return err
				}
				return enc.Close()
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", format)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json|yaml)")
	cmd.Flags().BoolVar(&withDefaults, "defaults", false, "Include defaults for unset keys")
	return cmd
}

func newInitCommand(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [KEY=VALUE...]",
		Short: "Write a new config file",
		Long: `Write a new config file holding only the given values. An existing file
is left alone unless --force is given, in which case it is replaced.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := make(map[string]any, len(args))
			for _, arg := range args {
				key, raw, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid assignment %q (want KEY=VALUE)", arg)
				}
				value, err := loadedValue(key, parseValue(raw))
				if err != nil {
					return err
				}
				setIn(overrides, steps(key), value)
			}

			path, err := a.config().ConfigFilePath()
			if err != nil {
				return err
			}
			if exists, _ := afero.Exists(a.fs, path); exists && !force {
				return fmt.Errorf("config file %s already exists (use --force to replace it)", path)
			}

			opts := append(appconfig.Options(a.settings.Settings, a.fs, a.logger), store.WithFile(path))
			if err := store.UpdateFile(appconfig.Schema, overrides, opts...); err != nil {
				return err
			}
			fmt.Fprintln(a.out, path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing config file")
	return cmd
}

func newValidateCommand(a *app) *cobra.Command {
	var schemaPath string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the config file against a JSON Schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := a.config()
			if err := c.Load(); err != nil {
				return err
			}
			doc, err := c.Export()
			if err != nil {
				return err
			}

			result, err := docschema.Validate(doc, schemaPath)
			if err != nil {
				return err
			}
			if !result.Valid {
				for _, e := range result.Errors {
					fmt.Fprintln(a.out, e)
				}
				return fmt.Errorf("config does not match %s: %d error(s)", schemaPath, len(result.Errors))
			}
			fmt.Fprintln(a.out, "ok")
			return nil
		},
	}
	cmd.Flags().StringVar(&schemaPath, "schema", "", "Path to a JSON Schema file")
	_ = cmd.MarkFlagRequired("schema")
	return cmd
}

func newExampleSettingsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example-settings",
		Short: "Print an example tdo.toml settings file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(a.out, settings.ExampleSettings())
			return nil
		},
	}
}

// parseValue decodes raw as JSON, falling back to the raw string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

// steps splits the document path of key. Keys outside the schema are
// stored at the top level under their own name.
func steps(key string) []string {
	if f, ok := appconfig.Schema.Field(key); ok {
		return strings.Split(f.Path(), schema.Separator)
	}
	return []string{key}
}

// loadedValue converts a raw JSON value for key into its in-memory form.
func loadedValue(key string, raw any) (any, error) {
	f, ok := appconfig.Schema.Field(key)
	if !ok {
		return raw, nil
	}
	v, err := f.ConvertLoaded(raw)
	if err != nil {
		return nil, fmt.Errorf("value for %s: %w", key, err)
	}
	return v, nil
}

// savedValue converts an in-memory value for key into its saved form.
func savedValue(key string, v any) (any, error) {
	f, ok := appconfig.Schema.Field(key)
	if !ok {
		return v, nil
	}
	return f.ConvertToSave(v)
}

// lookup returns the stored value at the document path of key.
func lookup(s *store.Store, key string) (any, bool) {
	path := steps(key)
	v, ok := s.Lookup(path[0])
	if !ok || len(path) == 1 {
		return v, ok
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, false
	}
	return lookupIn(m, path[1:])
}

// assign stores value at the document path of key, creating parents.
func assign(s *store.Store, key string, value any) {
	path := steps(key)
	if len(path) == 1 {
		s.Set(key, value)
		return
	}
	v, _ := s.Lookup(path[0])
	m, ok := v.(map[string]any)
	if !ok {
		m = make(map[string]any)
	}
	setIn(m, path[1:], value)
	s.Set(path[0], m)
}

// remove deletes the value at the document path of key. It reports whether
// anything was stored there.
func remove(s *store.Store, key string) bool {
	path := steps(key)
	if len(path) == 1 {
		had := s.Has(key)
		s.Delete(key)
		return had
	}
	v, _ := s.Lookup(path[0])
	m, ok := v.(map[string]any)
	if !ok {
		return false
	}
	parent, ok := lookupIn(m, path[1:len(path)-1])
	pm, isMap := parent.(map[string]any)
	if !ok || !isMap {
		return false
	}
	last := path[len(path)-1]
	_, had := pm[last]
	delete(pm, last)
	return had
}

func lookupIn(m map[string]any, path []string) (any, bool) {
	var cur any = m
	for _, step := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[step]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func setIn(m map[string]any, path []string, value any) {
	for _, step := range path[:len(path)-1] {
		next, ok := m[step].(map[string]any)
		if !ok {
			next = make(map[string]any)
			m[step] = next
		}
		m = next
	}
	m[path[len(path)-1]] = value
}

// displayValue returns the saved form of key, or of its default.
func displayValue(c *appconfig.Config, key string) (any, error) {
	v, ok := lookup(c.Store, key)
	if !ok {
		var err error
		v, err = c.Get(key)
		if err != nil {
			if errors.Is(err, store.ErrUnknownAttribute) {
				return nil, fmt.Errorf("%s is not set and has no default", key)
			}
			return nil, err
		}
	}
	return savedValue(key, v)
}

// addDefaults fills doc with the saved form of every default whose path is
// unset.
func addDefaults(c *appconfig.Config, doc map[string]any) error {
	names := c.Schema().DefaultNames()
	sort.Strings(names)
	for _, name := range names {
		path := steps(name)
		if _, ok := lookupIn(doc, path); ok {
			continue
		}
		v, err := displayValue(c, name)
		if err != nil {
			return err
		}
		setIn(doc, path, v)
	}
	return nil
}

func printValue(a *app, v any) error {
	if s, ok := v.(string); ok {
		fmt.Fprintln(a.out, s)
		return nil
	}
	out, err := json.MarshalIndent(v, "", store.Indent)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(out))
	return nil
}
