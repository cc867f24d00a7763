package settings

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Load loads settings for the current working directory from every source in
// priority order. fs holds already-parsed flags and may be nil.
func Load(fs *pflag.FlagSet) (*Settings, error) {
	ws, err := LoadWithSources(fs)
	if err != nil {
		return nil, err
	}
	return ws.Settings, nil
}

// LoadWithSources loads settings and tracks the source of each key.
func LoadWithSources(fs *pflag.FlagSet) (*WithSources, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return LoadDir(wd, fs)
}

// LoadDir loads settings resolved against workDir instead of the working directory.
func LoadDir(workDir string, fs *pflag.FlagSet) (*WithSources, error) {
	s := &Settings{}
	ws := &WithSources{Settings: s, Sources: make(map[string]Source)}

	// 1. Defaults
	setDefaults(s, workDir)
	for _, key := range keys() {
		ws.Sources[key] = SourceDefault
	}

	// 2. User settings file
	if path := findUserSettingsFile(); path != "" {
		if err := loadSettingsFile(ws, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user settings file %s: %w", path, err)
		}
	}

	// 3. Project settings file (overrides user settings)
	if path := findProjectSettingsFile(workDir); path != "" {
		if err := loadSettingsFile(ws, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project settings file %s: %w", path, err)
		}
	}

	// 4. .env file, then 5. process environment
	dotenv, err := readDotEnv(workDir)
	if err != nil {
		return nil, err
	}
	loadFromEnv(s, mapLookup(dotenv), ws.Sources, SourceDotEnv)
	loadFromEnv(s, osLookup, ws.Sources, SourceEnv)

	// 6. CLI flags
	if err := loadFromFlags(s, fs, ws.Sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	finalize(s)
	return ws, nil
}

// loadSettingsFile decodes a TOML settings file over ws.Settings. Only keys
// present in the file override earlier values.
func loadSettingsFile(ws *WithSources, path string, source Source) error {
	var file Settings
	md, err := toml.DecodeFile(path, &file)
	if err != nil {
		return err
	}
	ws.Files = append(ws.Files, path)

	s := ws.Settings
	if md.IsDefined("config_file") {
		s.ConfigFile = file.ConfigFile
		ws.Sources["config_file"] = source
	}
	if md.IsDefined("search_path") {
		s.SearchPath = file.SearchPath
		ws.Sources["search_path"] = source
	}
	if md.IsDefined("log_level") {
		s.LogLevel = file.LogLevel
		ws.Sources["log_level"] = source
	}
	if md.IsDefined("log_format") {
		s.LogFormat = file.LogFormat
		ws.Sources["log_format"] = source
	}

	for _, key := range md.Undecoded() {
		ws.Unknown = append(ws.Unknown, fmt.Sprintf("%s: %s", path, key.String()))
	}
	sort.Strings(ws.Unknown)
	return nil
}

// finalize expands and absolutizes paths against the work directory.
func finalize(s *Settings) {
	s.ConfigFile = resolvePath(s.ConfigFile, s.WorkDir)
	dirs := make([]string, 0, len(s.SearchPath))
	for _, dir := range s.SearchPath {
		if dir = resolvePath(dir, s.WorkDir); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	s.SearchPath = dirs
}

// ConfigFileSource describes where the JSON config path comes from, for
// display in `tdo-config path`.
func (ws *WithSources) ConfigFileSource() Source {
	return ws.Sources["config_file"]
}
