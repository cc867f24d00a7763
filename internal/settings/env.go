package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvConfig     = "TDO_CONFIG"
	EnvSearchPath = "TDO_SEARCH_PATH"
	EnvLogLevel   = "TDO_LOG_LEVEL"
	EnvLogFormat  = "TDO_LOG_FORMAT"
)

// readDotEnv reads workDir/.env without touching the process environment.
// A missing file yields an empty map.
func readDotEnv(workDir string) (map[string]string, error) {
	path := filepath.Join(workDir, ".env")
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return vars, nil
}

// loadFromEnv overrides s from lookup and records source for every key set.
func loadFromEnv(s *Settings, lookup func(string) (string, bool), sources map[string]Source, source Source) {
	if v, ok := lookup(EnvConfig); ok && v != "" {
		s.ConfigFile = v
		sources["config_file"] = source
	}
	if v, ok := lookup(EnvSearchPath); ok && v != "" {
		s.SearchPath = splitList(v)
		sources["search_path"] = source
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		s.LogLevel = v
		sources["log_level"] = source
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		s.LogFormat = v
		sources["log_format"] = source
	}
}

func mapLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

var osLookup = os.LookupEnv

// splitList splits a comma-separated list, dropping blank entries.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
