package settings

import (
	"github.com/spf13/pflag"
)

// Flag names.
const (
	FlagConfig     = "config"
	FlagSearchPath = "search-path"
	FlagLogLevel   = "log-level"
	FlagLogFormat  = "log-format"
)

// RegisterFlags defines the settings flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(FlagConfig, "c", "", "Path to the JSON config file")
	fs.StringSlice(FlagSearchPath, nil, "Directories searched for "+DefaultConfigName)
	fs.String(FlagLogLevel, DefaultLogLevel, "Log level (debug|info|warn|error)")
	fs.String(FlagLogFormat, DefaultLogFormat, "Log format (text|json|logfmt)")
}

// loadFromFlags overrides s with every flag that was explicitly set.
func loadFromFlags(s *Settings, fs *pflag.FlagSet, sources map[string]Source) error {
	if fs == nil {
		return nil
	}

	if changed(fs, FlagConfig) {
		v, err := fs.GetString(FlagConfig)
		if err != nil {
			return err
		}
		s.ConfigFile = v
		sources["config_file"] = SourceFlag
	}
	if changed(fs, FlagSearchPath) {
		v, err := fs.GetStringSlice(FlagSearchPath)
		if err != nil {
			return err
		}
		s.SearchPath = v
		sources["search_path"] = SourceFlag
	}
	if changed(fs, FlagLogLevel) {
		v, err := fs.GetString(FlagLogLevel)
		if err != nil {
			return err
		}
		s.LogLevel = v
		sources["log_level"] = SourceFlag
	}
	if changed(fs, FlagLogFormat) {
		v, err := fs.GetString(FlagLogFormat)
		if err != nil {
			return err
		}
		s.LogFormat = v
		sources["log_format"] = SourceFlag
	}
	return nil
}

func changed(fs *pflag.FlagSet, name string) bool {
	f := fs.Lookup(name)
	return f != nil && f.Changed
}
