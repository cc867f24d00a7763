package settings

// Source represents where a settings value came from.
type Source string

const (
	SourceDefault  Source = "default"
	SourceUserFile Source = "user file"
	SourceProjFile Source = "project file"
	SourceDotEnv   Source = "dotenv"
	SourceEnv      Source = "environment"
	SourceFlag     Source = "flag"
)

// Default values.
const (
	DefaultConfigName = "config.json"
	DefaultLogLevel   = "warn"
	DefaultLogFormat  = "text"
	SettingsFileName  = "tdo.toml"
	StateDir          = ".tdo"
)

// Settings holds the full settings for the tdo tool.
type Settings struct {
	// ConfigFile is an explicit path to the JSON configuration document.
	// When empty the document is searched for in SearchPath.
	ConfigFile string `toml:"config_file"`

	// SearchPath lists directories searched for DefaultConfigName, in order.
	SearchPath []string `toml:"search_path"`

	// Logging
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// WorkDir is the directory settings were resolved against.
	WorkDir string `toml:"-"`
}

// WithSources holds settings along with the source of each key.
type WithSources struct {
	Settings *Settings
	Sources  map[string]Source
	// Files lists the settings files that were read, in order.
	Files []string
	// Unknown lists keys found in settings files that tdo does not know.
	Unknown []string
}

// keys returns the settings keys for source tracking.
func keys() []string {
	return []string{
		"config_file",
		"search_path",
		"log_level",
		"log_format",
	}
}
