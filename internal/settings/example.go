package settings

// ExampleSettings returns an example settings file showing all available options.
func ExampleSettings() string {
	return `# tdo settings file
# Values can be overridden by .env, environment variables (TDO_*) or CLI flags

# Explicit path to the JSON config document.
# When unset, config.json is looked up in search_path.
# config_file = "~/.tdo/config.json"

# Directories searched for config.json, first match wins.
# The first directory is used when creating a new file.
# search_path = [".tdo", "~/.tdo"]

# Log level: debug, info, warn, error
log_level = "warn"

# Log format: text, json, logfmt
log_format = "text"
`
}
