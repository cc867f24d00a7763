// Package settings handles the tdo tool's own settings and defaults.
//
// Settings decide where the JSON configuration document lives and how the tool
// logs. They are loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User settings file (~/.tdo/tdo.toml or OS-specific config directory)
// 3. Project settings file (tdo.toml or .tdo.toml in the working directory)
// 4. A .env file in the working directory (TDO_* keys only)
// 5. Environment variables (TDO_*)
// 6. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level settings locations:
// - ~/.tdo/tdo.toml (preferred)
// - Windows: %APPDATA%\tdo\tdo.toml
// - macOS: ~/Library/Application Support/tdo/tdo.toml
// - Linux/BSD: $XDG_CONFIG_HOME/tdo/tdo.toml or ~/.config/tdo/tdo.toml
package settings
