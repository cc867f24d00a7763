package settings

import (
	"os"
	"path/filepath"
	"runtime"
)

// findProjectSettingsFile looks for a settings file in workDir.
func findProjectSettingsFile(workDir string) string {
	for _, name := range []string{SettingsFileName, "." + SettingsFileName} {
		path := filepath.Join(workDir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findUserSettingsFile looks for a user-level settings file.
// Checks ~/.tdo/tdo.toml first, then the OS-specific config directory.
func findUserSettingsFile() string {
	for _, dir := range userDirs() {
		path := filepath.Join(dir, SettingsFileName)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// userDirs returns the user-level tdo directories in lookup order.
func userDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, StateDir))
	}
	if cfgDir := osUserConfigDir(); cfgDir != "" {
		dirs = append(dirs, filepath.Join(cfgDir, "tdo"))
	}
	return dirs
}

// osUserConfigDir returns the OS-specific user config directory.
// Returns empty string if the directory cannot be determined.
func osUserConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			return appdata
		}
	case "darwin":
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, "Library", "Application Support")
		}
	case "linux", "openbsd", "freebsd", "netbsd":
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return xdg
		}
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, ".config")
		}
	}
	return ""
}

// setDefaults applies default values to s.
func setDefaults(s *Settings, workDir string) {
	s.ConfigFile = ""
	s.SearchPath = append([]string{filepath.Join(workDir, StateDir)}, userDirs()...)
	s.LogLevel = DefaultLogLevel
	s.LogFormat = DefaultLogFormat
	s.WorkDir = workDir
}
