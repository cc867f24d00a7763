package store

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// PathResolver supplies the config file path when none was set explicitly.
type PathResolver interface {
	ConfigFilePath() (string, error)
}

// PathResolverFunc adapts a function to PathResolver.
type PathResolverFunc func() (string, error)

// ConfigFilePath calls f.
func (f PathResolverFunc) ConfigFilePath() (string, error) { return f() }

// Option configures a Store.
type Option func(*Store)

// WithFile sets the config file path used by Load and Save.
func WithFile(path string) Option {
	return func(s *Store) {
		s.path = path
	}
}

// WithPathResolver sets the resolver consulted when no file path is set.
func WithPathResolver(r PathResolver) Option {
	return func(s *Store) {
		s.resolver = r
	}
}

// WithFs sets the filesystem. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(s *Store) {
		if fs != nil {
			s.fs = fs
		}
	}
}

// WithLogger sets the logger. Defaults to a logger that discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSaveOnError controls whether Session saves when its function fails or
// panics. Defaults to true.
func WithSaveOnError(save bool) Option {
	return func(s *Store) {
		s.saveOnError = save
	}
}
