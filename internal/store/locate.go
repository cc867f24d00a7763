package store

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// SearchResolver looks for a config file named Name in each of Dirs, in order.
// The first existing file wins. When none exists the candidate in the first
// directory is returned, so a later Save creates it there.
type SearchResolver struct {
	Name string
	Dirs []string
	Fs   afero.Fs
}

// ConfigFilePath implements PathResolver.
func (r *SearchResolver) ConfigFilePath() (string, error) {
	candidates := r.Candidates()
	if r.Name == "" || len(candidates) == 0 {
		return "", ErrMissingFilePath
	}
	fs := r.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	for _, candidate := range candidates {
		if ok, _ := afero.Exists(fs, candidate); ok {
			return candidate, nil
		}
	}
	return candidates[0], nil
}

// Candidates returns every path the resolver would check.
func (r *SearchResolver) Candidates() []string {
	out := make([]string, 0, len(r.Dirs))
	for _, dir := range r.Dirs {
		if dir == "" {
			continue
		}
		out = append(out, filepath.Join(dir, r.Name))
	}
	return out
}

func (r *SearchResolver) String() string {
	return fmt.Sprintf("%s in %v", r.Name, r.Dirs)
}
