package store

import (
	"os"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchResolverFirstExistingWins(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/home/user/.tdo/config.json", `{}`)

	r := &SearchResolver{
		Name: "config.json",
		Dirs: []string{"/project/.tdo", "/home/user/.tdo"},
		Fs:   fs,
	}
	path, err := r.ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.tdo/config.json", path)

	writeFile(t, fs, "/project/.tdo/config.json", `{}`)
	path, err = r.ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/project/.tdo/config.json", path)
}

// statErrFs fails Stat for one path with a permission error.
type statErrFs struct {
	afero.Fs
	deny string
}

func (f statErrFs) Stat(name string) (os.FileInfo, error) {
	if name == f.deny {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrPermission}
	}
	return f.Fs.Stat(name)
}

func TestSearchResolverSkipsUnreadableCandidate(t *testing.T) {
	mem := afero.NewMemMapFs()
	writeFile(t, mem, "/project/.tdo/config.json", `{}`)
	writeFile(t, mem, "/home/user/.tdo/config.json", `{}`)

	r := &SearchResolver{
		Name: "config.json",
		Dirs: []string{"/project/.tdo", "/home/user/.tdo"},
		Fs:   statErrFs{Fs: mem, deny: "/project/.tdo/config.json"},
	}
	path, err := r.ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/home/user/.tdo/config.json", path)
}

func TestSearchResolverFallsBackToFirstCandidate(t *testing.T) {
	r := &SearchResolver{
		Name: "config.json",
		Dirs: []string{"", "/project/.tdo", "/home/user/.tdo"},
		Fs:   afero.NewMemMapFs(),
	}
	path, err := r.ConfigFilePath()
	require.NoError(t, err)
	assert.Equal(t, "/project/.tdo/config.json", path)
}

func TestSearchResolverWithoutDirs(t *testing.T) {
	for _, r := range []*SearchResolver{
		{Name: "config.json"},
		{Name: "config.json", Dirs: []string{""}},
		{Dirs: []string{"/a"}},
	} {
		_, err := r.ConfigFilePath()
		assert.ErrorIs(t, err, ErrMissingFilePath)
	}
}

func TestSearchResolverAsStoreResolver(t *testing.T) {
	fs := afero.NewMemMapFs()
	r := &SearchResolver{Name: "config.json", Dirs: []string{"/project/.tdo"}, Fs: fs}
	s := New(countSchema(), WithFs(fs), WithPathResolver(r))

	s.Set("count", 2)
	require.NoError(t, s.Save())

	reopened, err := Open(countSchema(), WithFs(fs), WithPathResolver(r))
	require.NoError(t, err)
	v, err := reopened.Get("count")
	require.NoError(t, err)
	assert.EqualValues(t, 2, v)
}
