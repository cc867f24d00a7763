package store

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionStore(t *testing.T, opts ...Option) (*Store, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	writeFile(t, fs, configPath, `{"count": 1}`)
	opts = append([]Option{WithFs(fs), WithFile(configPath)}, opts...)
	return New(countSchema(), opts...), fs
}

func loadCount(t *testing.T, fs afero.Fs) any {
	t.Helper()
	s, err := Open(countSchema(), WithFs(fs), WithFile(configPath))
	require.NoError(t, err)
	v, err := s.Get("count")
	require.NoError(t, err)
	return v
}

func TestSessionLoadsAndSaves(t *testing.T) {
	s, fs := sessionStore(t)

	err := s.Session(func(s *Store) error {
		v, err := s.Get("count")
		require.NoError(t, err)
		assert.EqualValues(t, 1, v)
		s.Set("count", 2)
		return nil
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, loadCount(t, fs))
}

func TestSessionSavesOnError(t *testing.T) {
	s, fs := sessionStore(t)
	boom := errors.New("boom")

	err := s.Session(func(s *Store) error {
		s.Set("count", 3)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 3, loadCount(t, fs))
}

func TestSessionSavesOnPanic(t *testing.T) {
	s, fs := sessionStore(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = s.Session(func(s *Store) error {
			s.Set("count", 4)
			panic("kaboom")
		})
	})
	assert.EqualValues(t, 4, loadCount(t, fs))
}

func TestSessionWithoutSaveOnError(t *testing.T) {
	s, fs := sessionStore(t, WithSaveOnError(false))
	boom := errors.New("boom")

	err := s.Session(func(s *Store) error {
		s.Set("count", 5)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, loadCount(t, fs))

	assert.Panics(t, func() {
		_ = s.Session(func(s *Store) error {
			s.Set("count", 6)
			panic("kaboom")
		})
	})
	assert.EqualValues(t, 1, loadCount(t, fs))
}

func TestSessionLoadFailureSkipsFunction(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, configPath, `not json`)
	s := New(countSchema(), WithFs(fs), WithFile(configPath))

	called := false
	err := s.Session(func(*Store) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrMalformed)
	assert.False(t, called)

	raw, err := afero.ReadFile(fs, configPath)
	require.NoError(t, err)
	assert.Equal(t, "not json", string(raw), "file not overwritten")
}

func TestSessionJoinsSaveError(t *testing.T) {
	s, fs := sessionStore(t)
	boom := errors.New("boom")

	err := s.Session(func(s *Store) error {
		s.fs = afero.NewReadOnlyFs(fs)
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "save on session exit")
}

func TestWrap(t *testing.T) {
	s, fs := sessionStore(t)

	increment := s.Wrap(func(s *Store) error {
		v, err := Value[float64](s, "count")
		if err != nil {
			return err
		}
		s.Set("count", v+1)
		return nil
	})

	require.NoError(t, increment())
	require.NoError(t, increment())
	assert.EqualValues(t, 3, loadCount(t, fs))
}

func TestWrapFunc(t *testing.T) {
	s, fs := sessionStore(t)

	add := WrapFunc(s, func(s *Store, n float64) (float64, error) {
		v, err := Value[float64](s, "count")
		if err != nil {
			return 0, err
		}
		s.Set("count", v+n)
		return v + n, nil
	})

	got, err := add(10)
	require.NoError(t, err)
	assert.Equal(t, 11.0, got)
	assert.EqualValues(t, 11, loadCount(t, fs))
}

func TestUpdateFileReplacesContent(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, configPath, `{"count": 1, "other": "gone"}`)

	err := UpdateFile(countSchema(), map[string]any{"count": 7}, WithFs(fs), WithFile(configPath))
	require.NoError(t, err)

	s, err := Open(countSchema(), WithFs(fs), WithFile(configPath))
	require.NoError(t, err)
	assert.False(t, s.Has("other"))
	v, err := s.Get("count")
	require.NoError(t, err)
	assert.EqualValues(t, 7, v)
}

func TestUpdateFileDoesNotReadMalformedFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, configPath, `{broken`)

	err := UpdateFile(countSchema(), map[string]any{"count": 1}, WithFs(fs), WithFile(configPath))
	assert.NoError(t, err)
}
