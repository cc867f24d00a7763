package store

import (
	"errors"
	"fmt"

	"github.com/nibzard/vcstodo-go/internal/schema"
)

// Session loads the store, runs fn, and saves the store.
//
// If Load fails, fn is not run and nothing is saved. Otherwise the save runs on
// every exit path: when fn returns an error, and when fn panics (the panic is
// re-raised after saving). WithSaveOnError(false) restricts saving to a nil
// return from fn. Errors from fn and from the save are joined.
func (s *Store) Session(fn func(*Store) error) (err error) {
	if err := s.Load(); err != nil {
		return err
	}

	completed := false
	defer func() {
		failed := !completed || err != nil
		if failed && !s.saveOnError {
			return
		}
		if saveErr := s.Save(); saveErr != nil {
			err = errors.Join(err, fmt.Errorf("save on session exit: %w", saveErr))
		}
	}()

	err = fn(s)
	completed = true
	return err
}

// Wrap returns a function that runs fn inside a Session each time it is called.
func (s *Store) Wrap(fn func(*Store) error) func() error {
	return func() error {
		return s.Session(fn)
	}
}

// WrapFunc is Wrap for functions taking an argument and returning a result.
// The store is passed as the first argument.
func WrapFunc[A, R any](s *Store, fn func(*Store, A) (R, error)) func(A) (R, error) {
	return func(arg A) (R, error) {
		var result R
		err := s.Session(func(s *Store) error {
			var err error
			result, err = fn(s, arg)
			return err
		})
		return result, err
	}
}

// UpdateFile creates a fresh store, applies overrides and saves it. The
// existing file is not read first, so its content is replaced.
func UpdateFile(sch *schema.Schema, overrides map[string]any, opts ...Option) error {
	s := New(sch, opts...)
	s.Update(overrides)
	return s.Save()
}
