// Package store keeps a JSON configuration document in memory under a schema.
//
// A Store is a key/value mapping whose values are in their loaded form: each
// schema field has been passed through its ConvertLoaded function. Reads fall
// back to the schema defaults; Save runs every field through ConvertToSave and
// writes the document back as indented JSON.
//
// Typical use is a session, which loads on entry and saves on exit:
//
//	err := s.Session(func(s *store.Store) error {
//		s.Set("editor", "nvim")
//		return nil
//	})
//
// # Limitations
//
// A Store is not safe for concurrent use, and nothing locks the backing file.
// Two processes saving the same file race and the last writer wins; a reader may
// see a partially written file if a writer is interrupted.
package store
