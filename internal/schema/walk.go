package schema

import "strings"

// Direction selects which conversion a pass applies.
type Direction int

const (
	// Load applies ConvertLoaded.
	Load Direction = iota
	// Save applies ConvertToSave.
	Save
)

func (d Direction) String() string {
	switch d {
	case Load:
		return "load"
	case Save:
		return "save"
	default:
		return "unknown"
	}
}

// Visit records what a pass did with each field path.
type Visit struct {
	Converted []string
	Skipped   []string
}

// Apply runs the conversion pass over doc in place. See Walk.
func (s *Schema) Apply(doc map[string]any, dir Direction) error {
	_, err := s.Walk(doc, dir)
	return err
}

// Walk converts, in place, the value at every field path found in doc.
//
// A path with an absent step is skipped and nothing is created. A path that
// reaches a non-object before its last step fails with a *PathError wrapping
// ErrNotContainer. Conversion errors are wrapped in *ConversionError. The first
// error stops the pass; fields already converted stay converted.
func (s *Schema) Walk(doc map[string]any, dir Direction) (Visit, error) {
	var visit Visit
	for _, e := range s.entries {
		parent, step, err := resolve(doc, e.Path)
		if err != nil {
			return visit, err
		}
		if parent == nil {
			visit.Skipped = append(visit.Skipped, e.Path)
			continue
		}

		var converted any
		if dir == Load {
			converted, err = e.Field.ConvertLoaded(parent[step])
		} else {
			converted, err = e.Field.ConvertToSave(parent[step])
		}
		if err != nil {
			return visit, &ConversionError{Field: e.Name, Direction: dir, Err: err}
		}
		parent[step] = converted
		visit.Converted = append(visit.Converted, e.Path)
	}
	return visit, nil
}

// resolve walks path through doc and returns the object holding the final
// step. A nil parent means some step was absent.
func resolve(doc map[string]any, path string) (map[string]any, string, error) {
	steps := strings.Split(path, Separator)
	current := doc
	for i, step := range steps {
		value, ok := current[step]
		if !ok {
			return nil, "", nil
		}
		if i == len(steps)-1 {
			return current, step, nil
		}
		next, ok := value.(map[string]any)
		if !ok {
			return nil, "", &PathError{Path: path, Step: steps[i+1], Err: ErrNotContainer}
		}
		current = next
	}
	return nil, "", nil
}
