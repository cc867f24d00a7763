package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"
)

// DateLayout is the layout used by Date fields.
const DateLayout = "2006-01-02"

// IdentityField stores values unchanged.
type IdentityField struct {
	Base
}

// Identity returns a field that performs no conversion.
func Identity(opts ...Option) *IdentityField {
	f := &IdentityField{}
	f.apply(opts)
	return f
}

// ConvertLoaded returns raw unchanged.
func (f *IdentityField) ConvertLoaded(raw any) (any, error) { return raw, nil }

// ConvertToSave returns value unchanged.
func (f *IdentityField) ConvertToSave(value any) (any, error) { return value, nil }

// TimeField stores a time.Time as a string formatted with Layout.
type TimeField struct {
	Base
	Layout string
}

// Time returns a field converting between layout-formatted strings and time.Time.
func Time(layout string, opts ...Option) *TimeField {
	f := &TimeField{Layout: layout}
	f.apply(opts)
	return f
}

// Date returns a Time field using DateLayout.
func Date(opts ...Option) *TimeField {
	return Time(DateLayout, opts...)
}

// ConvertLoaded parses raw as a time string. JSON null stays nil.
func (f *TimeField) ConvertLoaded(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		t, err := time.Parse(f.Layout, v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return t, nil
	default:
		return nil, fmt.Errorf("%w: expected time string, got %T", ErrInvalidValue, raw)
	}
}

// ConvertToSave formats value with Layout. A string already in Layout is kept,
// so saving twice without reloading is stable.
func (f *TimeField) ConvertToSave(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return v.Format(f.Layout), nil
	case *time.Time:
		if v == nil {
			return nil, nil
		}
		return v.Format(f.Layout), nil
	case string:
		if _, err := time.Parse(f.Layout, v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: expected time.Time, got %T", ErrInvalidValue, value)
	}
}

// DurationField stores a time.Duration as a string such as "1h30m".
type DurationField struct {
	Base
}

// Duration returns a field converting between duration strings and time.Duration.
func Duration(opts ...Option) *DurationField {
	f := &DurationField{}
	f.apply(opts)
	return f
}

// ConvertLoaded parses raw with time.ParseDuration.
func (f *DurationField) ConvertLoaded(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case string:
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("%w: expected duration string, got %T", ErrInvalidValue, raw)
	}
}

// ConvertToSave formats value with Duration.String.
func (f *DurationField) ConvertToSave(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Duration:
		return v.String(), nil
	case string:
		if _, err := time.ParseDuration(v); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("%w: expected time.Duration, got %T", ErrInvalidValue, value)
	}
}

// IntField stores an int. JSON numbers decode as float64; they must be integral.
type IntField struct {
	Base
}

// Int returns a field converting JSON numbers to int.
func Int(opts ...Option) *IntField {
	f := &IntField{}
	f.apply(opts)
	return f
}

// ConvertLoaded converts an integral JSON number to int.
func (f *IntField) ConvertLoaded(raw any) (any, error) {
	return toInt(raw)
}

// ConvertToSave returns value as an int.
func (f *IntField) ConvertToSave(value any) (any, error) {
	return toInt(value)
}

func toInt(v any) (any, error) {
	switch n := v.(type) {
	case nil:
		return nil, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) {
			return nil, fmt.Errorf("%w: %v is not an integer", ErrInvalidValue, n)
		}
		// float64(math.MaxInt64) rounds up to 1<<63, which does not fit.
		if n < math.MinInt64 || n >= math.MaxInt64 {
			return nil, fmt.Errorf("%w: %v is out of range for int", ErrInvalidValue, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return int(i), nil
	default:
		return nil, fmt.Errorf("%w: expected number, got %T", ErrInvalidValue, v)
	}
}

// Set is the in-memory form of a StringSet field.
type Set map[string]struct{}

// NewSet returns a set holding items.
func NewSet(items ...string) Set {
	s := make(Set, len(items))
	for _, item := range items {
		s[item] = struct{}{}
	}
	return s
}

// Has reports whether item is in the set.
func (s Set) Has(item string) bool {
	_, ok := s[item]
	return ok
}

// Add inserts items.
func (s Set) Add(items ...string) {
	for _, item := range items {
		s[item] = struct{}{}
	}
}

// Sorted returns the items in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for item := range s {
		out = append(out, item)
	}
	sort.Strings(out)
	return out
}

// StringSetField stores a Set as a sorted JSON array of strings.
type StringSetField struct {
	Base
}

// StringSet returns a field converting JSON string arrays to Set.
func StringSet(opts ...Option) *StringSetField {
	f := &StringSetField{}
	f.apply(opts)
	return f
}

// ConvertLoaded builds a Set from a JSON array of strings.
func (f *StringSetField) ConvertLoaded(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return NewSet(v...), nil
	case []any:
		s := make(Set, len(v))
		for i, item := range v {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: item %d: expected string, got %T", ErrInvalidValue, i, item)
			}
			s[str] = struct{}{}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: expected array, got %T", ErrInvalidValue, raw)
	}
}

// ConvertToSave returns the set items as a sorted []any.
func (f *StringSetField) ConvertToSave(value any) (any, error) {
	var items []string
	switch v := value.(type) {
	case nil:
		return nil, nil
	case Set:
		items = v.Sorted()
	case map[string]struct{}:
		items = Set(v).Sorted()
	case []string:
		items = NewSet(v...).Sorted()
	case []any:
		loaded, err := f.ConvertLoaded(v)
		if err != nil {
			return nil, err
		}
		items = loaded.(Set).Sorted()
	default:
		return nil, fmt.Errorf("%w: expected set, got %T", ErrInvalidValue, value)
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}

// ConvertFunc is one direction of a custom conversion.
type ConvertFunc func(any) (any, error)

// FuncField delegates both conversions to functions.
type FuncField struct {
	Base
	Load ConvertFunc
	Save ConvertFunc
}

// Func returns a field using load and save as its conversions.
// A nil function behaves like Base and fails with ErrNotImplemented.
func Func(load, save ConvertFunc, opts ...Option) *FuncField {
	f := &FuncField{Load: load, Save: save}
	f.apply(opts)
	return f
}

// ConvertLoaded calls Load.
func (f *FuncField) ConvertLoaded(raw any) (any, error) {
	if f.Load == nil {
		return f.Base.ConvertLoaded(raw)
	}
	return f.Load(raw)
}

// ConvertToSave calls Save.
func (f *FuncField) ConvertToSave(value any) (any, error) {
	if f.Save == nil {
		return f.Base.ConvertToSave(value)
	}
	return f.Save(value)
}
