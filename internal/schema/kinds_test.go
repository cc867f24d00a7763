package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// throughJSON mimics a save to disk followed by a load.
func throughJSON(t require.TestingT, v any) any {
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestTimeRoundTrip(t *testing.T) {
	f := Time(time.RFC3339)
	rapid.Check(t, func(t *rapid.T) {
		sec := rapid.Int64Range(0, 4102444800).Draw(t, "sec")
		want := time.Unix(sec, 0).UTC()

		saved, err := f.ConvertToSave(want)
		require.NoError(t, err)
		loaded, err := f.ConvertLoaded(throughJSON(t, saved))
		require.NoError(t, err)

		got, ok := loaded.(time.Time)
		require.True(t, ok)
		assert.True(t, want.Equal(got), "want %v, got %v", want, got)
	})
}

func TestDateRoundTrip(t *testing.T) {
	f := Date()
	rapid.Check(t, func(t *rapid.T) {
		day := rapid.IntRange(0, 50000).Draw(t, "day")
		want := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, day)

		saved, err := f.ConvertToSave(want)
		require.NoError(t, err)
		loaded, err := f.ConvertLoaded(saved)
		require.NoError(t, err)
		assert.Equal(t, want, loaded)
	})
}

func TestDurationRoundTrip(t *testing.T) {
	f := Duration()
	rapid.Check(t, func(t *rapid.T) {
		want := time.Duration(rapid.Int64Range(-1e15, 1e15).Draw(t, "d"))

		saved, err := f.ConvertToSave(want)
		require.NoError(t, err)
		loaded, err := f.ConvertLoaded(throughJSON(t, saved))
		require.NoError(t, err)
		assert.Equal(t, want, loaded)
	})
}

func TestIntRoundTrip(t *testing.T) {
	f := Int()
	rapid.Check(t, func(t *rapid.T) {
		want := rapid.IntRange(-1<<52, 1<<52).Draw(t, "n")

		saved, err := f.ConvertToSave(want)
		require.NoError(t, err)
		loaded, err := f.ConvertLoaded(throughJSON(t, saved))
		require.NoError(t, err)
		assert.Equal(t, want, loaded)
	})
}

func TestStringSetRoundTrip(t *testing.T) {
	f := StringSet()
	rapid.Check(t, func(t *rapid.T) {
		items := rapid.SliceOf(rapid.StringMatching(`[a-z]{1,6}`)).Draw(t, "items")
		want := NewSet(items...)

		saved, err := f.ConvertToSave(want)
		require.NoError(t, err)
		loaded, err := f.ConvertLoaded(throughJSON(t, saved))
		require.NoError(t, err)
		assert.Equal(t, want, loaded)
	})
}

func TestIdentityRoundTrip(t *testing.T) {
	f := Identity()
	rapid.Check(t, func(t *rapid.T) {
		want := rapid.String().Draw(t, "s")
		saved, err := f.ConvertToSave(want)
		require.NoError(t, err)
		loaded, err := f.ConvertLoaded(saved)
		require.NoError(t, err)
		assert.Equal(t, want, loaded)
	})
}

func TestStringSetSavesSorted(t *testing.T) {
	saved, err := StringSet().ConvertToSave(NewSet("b", "c", "a"))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, saved)
}

func TestSaveFormIsStable(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value any
	}{
		{"time", Time(time.RFC3339), time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"duration", Duration(), 90 * time.Minute},
		{"int", Int(), 7},
		{"set", StringSet(), NewSet("x", "y")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			once, err := tt.field.ConvertToSave(tt.value)
			require.NoError(t, err)
			twice, err := tt.field.ConvertToSave(once)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestKindsRejectInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (any, error)
	}{
		{"time from number", func() (any, error) { return Time(time.RFC3339).ConvertLoaded(3.0) }},
		{"time bad layout", func() (any, error) { return Date().ConvertLoaded("03/04/2024") }},
		{"time save int", func() (any, error) { return Date().ConvertToSave(5) }},
		{"duration garbage", func() (any, error) { return Duration().ConvertLoaded("soon") }},
		{"duration from bool", func() (any, error) { return Duration().ConvertLoaded(true) }},
		{"int fraction", func() (any, error) { return Int().ConvertLoaded(1.5) }},
		{"int from string", func() (any, error) { return Int().ConvertLoaded("1") }},
		{"int too large", func() (any, error) { return Int().ConvertLoaded(1e20) }},
		{"int too small", func() (any, error) { return Int().ConvertLoaded(-1e20) }},
		{"int at 2^63", func() (any, error) { return Int().ConvertToSave(float64(1 << 63)) }},
		{"int json number overflow", func() (any, error) { return Int().ConvertLoaded(json.Number("100000000000000000000")) }},
		{"set mixed", func() (any, error) { return StringSet().ConvertLoaded([]any{"a", 1.0}) }},
		{"set from object", func() (any, error) { return StringSet().ConvertLoaded(map[string]any{}) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.fn()
			assert.ErrorIs(t, err, ErrInvalidValue)
		})
	}
}

func TestNullPassesThrough(t *testing.T) {
	for _, f := range []Field{Date(), Duration(), Int(), StringSet()} {
		v, err := f.ConvertLoaded(nil)
		require.NoError(t, err)
		assert.Nil(t, v)
		v, err = f.ConvertToSave(nil)
		require.NoError(t, err)
		assert.Nil(t, v)
	}
}

func TestFuncFieldWithoutFunctions(t *testing.T) {
	f := Func(nil, nil)
	_, err := f.ConvertLoaded(1)
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = f.ConvertToSave(1)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestSet(t *testing.T) {
	s := NewSet("b")
	s.Add("a", "b")
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("c"))
	assert.Equal(t, []string{"a", "b"}, s.Sorted())
}
