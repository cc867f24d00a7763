package schema

// Separator splits a field path into nested steps.
const Separator = "__"

// Field describes how the value stored at one document path is converted
// between its JSON form and its in-memory form.
//
// Field implementations embed Base, which carries the name and path and
// provides the not-implemented conversions a kind overrides.
type Field interface {
	// Name is the name the field was registered under. Empty until registered.
	Name() string
	// Path is the explicit storage path, or Name when none was given.
	Path() string
	// ConvertLoaded turns a raw JSON value into its in-memory form.
	ConvertLoaded(raw any) (any, error)
	// ConvertToSave turns an in-memory value back into a JSON-encodable one.
	ConvertToSave(value any) (any, error)

	base() *Base
}

// Option configures a field at construction.
type Option func(*Base)

// At sets an explicit storage path. Use Separator to address nested objects.
func At(path string) Option {
	return func(b *Base) {
		b.path = path
	}
}

// Base is the abstract field. Its conversions fail with ErrNotImplemented.
type Base struct {
	name string
	path string
}

// NewBase returns an abstract field, mostly useful to embed or to test the
// not-implemented contract.
func NewBase(opts ...Option) *Base {
	b := &Base{}
	b.apply(opts)
	return b
}

func (b *Base) apply(opts []Option) {
	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}
}

// Name returns the registered name.
func (b *Base) Name() string { return b.name }

// Path returns the explicit path or the name.
func (b *Base) Path() string {
	if b.path != "" {
		return b.path
	}
	return b.name
}

// ConvertLoaded always fails with ErrNotImplemented.
func (b *Base) ConvertLoaded(any) (any, error) {
	return nil, ErrNotImplemented
}

// ConvertToSave always fails with ErrNotImplemented.
func (b *Base) ConvertToSave(any) (any, error) {
	return nil, ErrNotImplemented
}

func (b *Base) base() *Base { return b }
