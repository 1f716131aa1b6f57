package djinject

// FactoryFunc builds a single value. The container passed in is always the
// root container of the injection, never the local group, so a factory nested
// arbitrarily deep can depend on any key in the tree.
//
// Factories run at most once per container: the first successful result is
// memoized, and the first error is cached and replayed on later access.
type FactoryFunc func(ctx *Container) (any, error)

// Factory pairs a FactoryFunc with its initialization mode. The zero value is
// invalid; factories are normally created implicitly by Provide or explicitly
// by Eager.
type Factory struct {
	build FactoryFunc
	eager bool
}

// Eager tags a factory for forced initialization: Inject resolves it before
// returning instead of waiting for first access. The argument is either a
// FactoryFunc or a Factory; tagging an already-tagged Factory is a no-op, so
// Eager(Eager(f)) behaves exactly like Eager(f).
func Eager(factory any) Factory {
	f, err := asFactory(factory)
	if err != nil {
		// Surfaces as a RegistrationError once handed to Provide.
		return Factory{}
	}

	f.eager = true
	return f
}

// IsEager reports whether the factory is tagged for forced initialization.
func (f Factory) IsEager() bool {
	return f.eager
}

// asFactory normalizes the values accepted wherever a factory is expected.
func asFactory(factory any) (Factory, error) {
	switch f := factory.(type) {
	case Factory:
		if f.build == nil {
			return Factory{}, ErrFactoryNil
		}
		return f, nil
	case FactoryFunc:
		if f == nil {
			return Factory{}, ErrFactoryNil
		}
		return Factory{build: f}, nil
	case func(*Container) (any, error):
		if f == nil {
			return Factory{}, ErrFactoryNil
		}
		return Factory{build: f}, nil
	case nil:
		return Factory{}, ErrFactoryNil
	default:
		return Factory{}, ErrFactoryInvalid
	}
}
