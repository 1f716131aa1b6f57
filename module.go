package djinject

import (
	"go.uber.org/multierr"
)

// ModuleOption represents a registration action within a module.
type ModuleOption func(*Module)

// Module is an ordered, immutable tree of factories and nested groups.
// Keys within one module are unique and keep their insertion order, which is
// also the enumeration order of the container built from the module.
//
// Example:
//
//	var DatabaseModule = djinject.NewModule(
//	    djinject.Provide("pool", NewPool),
//	    djinject.Provide("migrator", NewMigrator),
//	)
//
//	var AppModule = djinject.NewModule(
//	    djinject.Group("database", djinject.Include(DatabaseModule)),
//	    djinject.Provide("server", djinject.Eager(NewServer)),
//	)
type Module struct {
	keys    []string
	entries map[string]any // Factory or *Module
	err     error
}

// NewModule creates a module from the given registration options, applied in
// order. Nil options are skipped. Registration mistakes (nil factories,
// duplicate keys, ...) do not stop the builder; they accumulate on the module
// and surface from Inject wrapped in a ModuleError.
func NewModule(opts ...ModuleOption) *Module {
	m := &Module{entries: make(map[string]any)}
	for _, opt := range opts {
		if opt == nil {
			continue
		}

		opt(m)
	}

	return m
}

// Provide registers a factory under key. The factory is a FactoryFunc or a
// Factory value (for example one returned by Eager).
func Provide(key string, factory any) ModuleOption {
	return func(m *Module) {
		f, err := asFactory(factory)
		if err != nil {
			m.err = multierr.Append(m.err, RegistrationError{Key: key, Cause: err})
			return
		}

		m.add(key, f)
	}
}

// Supply registers a constant value under key, equivalent to providing a
// factory that returns the value unchanged.
func Supply(key string, value any) ModuleOption {
	return func(m *Module) {
		m.add(key, Factory{build: func(*Container) (any, error) {
			return value, nil
		}})
	}
}

// Group registers a nested module under key. The group becomes a nested
// container at resolution time; its factories still receive the root
// container as their context.
func Group(key string, opts ...ModuleOption) ModuleOption {
	return func(m *Module) {
		sub := NewModule(opts...)
		if sub.err != nil {
			m.err = multierr.Append(m.err, RegistrationError{Key: key, Cause: sub.err})
		}

		m.add(key, sub)
	}
}

// Include splices another module into this one by deep merge, with the
// included module's entries overriding existing ones at leaf granularity.
// It is the composition counterpart of passing multiple modules to Inject.
func Include(other *Module) ModuleOption {
	return func(m *Module) {
		if other == nil {
			m.err = multierr.Append(m.err, ErrModuleNil)
			return
		}

		merged, err := mergeModules(m, other, false, "")
		if err != nil {
			m.err = multierr.Append(m.err, err)
			return
		}

		*m = *merged
	}
}

// Keys returns the module's keys in insertion order.
func (m *Module) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Has reports whether key is defined in the module.
func (m *Module) Has(key string) bool {
	_, ok := m.entries[key]
	return ok
}

// Len returns the number of keys defined in the module.
func (m *Module) Len() int {
	return len(m.keys)
}

func (m *Module) add(key string, value any) {
	if key == "" {
		m.err = multierr.Append(m.err, RegistrationError{Key: key, Cause: ErrKeyEmpty})
		return
	}

	if _, exists := m.entries[key]; exists {
		m.err = multierr.Append(m.err, AlreadyRegisteredError{Key: key})
		return
	}

	m.keys = append(m.keys, key)
	m.entries[key] = value
}
