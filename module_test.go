package djinject_test

import (
	"errors"
	"testing"

	"github.com/langium/djinject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constant(value any) djinject.FactoryFunc {
	return func(*djinject.Container) (any, error) {
		return value, nil
	}
}

func TestNewModule(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Provide("charlie", constant(3)),
			djinject.Provide("alpha", constant(1)),
			djinject.Provide("bravo", constant(2)),
		)

		assert.Equal(t, []string{"charlie", "alpha", "bravo"}, module.Keys())
		assert.Equal(t, 3, module.Len())
		assert.True(t, module.Has("alpha"))
		assert.False(t, module.Has("delta"))
	})

	t.Run("empty module", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule()

		assert.Empty(t, module.Keys())
		assert.Equal(t, 0, module.Len())
	})

	t.Run("nil options are skipped", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Provide("a", constant(1)),
			nil,
			djinject.Provide("b", constant(2)),
		)

		assert.Equal(t, []string{"a", "b"}, module.Keys())
	})

	t.Run("duplicate key is rejected", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Provide("a", constant(1)),
			djinject.Provide("a", constant(2)),
		)

		_, err := djinject.Inject(module)
		require.Error(t, err)

		var moduleErr djinject.ModuleError
		require.ErrorAs(t, err, &moduleErr)

		var dup djinject.AlreadyRegisteredError
		require.ErrorAs(t, err, &dup)
		assert.Equal(t, "a", dup.Key)
	})

	t.Run("nil factory is rejected", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Provide("a", nil),
		)

		_, err := djinject.Inject(module)
		require.Error(t, err)
		assert.ErrorIs(t, err, djinject.ErrFactoryNil)

		var reg djinject.RegistrationError
		require.ErrorAs(t, err, &reg)
		assert.Equal(t, "a", reg.Key)
	})

	t.Run("unsupported factory type is rejected", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Provide("a", 42),
		)

		_, err := djinject.Inject(module)
		require.Error(t, err)
		assert.ErrorIs(t, err, djinject.ErrFactoryInvalid)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Provide("", constant(1)),
		)

		_, err := djinject.Inject(module)
		require.Error(t, err)
		assert.ErrorIs(t, err, djinject.ErrKeyEmpty)
	})

	t.Run("errors in nested groups surface", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Group("outer",
				djinject.Provide("bad", nil),
			),
		)

		_, err := djinject.Inject(module)
		require.Error(t, err)
		assert.ErrorIs(t, err, djinject.ErrFactoryNil)
	})
}

func TestSupply(t *testing.T) {
	t.Parallel()

	container, err := djinject.Inject(djinject.NewModule(
		djinject.Supply("answer", 42),
	))
	require.NoError(t, err)

	value, err := container.Get("answer")
	require.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestModule_Include(t *testing.T) {
	t.Run("splices entries", func(t *testing.T) {
		t.Parallel()

		shared := djinject.NewModule(
			djinject.Supply("host", "localhost"),
			djinject.Supply("port", 5432),
		)

		module := djinject.NewModule(
			djinject.Supply("name", "app"),
			djinject.Include(shared),
		)

		assert.Equal(t, []string{"name", "host", "port"}, module.Keys())
	})

	t.Run("deep merges groups", func(t *testing.T) {
		t.Parallel()

		shared := djinject.NewModule(
			djinject.Group("db", djinject.Supply("pool", "pool")),
		)

		module := djinject.NewModule(
			djinject.Group("db", djinject.Supply("migrator", "migrator")),
			djinject.Include(shared),
		)

		container, err := djinject.Inject(module)
		require.NoError(t, err)

		db, err := djinject.Resolve[*djinject.Container](container, "db")
		require.NoError(t, err)
		assert.Equal(t, []string{"migrator", "pool"}, db.Keys())
	})

	t.Run("included entries override", func(t *testing.T) {
		t.Parallel()

		override := djinject.NewModule(
			djinject.Supply("greeting", "Hola!"),
		)

		module := djinject.NewModule(
			djinject.Supply("greeting", "Hi!"),
			djinject.Include(override),
		)

		container, err := djinject.Inject(module)
		require.NoError(t, err)

		greeting, err := container.Get("greeting")
		require.NoError(t, err)
		assert.Equal(t, "Hola!", greeting)
	})

	t.Run("nil module", func(t *testing.T) {
		t.Parallel()

		module := djinject.NewModule(
			djinject.Include(nil),
		)

		_, err := djinject.Inject(module)
		require.Error(t, err)
		assert.True(t, errors.Is(err, djinject.ErrModuleNil))
	})
}
