package djinject

import (
	"reflect"
	"time"

	"go.uber.org/zap"
)

// Options configure a container built by InjectWithOptions.
type Options struct {
	// Logger receives debug-level events for every factory invocation.
	// Defaults to a nop logger.
	Logger *zap.Logger

	// StrictMerge makes merging fail with a MergeConflictError when a factory
	// would silently replace a whole group, or a group a factory. The default
	// keeps the permissive last-write-wins behavior.
	StrictMerge bool

	// OnResolved, if set, is called after each successful factory invocation
	// or group materialization with the dotted path, the produced value and
	// the construction duration. Cache hits do not trigger it.
	OnResolved func(path string, value any, took time.Duration)

	// OnError, if set, is called when a factory invocation fails.
	OnError func(path string, err error)
}

// Inject merges the given modules into one effective tree, builds a container
// over it, forces all eager factories and returns the container. Later
// modules override earlier ones; group entries merge recursively.
//
// Non-eager factories are not invoked - they run on first access to their
// key. An eager factory that fails makes Inject itself fail with the
// factory's error.
//
// Every call produces an independent container with its own caches; nothing
// is shared between injections.
func Inject(modules ...*Module) (*Container, error) {
	return InjectWithOptions(nil, modules...)
}

// InjectWithOptions is Inject with explicit Options.
func InjectWithOptions(options *Options, modules ...*Module) (*Container, error) {
	opts := Options{}
	if options != nil {
		opts = *options
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	merged, err := mergeAll(opts.StrictMerge, modules...)
	if err != nil {
		return nil, err
	}
	if merged.err != nil {
		return nil, ModuleError{Cause: merged.err}
	}

	root := newNode(merged, "", nil)
	root.opts = &opts

	if err := forceEager(root); err != nil {
		return nil, err
	}

	return &Container{state: root}, nil
}

// Resolve is a typed front-end over Container.Get. Unlike Get it treats an
// undefined key as an error (KeyNotFoundError), and it fails with a
// TypeMismatchError when the resolved value is not a T.
func Resolve[T any](c *Container, key string) (T, error) {
	var zero T
	if c == nil {
		return zero, ErrContainerNil
	}

	value, err := c.Get(key)
	if err != nil {
		return zero, err
	}

	path := joinPath(c.state.path, key)
	if value == nil && !c.Has(key) {
		return zero, KeyNotFoundError{Path: path}
	}

	typed, ok := value.(T)
	if !ok {
		return zero, TypeMismatchError{
			Path:     path,
			Expected: reflect.TypeOf((*T)(nil)).Elem(),
			Actual:   reflect.TypeOf(value),
		}
	}

	return typed, nil
}
