// Package djinject provides a minimal inversion-of-control container built
// around lazy, memoizing resolution of module trees.
//
// # Overview
//
// A Module is an ordered tree of named factories and nested groups. Inject
// merges one or more modules into a single effective tree and wraps it in a
// Container that builds each value on first access, caches results and
// failures alike, detects dependency cycles, and can force selected factories
// upfront:
//
//   - Deterministic merging: later modules override earlier ones, group
//     entries merge recursively
//   - Lazy by default: no factory runs until its key is read
//   - Memoization: every factory runs at most once per container, including
//     under concurrent first access
//   - Cached failures: a factory error is replayed on later access without
//     re-running the factory
//   - Cycle detection instead of deadlock or stack overflow
//   - Eager initialization for factories tagged with Eager
//
// # Basic Usage
//
// Describe the application as modules, inject them, and read values off the
// returned container:
//
//	module := djinject.NewModule(
//	    djinject.Provide("config", func(ctx *djinject.Container) (any, error) {
//	        return LoadConfig()
//	    }),
//	    djinject.Provide("server", func(ctx *djinject.Container) (any, error) {
//	        cfg, err := djinject.Resolve[*Config](ctx, "config")
//	        if err != nil {
//	            return nil, err
//	        }
//	        return NewServer(cfg), nil
//	    }),
//	)
//
//	container, err := djinject.Inject(module)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	server, err := djinject.Resolve[*Server](container, "server")
//
// Every factory receives the root container as its context, regardless of how
// deeply its own key is nested, so a factory inside a group can depend on any
// key in the tree.
//
// # Overrides and Groups
//
// Passing several modules to Inject merges them left to right. A key defined
// in a later module wins; groups defined on both sides merge key by key, so
// two modules can each contribute part of the same group:
//
//	base := djinject.NewModule(
//	    djinject.Group("db", djinject.Provide("pool", NewPool)),
//	)
//	extra := djinject.NewModule(
//	    djinject.Group("db", djinject.Provide("migrator", NewMigrator)),
//	)
//
//	container, _ := djinject.Inject(base, extra)
//	db, _ := djinject.Resolve[*djinject.Container](container, "db")
//	// db has both "pool" and "migrator"
//
// This makes test overrides trivial: inject the production module followed by
// a module that redefines just the keys under test.
//
// # Eager Initialization
//
// Factories are lazy unless tagged:
//
//	djinject.Provide("listener", djinject.Eager(StartListener))
//
// Inject resolves eager factories in tree order before returning, and fails
// if any of them fail. Eager(Eager(f)) is the same as Eager(f).
//
// # Cycles and Failures
//
// A factory that (transitively) reads its own key gets a CycleError naming
// the dotted path of the offending key. A factory that returns an error or
// panics has the failure cached: the first access surfaces the original
// error, later accesses return a ConstructionError wrapping it, and the
// factory is never retried.
package djinject
