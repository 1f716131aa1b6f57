package djinject

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Container is the resolved, memoizing, read-mostly view of a merged module
// tree. Reading a key triggers resolution of its factory on first access;
// the result (or failure) is cached for the container's lifetime. Nested
// groups resolve to nested containers with stable identity.
//
// A Container is safe for concurrent use: first access to a key is
// serialized so each factory runs at most once.
type Container struct {
	state *node
	// chain is non-nil only on the context views handed to factories during
	// an active resolution; it carries the dotted paths currently being
	// resolved so that re-entrant access detects cycles.
	chain *resolveChain
}

// node is the per-group shared state behind one container: its slice of the
// merged module tree and its cache entry table.
type node struct {
	id     string
	path   string // dotted path from the root, "" at the root
	module *Module
	root   *node
	opts   *Options // set on the root node only

	mu      sync.Mutex
	entries map[string]*cacheEntry
	extras  []string // ad-hoc keys added via Set, in insertion order
	sealed  bool
}

func newNode(module *Module, path string, root *node) *node {
	n := &node{
		id:      uuid.NewString(),
		path:    path,
		module:  module,
		entries: make(map[string]*cacheEntry),
	}

	if root == nil {
		root = n
	}
	n.root = root

	return n
}

// ID returns the unique ID of this container node.
func (c *Container) ID() string {
	return c.state.id
}

// Path returns the dotted path of this container node from the root.
// The root container's path is the empty string.
func (c *Container) Path() string {
	return c.state.path
}

// Get resolves key and returns its value.
//
// The first access invokes the key's factory with the root container as
// context and memoizes the result; later accesses return the cached value
// without re-invocation. A failed factory is equally cached: the first access
// returns the factory's error, later accesses a ConstructionError wrapping
// it. Group keys resolve to the nested *Container. Undefined keys yield
// (nil, nil).
func (c *Container) Get(key string) (any, error) {
	chain := c.chain
	if chain == nil || len(chain.stack) == 0 {
		chain = &resolveChain{}
	}

	return c.state.resolve(key, chain)
}

// MustGet is like Get but panics on resolution failure.
func (c *Container) MustGet(key string) any {
	value, err := c.Get(key)
	if err != nil {
		panic(fmt.Sprintf("djinject: %v", err))
	}

	return value
}

// Has reports whether key is defined on this container node, without forcing
// resolution. Keys added via Set count as defined.
func (c *Container) Has(key string) bool {
	if c.state.module.Has(key) {
		return true
	}

	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	_, ok := c.state.entries[key]
	return ok
}

// Keys returns the defined keys of this container node in insertion order:
// module keys first, then ad-hoc Set keys. Enumeration never forces
// resolution.
func (c *Container) Keys() []string {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	keys := make([]string, 0, len(c.state.module.keys)+len(c.state.extras))
	keys = append(keys, c.state.module.keys...)
	keys = append(keys, c.state.extras...)
	return keys
}

// Len returns the number of defined keys on this container node.
func (c *Container) Len() int {
	c.state.mu.Lock()
	defer c.state.mu.Unlock()

	return len(c.state.module.keys) + len(c.state.extras)
}

// Set defines key with a pre-built value. Defined keys are read-only, and a
// sealed container rejects new keys entirely; Set is meant for ad-hoc
// extension in tests and tooling.
func (c *Container) Set(key string, value any) error {
	s := c.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		return SealedContainerError{Path: s.path, Key: key}
	}

	if s.module.Has(key) {
		return ReadOnlyKeyError{Path: s.path, Key: key}
	}
	if _, exists := s.entries[key]; exists {
		return ReadOnlyKeyError{Path: s.path, Key: key}
	}

	s.entries[key] = &cacheEntry{state: stateValue, value: value}
	s.extras = append(s.extras, key)
	return nil
}

// Delete fails for defined keys - containers are read-only once a key exists.
// Deleting an undefined key is a no-op.
func (c *Container) Delete(key string) error {
	s := c.state
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.module.Has(key) {
		return ReadOnlyKeyError{Path: s.path, Key: key}
	}
	if _, exists := s.entries[key]; exists {
		return ReadOnlyKeyError{Path: s.path, Key: key}
	}

	return nil
}

// Seal freezes this container node and every materialized descendant:
// no further keys can be added via Set. Resolution of already-defined keys
// is unaffected.
func (c *Container) Seal() {
	c.state.seal()
}

func (s *node) seal() {
	s.mu.Lock()
	s.sealed = true

	var children []*node
	for _, e := range s.entries {
		if e.state != stateValue {
			continue
		}
		if child, ok := e.value.(*Container); ok {
			children = append(children, child.state)
		}
	}
	s.mu.Unlock()

	for _, child := range children {
		child.seal()
	}
}
