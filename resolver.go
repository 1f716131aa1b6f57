package djinject

import (
	"runtime/debug"
	"time"

	"go.uber.org/zap"
)

// entryState tracks the lifecycle of one cache entry. Transitions are
// monotonic: stateEmpty -> stateResolving -> stateValue or stateFailed,
// both terminal. A key resolves or fails at most once per container.
type entryState uint8

const (
	stateEmpty entryState = iota
	stateResolving
	stateValue
	stateFailed
)

// cacheEntry is the per-key resolution state of a container node.
type cacheEntry struct {
	state entryState
	value any
	err   error
	done  chan struct{} // closed when the entry leaves stateResolving
}

// resolveChain is the set of dotted paths currently being resolved by one
// logical resolution flow. It is threaded through the context containers
// handed to factories; observing stateResolving for a path already in the
// chain is a cycle, while observing it for a foreign path means another
// goroutine owns the entry and we wait for it instead.
type resolveChain struct {
	active map[string]struct{}
	stack  []string
}

func (rc *resolveChain) push(path string) {
	if rc.active == nil {
		rc.active = make(map[string]struct{})
	}
	rc.active[path] = struct{}{}
	rc.stack = append(rc.stack, path)
}

func (rc *resolveChain) pop() {
	last := rc.stack[len(rc.stack)-1]
	rc.stack = rc.stack[:len(rc.stack)-1]
	delete(rc.active, last)
}

func (rc *resolveChain) has(path string) bool {
	_, ok := rc.active[path]
	return ok
}

// resolve turns key into its stabilized value on this node.
func (s *node) resolve(key string, chain *resolveChain) (any, error) {
	path := joinPath(s.path, key)

	for {
		s.mu.Lock()
		e, ok := s.entries[key]
		if !ok {
			if !s.module.Has(key) {
				// Undefined keys are absent, not an error, and leave no
				// cache entry behind.
				s.mu.Unlock()
				return nil, nil
			}

			e = &cacheEntry{}
			s.entries[key] = e
		}

		switch e.state {
		case stateValue:
			value := e.value
			s.mu.Unlock()
			return chainView(value, chain), nil

		case stateFailed:
			err := e.err
			s.mu.Unlock()
			return nil, ConstructionError{Path: path, Cause: err}

		case stateResolving:
			if chain.has(path) {
				s.mu.Unlock()
				return nil, CycleError{Path: path}
			}

			// Another goroutine claimed this entry first; wait for its
			// terminal state and re-read.
			done := e.done
			s.mu.Unlock()
			<-done
			continue
		}

		// stateEmpty: claim the entry. The claim under the node mutex is what
		// guarantees at-most-once factory invocation under concurrent first
		// access.
		e.state = stateResolving
		e.done = make(chan struct{})
		s.mu.Unlock()

		start := time.Now()
		value, err := s.construct(key, path, chain)

		s.mu.Lock()
		if err != nil {
			e.state = stateFailed
			e.err = err
		} else {
			e.state = stateValue
			e.value = value
		}
		close(e.done)
		s.mu.Unlock()

		s.notify(path, value, err, time.Since(start))

		if err != nil {
			// First access surfaces the failure itself; later accesses get
			// the cached ConstructionError.
			return nil, err
		}

		return chainView(value, chain), nil
	}
}

// construct produces the value behind a claimed entry: a factory result for
// leaf keys, a nested container for groups.
func (s *node) construct(key, path string, chain *resolveChain) (any, error) {
	switch def := s.module.entries[key].(type) {
	case Factory:
		return s.invoke(def, path, chain)
	case *Module:
		return s.childContainer(def, path), nil
	default:
		return nil, RegistrationError{Key: key, Cause: ErrFactoryInvalid}
	}
}

// invoke runs a factory with the root container as its context, converting
// panics into cached failures.
func (s *node) invoke(f Factory, path string, chain *resolveChain) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = FactoryPanicError{Path: path, Panic: r, Stack: debug.Stack()}
		}
	}()

	chain.push(path)
	defer chain.pop()

	ctx := &Container{state: s.root, chain: chain}
	return f.build(ctx)
}

// childContainer materializes the nested container for a group key. The
// result is memoized in the group's cache entry, so identity is stable.
func (s *node) childContainer(def *Module, path string) *Container {
	child := newNode(def, path, s.root)

	s.mu.Lock()
	child.sealed = s.sealed
	s.mu.Unlock()

	return &Container{state: child}
}

// chainView hands out group containers that keep the active resolution chain
// attached, so a factory navigating into a group still detects cycles.
// Outside a resolution the canonical container is returned unchanged.
func chainView(value any, chain *resolveChain) any {
	if c, ok := value.(*Container); ok && len(chain.stack) > 0 {
		return &Container{state: c.state, chain: chain}
	}
	return value
}

func (s *node) notify(path string, value any, err error, took time.Duration) {
	opts := s.root.opts
	if opts == nil {
		return
	}

	if err != nil {
		opts.Logger.Debug("construction failed",
			zap.String("path", path),
			zap.Error(err))
		if opts.OnError != nil {
			opts.OnError(path, err)
		}
		return
	}

	opts.Logger.Debug("resolved",
		zap.String("path", path),
		zap.Duration("took", took))
	if opts.OnResolved != nil {
		opts.OnResolved(path, value, took)
	}
}
