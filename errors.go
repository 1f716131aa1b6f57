package djinject

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// ========================================
// Core Error Values (Sentinel Errors)
// ========================================
// These are base errors that should be wrapped in typed errors when returned.
// Never return these directly to users - always wrap them with context.

var (
	ErrFactoryNil     = errors.New("factory cannot be nil")
	ErrFactoryInvalid = errors.New("factory must be a FactoryFunc or Factory")
	ErrModuleNil      = errors.New("module cannot be nil")
	ErrKeyEmpty       = errors.New("key cannot be empty")
	ErrContainerNil   = errors.New("container cannot be nil")
)

var (
	_ error = CycleError{}
	_ error = ConstructionError{}
	_ error = FactoryPanicError{}
	_ error = ReadOnlyKeyError{}
	_ error = SealedContainerError{}
	_ error = AlreadyRegisteredError{}
	_ error = RegistrationError{}
	_ error = ModuleError{}
	_ error = MergeConflictError{}
	_ error = KeyNotFoundError{}
	_ error = TypeMismatchError{}
)

// ========================================
// Typed Errors for Rich Context
// ========================================

// CycleError indicates that resolving a key re-entered a key that is still
// being resolved in the same resolution chain.
type CycleError struct {
	Path string // dotted path of the key currently being resolved
}

func (e CycleError) Error() string {
	return fmt.Sprintf("cyclic dependency detected while resolving %q: inject a provider function instead of the value and call it after construction", e.Path)
}

// ConstructionError replays a cached factory failure. The first access to a
// failing key surfaces the factory's own error; every later access returns a
// ConstructionError wrapping that original cause, without re-invoking the
// factory.
type ConstructionError struct {
	Path  string
	Cause error
}

func (e ConstructionError) Error() string {
	return fmt.Sprintf("construction of %q failed: %v", e.Path, e.Cause)
}

func (e ConstructionError) Unwrap() error {
	return e.Cause
}

// FactoryPanicError indicates a factory panicked during invocation.
// It captures the panic value and stack trace for debugging.
type FactoryPanicError struct {
	Path  string
	Panic any
	Stack []byte
}

func (e FactoryPanicError) Error() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("factory for %q panicked: %v", e.Path, e.Panic))

	if len(e.Stack) > 0 {
		b.WriteString("\n\nStack trace:\n")
		b.Write(e.Stack)
	}

	return b.String()
}

// ReadOnlyKeyError indicates an attempt to overwrite or delete a defined key.
type ReadOnlyKeyError struct {
	Path string
	Key  string
}

func (e ReadOnlyKeyError) Error() string {
	return fmt.Sprintf("key %q is read-only", joinPath(e.Path, e.Key))
}

// SealedContainerError indicates a write to a sealed container.
type SealedContainerError struct {
	Path string
	Key  string
}

func (e SealedContainerError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("cannot set %q: container is sealed", e.Key)
	}
	return fmt.Sprintf("cannot set %q: container %q is sealed", e.Key, e.Path)
}

// AlreadyRegisteredError indicates a key is already registered in a module.
type AlreadyRegisteredError struct {
	Key string
}

func (e AlreadyRegisteredError) Error() string {
	return fmt.Sprintf("key %q already registered (a later module can override it at inject time)", e.Key)
}

// RegistrationError wraps errors raised while registering a module entry.
type RegistrationError struct {
	Key   string
	Cause error
}

func (e RegistrationError) Error() string {
	return fmt.Sprintf("failed to register %q: %v", e.Key, e.Cause)
}

func (e RegistrationError) Unwrap() error {
	return e.Cause
}

// ModuleError wraps the accumulated registration errors of the modules passed
// to Inject.
type ModuleError struct {
	Cause error
}

func (e ModuleError) Error() string {
	return fmt.Sprintf("invalid module: %v", e.Cause)
}

func (e ModuleError) Unwrap() error {
	return e.Cause
}

// MergeConflictError indicates that merging modules in strict mode would
// replace a group with a factory or a factory with a group.
type MergeConflictError struct {
	Path       string
	TargetKind string // "factory" or "group"
	SourceKind string
}

func (e MergeConflictError) Error() string {
	return fmt.Sprintf("merge conflict at %q: %s would replace %s", e.Path, e.SourceKind, e.TargetKind)
}

// KeyNotFoundError indicates that Resolve was asked for an undefined key.
// Plain Container.Get treats undefined keys as absent, not as an error.
type KeyNotFoundError struct {
	Path string
}

func (e KeyNotFoundError) Error() string {
	return fmt.Sprintf("key %q is not defined", e.Path)
}

// TypeMismatchError indicates a resolved value did not have the type the
// caller asked for.
type TypeMismatchError struct {
	Path     string
	Expected reflect.Type
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("key %q: expected %s, got %s", e.Path, formatType(e.Expected), formatType(e.Actual))
}

// formatType formats a reflect.Type for error messages.
func formatType(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
