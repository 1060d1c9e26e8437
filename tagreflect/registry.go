// Package tagreflect discovers tag helpers among Go types.
//
// Go cannot enumerate the types of a package at runtime, so modules are made known
// by registering them in a Registry, typically from an init function:
//
//	func init() {
//		tagreflect.Register("MyModule", (*AnchorTagHelper)(nil), (*FormTagHelper)(nil))
//	}
//
// A Registry is a tagresolve.TypeResolver and CreateDescriptors is the matching
// tagresolve.DescriptorFactory. NewResolver wires the two together.
package tagreflect

import (
	"fmt"
	"go/token"
	"reflect"
	"strings"
	"sync"

	"github.com/jhump/taghelpers/taghelper"
	"github.com/jhump/taghelpers/tagresolve"
)

var tagHelperType = reflect.TypeOf((*taghelper.TagHelper)(nil)).Elem()

// Registry associates module names with Go types. The zero value is ready to use.
// A Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	modules map[string]*module
}

type module struct {
	once   sync.Once
	loader func() ([]any, error)
	err    error

	mu    sync.Mutex
	types []reflect.Type
	seen  map[reflect.Type]struct{}
}

var _ tagresolve.TypeResolver[reflect.Type] = (*Registry)(nil)

// GlobalRegistry is the registry used by the package-level Register function.
var GlobalRegistry = &Registry{}

// Register adds the types of the given values to the named module in
// GlobalRegistry.
func Register(moduleName string, helpers ...any) error {
	return GlobalRegistry.Register(moduleName, helpers...)
}

// Register adds the types of the given values to the named module, creating the
// module if it does not yet exist. Values may be typed nil pointers. Types that are
// not eligible tag helpers (see ResolveTypes) are accepted here but are omitted
// from the module's types. Registering the same type twice has no effect.
func (r *Registry) Register(moduleName string, helpers ...any) error {
	if strings.TrimSpace(moduleName) == "" {
		return fmt.Errorf("tagreflect: module name must not be blank")
	}
	typs := make([]reflect.Type, 0, len(helpers))
	for i, h := range helpers {
		if h == nil {
			return fmt.Errorf("tagreflect: module %q: helper #%d is an untyped nil", moduleName, i+1)
		}
		typs = append(typs, reflect.TypeOf(h))
	}
	m := r.getOrCreate(moduleName)
	m.add(typs)
	return nil
}

// RegisterLoader registers a module whose types are produced by the given function.
// The function is called at most once, the first time the module's types are
// resolved. If it fails, the module reports a *taghelper.TypeLoadError from then on.
// It is an error to register a loader for a module that already exists.
func (r *Registry) RegisterLoader(moduleName string, loader func() ([]any, error)) error {
	if strings.TrimSpace(moduleName) == "" {
		return fmt.Errorf("tagreflect: module name must not be blank")
	}
	if loader == nil {
		return fmt.Errorf("tagreflect: module %q: loader must not be nil", moduleName)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.modules[moduleName]; ok {
		return fmt.Errorf("tagreflect: module %q is already registered", moduleName)
	}
	if r.modules == nil {
		r.modules = map[string]*module{}
	}
	r.modules[moduleName] = &module{loader: loader}
	return nil
}

func (r *Registry) getOrCreate(moduleName string) *module {
	r.mu.RLock()
	m, ok := r.modules[moduleName]
	r.mu.RUnlock()
	if ok {
		return m
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if m, ok := r.modules[moduleName]; ok {
		return m
	}
	if r.modules == nil {
		r.modules = map[string]*module{}
	}
	m = &module{}
	r.modules[moduleName] = m
	return m
}

// ModuleNames returns the names of all registered modules, in no particular order.
func (r *Registry) ModuleNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.modules))
	for name := range r.modules {
		names = append(names, name)
	}
	return names
}

// ResolveTypes returns the tag helper types of the named module, in the order they
// were registered. Only eligible types are returned: named, exported struct types
// that are not instantiations of generic types and that implement
// taghelper.TagHelper with either value or pointer receivers. Pointer types are
// reported as their element type.
//
// If no such module is registered, an error wrapping taghelper.ErrModuleNotFound
// is returned. If the module's loader fails, a *taghelper.TypeLoadError is
// returned.
func (r *Registry) ResolveTypes(moduleName string) ([]reflect.Type, error) {
	r.mu.RLock()
	m, ok := r.modules[moduleName]
	r.mu.RUnlock()
	if !ok {
		return nil, taghelper.ModuleNotFound(moduleName, nil)
	}
	m.once.Do(func() {
		if m.loader == nil {
			return
		}
		helpers, err := m.loader()
		if err != nil {
			m.err = &taghelper.TypeLoadError{Module: moduleName, Err: err}
			return
		}
		typs := make([]reflect.Type, 0, len(helpers))
		for i, h := range helpers {
			if h == nil {
				m.err = &taghelper.TypeLoadError{
					Module: moduleName,
					Err:    fmt.Errorf("helper #%d is an untyped nil", i+1),
				}
				return
			}
			typs = append(typs, reflect.TypeOf(h))
		}
		m.add(typs)
	})
	if m.err != nil {
		return nil, m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]reflect.Type(nil), m.types...), nil
}

func (m *module) add(typs []reflect.Type) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen == nil {
		m.seen = map[reflect.Type]struct{}{}
	}
	for _, t := range typs {
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if !IsTagHelper(t) {
			continue
		}
		if _, ok := m.seen[t]; ok {
			continue
		}
		m.seen[t] = struct{}{}
		m.types = append(m.types, t)
	}
}

// IsTagHelper reports whether the given type is an eligible tag helper type.
func IsTagHelper(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}
	name := t.Name()
	if name == "" || !token.IsExported(name) || strings.ContainsRune(name, '[') {
		return false
	}
	return t.Implements(tagHelperType) || reflect.PointerTo(t).Implements(tagHelperType)
}
