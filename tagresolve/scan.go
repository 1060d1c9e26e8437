package tagresolve

import (
	"github.com/jhump/taghelpers/taghelper"
)

// ModuleProvider returns all tag helper descriptors in a module. Errors from
// implementations are returned to callers of Resolver.Resolve as is, so they
// should use the error kinds in package taghelper where they apply.
type ModuleProvider interface {
	ModuleDescriptors(moduleName string) ([]taghelper.Descriptor, error)
}

// ModuleProviderFunc is a ModuleProvider backed by a single function.
type ModuleProviderFunc func(moduleName string) ([]taghelper.Descriptor, error)

var _ ModuleProvider = ModuleProviderFunc(nil)

// ModuleDescriptors implements the ModuleProvider interface.
func (f ModuleProviderFunc) ModuleDescriptors(moduleName string) ([]taghelper.Descriptor, error) {
	return f(moduleName)
}

// TypeResolver enumerates the candidate component types of a module. The type
// parameter T is whatever identifies a component type for a particular discovery
// mechanism, such as a reflect.Type or a protoreflect.MessageDescriptor.
type TypeResolver[T any] interface {
	ResolveTypes(moduleName string) ([]T, error)
}

// TypeResolverFunc is a TypeResolver backed by a single function.
type TypeResolverFunc[T any] func(moduleName string) ([]T, error)

// ResolveTypes implements the TypeResolver interface.
func (f TypeResolverFunc[T]) ResolveTypes(moduleName string) ([]T, error) {
	return f(moduleName)
}

// DescriptorFactory converts a single component type, found in the named module,
// into zero or more descriptors.
type DescriptorFactory[T any] interface {
	CreateDescriptors(moduleName string, typ T) ([]taghelper.Descriptor, error)
}

// DescriptorFactoryFunc is a DescriptorFactory backed by a single function.
type DescriptorFactoryFunc[T any] func(moduleName string, typ T) ([]taghelper.Descriptor, error)

// CreateDescriptors implements the DescriptorFactory interface.
func (f DescriptorFactoryFunc[T]) CreateDescriptors(moduleName string, typ T) ([]taghelper.Descriptor, error) {
	return f(moduleName, typ)
}

// ScanModule returns a ModuleProvider that resolves the module's types with the
// given resolver and then converts each one with the given factory. Descriptors
// are returned in the order the types were resolved, and the descriptors for a
// single type in the order the factory produced them. The first error from
// either collaborator is returned unchanged and no descriptors are returned.
//
// Every call re-resolves the module. Use NewCachingProvider to avoid that.
func ScanModule[T any](types TypeResolver[T], factory DescriptorFactory[T]) ModuleProvider {
	return &scanner[T]{types: types, factory: factory}
}

type scanner[T any] struct {
	types   TypeResolver[T]
	factory DescriptorFactory[T]
}

func (s *scanner[T]) ModuleDescriptors(moduleName string) ([]taghelper.Descriptor, error) {
	typs, err := s.types.ResolveTypes(moduleName)
	if err != nil {
		return nil, err
	}
	descs := make([]taghelper.Descriptor, 0, len(typs))
	for _, typ := range typs {
		d, err := s.factory.CreateDescriptors(moduleName, typ)
		if err != nil {
			return nil, err
		}
		descs = append(descs, d...)
	}
	return descs, nil
}
