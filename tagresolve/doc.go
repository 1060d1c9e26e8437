// Package tagresolve resolves tag helper descriptors from a lookup identifier.
//
// A lookup identifier names a module, optionally narrowed to a single component
// type:
//
//	"MyModule"
//	"MyNamespace.MyHelper, MyModule"
//
// A Resolver parses the identifier, asks its ModuleProvider for all descriptors in
// the named module, and, if a type name was given, keeps only the descriptors whose
// TypeName is exactly that name.
//
// The ModuleProvider is the extension point. ScanModule builds the usual provider
// by composing a TypeResolver, which enumerates the candidate component types of a
// module, with a DescriptorFactory, which turns one type into zero or more
// descriptors. Tooling that resolves the same modules repeatedly can wrap that
// provider with NewCachingProvider. Resolvers do not cache by default.
package tagresolve
