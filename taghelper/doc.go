// Package taghelper contains the data model shared by the tag helper resolution
// packages.
//
// A tag helper is a unit of reusable template logic that targets one or more HTML
// elements. At rest, a tag helper is represented by a Descriptor: the element it
// targets, the name of the component type that implements it, the module that the
// type was discovered in, and the attributes it binds.
//
// Descriptors are produced by the type discovery packages in this module:
//   - tagreflect: Go types registered, per module, in a Registry.
//   - tagproto: protobuf message types, found in files of a registry, compiled
//     from source, or downloaded from a server via gRPC server reflection.
//   - tagmanifest: entries in YAML module manifests.
//
// All of them report problems with the same two error kinds, ErrModuleNotFound and
// *TypeLoadError, so that callers of tagresolve.Resolver can inspect failures
// without knowing which discovery mechanism is in use.
package taghelper
