// Package tagproto discovers tag helpers among Protobuf message types.
//
// A module is a proto file, named by its path. The candidate component types of a
// module are the messages, including nested messages, that the file defines and
// that satisfy a predicate. By default, that is messages whose names end in
// "TagHelper".
//
// Three type resolvers are provided, differing in where files come from:
//   - FilesTypeResolver looks files up in a registry, such as
//     protoregistry.GlobalFiles.
//   - SourceTypeResolver compiles files from source.
//   - ReflectionTypeResolver downloads files from a gRPC server using the server
//     reflection service.
//
// CreateDescriptors converts a message into descriptors. Each field of the message
// becomes an attribute. The leading comments of the message may contain
// directives that control the descriptors:
//
//	// taghelper:element a
//	// taghelper:element link
//	// taghelper:content append
//	message LinkTagHelper {
//	  string href = 1;
//	}
//
// Comments are only available when the file descriptor includes source code info.
package tagproto
