package tagproto

import (
	"context"

	"github.com/jhump/protoreflect/grpcreflect"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/jhump/taghelpers/taghelper"
	"github.com/jhump/taghelpers/tagresolve"
)

// ReflectionTypeResolver resolves the tag helper types of files that are
// downloaded from a gRPC server, using the server reflection service. A file
// downloaded once is not downloaded again by the same resolver.
//
// It uses the v1 github.com/jhump/protoreflect/grpcreflect client. The files it
// returns are unwrapped to protoreflect.FileDescriptor values.
type ReflectionTypeResolver struct {
	client *grpcreflect.Client
	filter MessageFilter
}

var _ tagresolve.TypeResolver[protoreflect.MessageDescriptor] = (*ReflectionTypeResolver)(nil)

// NewReflectionTypeResolver returns a resolver that uses the given connection. The
// given context governs the lifetime of the reflection stream; when it is
// cancelled, subsequent calls to ResolveTypes fail. If filter is nil,
// DefaultFilter is used.
func NewReflectionTypeResolver(ctx context.Context, cc grpc.ClientConnInterface, filter MessageFilter) *ReflectionTypeResolver {
	return &ReflectionTypeResolver{
		client: grpcreflect.NewClientAuto(ctx, cc),
		filter: filter,
	}
}

// ResolveTypes implements the tagresolve.TypeResolver interface. If the server
// reports that the file does not exist, the error wraps
// taghelper.ErrModuleNotFound. Other failures, including RPC errors, are reported
// as a *taghelper.TypeLoadError.
func (r *ReflectionTypeResolver) ResolveTypes(moduleName string) ([]protoreflect.MessageDescriptor, error) {
	fd, err := r.client.FileByFilename(moduleName)
	if err != nil {
		if grpcreflect.IsElementNotFoundError(err) {
			return nil, taghelper.ModuleNotFound(moduleName, err)
		}
		return nil, &taghelper.TypeLoadError{Module: moduleName, Err: err}
	}
	return MessagesInFile(fd.UnwrapFile(), r.filter), nil
}

// Reset closes the reflection stream. The resolver remains usable; a new stream
// is opened on next use.
func (r *ReflectionTypeResolver) Reset() {
	r.client.Reset()
}
