package tagproto

import (
	"errors"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"

	"github.com/jhump/taghelpers/taghelper"
	"github.com/jhump/taghelpers/tagresolve"
)

// MessageFilter reports whether a message is a tag helper.
type MessageFilter func(protoreflect.MessageDescriptor) bool

// DefaultFilter accepts messages whose names end in "TagHelper" and that are not
// synthetic map entry messages.
func DefaultFilter(md protoreflect.MessageDescriptor) bool {
	return !md.IsMapEntry() && strings.HasSuffix(string(md.Name()), "TagHelper")
}

// FileResolver can find file descriptors by path. *protoregistry.Files satisfies
// it, as do the resolvers in github.com/jhump/protoreflect/v2/protoresolve.
type FileResolver interface {
	FindFileByPath(path string) (protoreflect.FileDescriptor, error)
}

// FilesTypeResolver resolves the tag helper types of files in a registry.
type FilesTypeResolver struct {
	// Files is the registry that modules are looked up in. If nil,
	// protoregistry.GlobalFiles is used.
	Files FileResolver
	// Filter selects tag helper messages. If nil, DefaultFilter is used.
	Filter MessageFilter
}

var _ tagresolve.TypeResolver[protoreflect.MessageDescriptor] = (*FilesTypeResolver)(nil)

// ResolveTypes implements the tagresolve.TypeResolver interface. If the registry
// reports protoregistry.NotFound, the error wraps taghelper.ErrModuleNotFound.
func (r *FilesTypeResolver) ResolveTypes(moduleName string) ([]protoreflect.MessageDescriptor, error) {
	files := r.Files
	if files == nil {
		files = protoregistry.GlobalFiles
	}
	fd, err := files.FindFileByPath(moduleName)
	if err != nil {
		if errors.Is(err, protoregistry.NotFound) {
			return nil, taghelper.ModuleNotFound(moduleName, err)
		}
		return nil, &taghelper.TypeLoadError{Module: moduleName, Err: err}
	}
	return MessagesInFile(fd, r.Filter), nil
}

// MessagesInFile returns the messages in the given file that the given filter
// accepts, in the order they are declared. Nested messages follow the message
// that encloses them. If filter is nil, DefaultFilter is used.
func MessagesInFile(fd protoreflect.FileDescriptor, filter MessageFilter) []protoreflect.MessageDescriptor {
	if filter == nil {
		filter = DefaultFilter
	}
	var msgs []protoreflect.MessageDescriptor
	collectMessages(fd.Messages(), filter, &msgs)
	return msgs
}

func collectMessages(mds protoreflect.MessageDescriptors, filter MessageFilter, msgs *[]protoreflect.MessageDescriptor) {
	for i, length := 0, mds.Len(); i < length; i++ {
		md := mds.Get(i)
		if filter(md) {
			*msgs = append(*msgs, md)
		}
		collectMessages(md.Messages(), filter, msgs)
	}
}

// Factory is a tagresolve.DescriptorFactory for message types. It delegates to
// CreateDescriptors.
var Factory tagresolve.DescriptorFactory[protoreflect.MessageDescriptor] = tagresolve.DescriptorFactoryFunc[protoreflect.MessageDescriptor](CreateDescriptors)

// NewResolver returns a resolver that discovers message types with the given
// type resolver.
func NewResolver(types tagresolve.TypeResolver[protoreflect.MessageDescriptor], opts ...tagresolve.Option) *tagresolve.Resolver {
	return tagresolve.NewResolver(tagresolve.ScanModule(types, Factory), opts...)
}
