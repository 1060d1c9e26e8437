package tagproto

import (
	"context"
	"io"
	"os"
	"path"
	"sync/atomic"

	"github.com/bufbuild/protocompile"
	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/jhump/taghelpers/taghelper"
	"github.com/jhump/taghelpers/tagresolve"
)

// SourceTypeResolver resolves the tag helper types of proto source files, which
// are compiled each time they are resolved. Imports of the standard well-known
// files, like "google/protobuf/timestamp.proto", are always available.
type SourceTypeResolver struct {
	// ImportPaths are the directories searched for source files. If empty,
	// paths are used as given (relative to the current working directory
	// if not absolute).
	ImportPaths []string
	// Accessor opens source files. If nil, os.Open is used.
	Accessor func(path string) (io.ReadCloser, error)
	// Filter selects tag helper messages. If nil, DefaultFilter is used.
	Filter MessageFilter
}

var _ tagresolve.TypeResolver[protoreflect.MessageDescriptor] = (*SourceTypeResolver)(nil)

// ResolveTypes implements the tagresolve.TypeResolver interface. If the module's
// file cannot be opened, the error wraps taghelper.ErrModuleNotFound. If it is
// opened but cannot be compiled, including when its imports cannot be found, a
// *taghelper.TypeLoadError is returned.
func (r *SourceTypeResolver) ResolveTypes(moduleName string) ([]protoreflect.MessageDescriptor, error) {
	accessor := r.Accessor
	if accessor == nil {
		accessor = func(name string) (io.ReadCloser, error) {
			return os.Open(name)
		}
	}
	// Records whether the module's own file could be opened, to tell a missing
	// module apart from a missing import.
	var found atomic.Bool
	tracking := func(p string) (io.ReadCloser, error) {
		rc, err := accessor(p)
		if err == nil && isModulePath(p, moduleName, r.ImportPaths) {
			found.Store(true)
		}
		return rc, err
	}
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: r.ImportPaths,
			Accessor:    tracking,
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	files, err := compiler.Compile(context.Background(), moduleName)
	if err != nil {
		if !found.Load() {
			return nil, taghelper.ModuleNotFound(moduleName, err)
		}
		return nil, &taghelper.TypeLoadError{Module: moduleName, Err: err}
	}
	return MessagesInFile(files[0], r.Filter), nil
}

func isModulePath(p, moduleName string, importPaths []string) bool {
	if p == moduleName {
		return true
	}
	for _, dir := range importPaths {
		if path.Clean(p) == path.Join(dir, moduleName) {
			return true
		}
	}
	return false
}
