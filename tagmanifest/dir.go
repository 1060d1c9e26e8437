package tagmanifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhump/taghelpers/taghelper"
	"github.com/jhump/taghelpers/tagresolve"
)

var extensions = []string{".yaml", ".yml"}

// DirTypeResolver resolves modules from manifest files in a directory.
type DirTypeResolver struct {
	// Dir is the directory containing manifests.
	Dir string
}

var _ tagresolve.TypeResolver[Definition] = (*DirTypeResolver)(nil)

// ResolveTypes implements the tagresolve.TypeResolver interface. The definitions
// are returned in the order they appear in the manifest.
//
// If there is no manifest for the module, the error wraps
// taghelper.ErrModuleNotFound. If the module name cannot be a file in Dir, or
// the manifest cannot be read or is invalid, a *taghelper.TypeLoadError is
// returned.
func (r *DirTypeResolver) ResolveTypes(moduleName string) ([]Definition, error) {
	if !filepath.IsLocal(moduleName + extensions[0]) {
		return nil, &taghelper.TypeLoadError{
			Module: moduleName,
			Err:    errors.New("module name is not a valid manifest file name"),
		}
	}
	var data []byte
	var path string
	found := false
	for _, ext := range extensions {
		path = filepath.Join(r.Dir, moduleName+ext)
		var err error
		data, err = os.ReadFile(path)
		if err == nil {
			found = true
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, &taghelper.TypeLoadError{Module: moduleName, Err: err}
		}
	}
	if !found {
		return nil, taghelper.ModuleNotFound(moduleName, nil)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, &taghelper.TypeLoadError{Module: moduleName, Err: fmt.Errorf("%s: %w", path, err)}
	}
	if m.Module != "" && m.Module != moduleName {
		return nil, &taghelper.TypeLoadError{
			Module: moduleName,
			Err:    fmt.Errorf("%s: declares module %q", path, m.Module),
		}
	}
	return m.TagHelpers, nil
}

// Factory is a tagresolve.DescriptorFactory for manifest definitions. It
// delegates to CreateDescriptors.
var Factory tagresolve.DescriptorFactory[Definition] = tagresolve.DescriptorFactoryFunc[Definition](CreateDescriptors)

// NewResolver returns a resolver for the manifests in the given directory.
func NewResolver(dir string, opts ...tagresolve.Option) *tagresolve.Resolver {
	return tagresolve.NewResolver(tagresolve.ScanModule[Definition](&DirTypeResolver{Dir: dir}, Factory), opts...)
}
