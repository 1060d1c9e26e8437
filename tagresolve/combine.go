package tagresolve

import (
	"errors"

	"github.com/jhump/taghelpers/taghelper"
)

// Combine returns a provider that consults the given providers in order. The first
// provider given is checked first, so it always takes precedence. When it returns
// an error that wraps taghelper.ErrModuleNotFound, the next provider is checked,
// and so on. Any other error is returned immediately.
//
// This allows a single Resolver to find modules from several sources, such as Go
// types registered with tagreflect and manifests read by tagmanifest.
func Combine(providers ...ModuleProvider) ModuleProvider {
	return combined(providers)
}

type combined []ModuleProvider

func (c combined) ModuleDescriptors(moduleName string) ([]taghelper.Descriptor, error) {
	var lastErr error
	for _, p := range c {
		descs, err := p.ModuleDescriptors(moduleName)
		if errors.Is(err, taghelper.ErrModuleNotFound) {
			lastErr = err
			continue
		}
		return descs, err
	}
	if lastErr == nil {
		lastErr = taghelper.ModuleNotFound(moduleName, nil)
	}
	return nil, lastErr
}
