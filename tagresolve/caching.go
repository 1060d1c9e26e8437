package tagresolve

import (
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jhump/taghelpers/taghelper"
)

// CachingProvider is a ModuleProvider that remembers the descriptors of each
// module it has resolved, so the underlying provider is consulted at most once per
// module name. Concurrent requests for a module that is not yet cached share a
// single call to the underlying provider. Failures are not cached.
//
// Callers receive copies of the cached slices, but the descriptors in them share
// their Attributes slices with the cache and must not be modified.
type CachingProvider struct {
	provider ModuleProvider

	mu      sync.RWMutex
	group   *singleflight.Group
	entries map[string][]taghelper.Descriptor
	// incremented by Forget and Reset; a load that started under an older
	// generation does not store its result
	gen uint64
}

var _ ModuleProvider = (*CachingProvider)(nil)

// NewCachingProvider returns a provider that caches the results of the given
// provider.
func NewCachingProvider(provider ModuleProvider) *CachingProvider {
	return &CachingProvider{
		provider: provider,
		group:    &singleflight.Group{},
		entries:  map[string][]taghelper.Descriptor{},
	}
}

// ModuleDescriptors implements the ModuleProvider interface.
func (c *CachingProvider) ModuleDescriptors(moduleName string) ([]taghelper.Descriptor, error) {
	c.mu.RLock()
	cached, ok := c.entries[moduleName]
	group := c.group
	c.mu.RUnlock()
	if ok {
		return slices.Clone(cached), nil
	}

	v, err, _ := group.Do(moduleName, func() (any, error) {
		// double-check, in case another call finished loading it after our read
		c.mu.RLock()
		cached, ok := c.entries[moduleName]
		gen := c.gen
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}
		descs, err := c.provider.ModuleDescriptors(moduleName)
		if err != nil {
			return nil, err
		}
		if descs == nil {
			descs = []taghelper.Descriptor{}
		}
		c.mu.Lock()
		if c.gen == gen {
			c.entries[moduleName] = descs
		}
		c.mu.Unlock()
		return descs, nil
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(v.([]taghelper.Descriptor)), nil
}

// Forget removes the given module from the cache, so the next request for it
// consults the underlying provider again. A load that is in progress when Forget
// is called still returns its result to its callers but does not store it.
func (c *CachingProvider) Forget(moduleName string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	delete(c.entries, moduleName)
	c.group.Forget(moduleName)
}

// Reset removes all modules from the cache. As with Forget, loads in progress
// are not stored.
func (c *CachingProvider) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.entries = map[string][]taghelper.Descriptor{}
	c.group = &singleflight.Group{}
}
