package tagresolve

import (
	"go.uber.org/zap"

	"github.com/jhump/taghelpers/taghelper"
)

// Resolver resolves tag helper descriptors from lookup text. A Resolver holds no
// mutable state, so it is safe for concurrent use as long as its ModuleProvider
// is.
type Resolver struct {
	provider ModuleProvider
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used to report lookups, at debug level. By default,
// nothing is logged.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewResolver returns a Resolver that gets the descriptors for a module from the
// given provider. It panics if provider is nil.
func NewResolver(provider ModuleProvider, opts ...Option) *Resolver {
	if provider == nil {
		panic("tagresolve: nil ModuleProvider")
	}
	r := &Resolver{provider: provider, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the descriptors identified by lookupText, which must be of the
// form "moduleName" or "typeName, moduleName" (see ParseLookup). If a type name is
// given, only descriptors whose TypeName is exactly equal to it are returned.
// Descriptors are returned in the order the provider produced them. The returned
// slice is never nil.
//
// If lookupText cannot be parsed, an *InvalidLookupError is returned. Errors from
// the ModuleProvider are returned unchanged.
func (r *Resolver) Resolve(lookupText string) ([]taghelper.Descriptor, error) {
	lookup, err := ParseLookup(lookupText)
	if err != nil {
		return nil, err
	}
	descs, err := r.provider.ModuleDescriptors(lookup.ModuleName)
	if err != nil {
		return nil, err
	}
	if lookup.TypeName == "" {
		if descs == nil {
			descs = []taghelper.Descriptor{}
		}
		r.logger.Debug("resolved tag helpers",
			zap.String("module", lookup.ModuleName),
			zap.Int("count", len(descs)))
		return descs, nil
	}
	filtered := make([]taghelper.Descriptor, 0, 1)
	for _, d := range descs {
		if d.TypeName == lookup.TypeName {
			filtered = append(filtered, d)
		}
	}
	r.logger.Debug("resolved tag helpers",
		zap.String("module", lookup.ModuleName),
		zap.String("type", lookup.TypeName),
		zap.Int("candidates", len(descs)),
		zap.Int("count", len(filtered)))
	return filtered, nil
}
