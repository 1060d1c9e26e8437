package taghelper

import (
	"errors"
	"fmt"
)

// ErrModuleNotFound is the error returned (possibly wrapped) by type discovery
// when no module with the requested name exists.
var ErrModuleNotFound = errors.New("tag helper module not found")

// TypeLoadError is returned by type discovery when a module exists but its
// component types could not be loaded or inspected.
type TypeLoadError struct {
	// Module is the name of the module that failed to load.
	Module string
	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *TypeLoadError) Error() string {
	return fmt.Sprintf("failed to load tag helper types from module %q: %v", e.Module, e.Err)
}

// Unwrap returns the underlying cause, for use with errors.Is and errors.As.
func (e *TypeLoadError) Unwrap() error {
	return e.Err
}

// ModuleNotFound returns an error that wraps ErrModuleNotFound and names the
// given module. If cause is not nil, it is wrapped too.
func ModuleNotFound(module string, cause error) error {
	if cause == nil {
		return fmt.Errorf("%w: %q", ErrModuleNotFound, module)
	}
	return fmt.Errorf("%w: %q: %w", ErrModuleNotFound, module, cause)
}
