package tagresolve

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLookup is matched, via errors.Is, by every *InvalidLookupError.
var ErrInvalidLookup = errors.New("invalid tag helper lookup text")

// InvalidLookupError is returned when lookup text is empty or is not of the form
// "moduleName" or "typeName, moduleName".
type InvalidLookupError struct {
	// LookupText is the raw text that could not be parsed.
	LookupText string
}

// Error implements the error interface.
func (e *InvalidLookupError) Error() string {
	return fmt.Sprintf("invalid tag helper lookup text '%s'; the lookup text format is \"typeName, moduleName\" or \"moduleName\"", e.LookupText)
}

// Is returns true if target is ErrInvalidLookup.
func (e *InvalidLookupError) Is(target error) bool {
	return target == ErrInvalidLookup
}

// Lookup is a parsed lookup identifier.
type Lookup struct {
	// TypeName is the component type to look for. If empty, all types in
	// the module are included.
	TypeName string
	// ModuleName is the module to search.
	ModuleName string
}

// ParseLookup parses the given lookup text. The text is split on commas and each
// segment is trimmed of surrounding whitespace. Segments that are then empty are
// discarded, so stray commas are tolerated. Exactly one or two segments must
// remain: the last is the module name and, if present, the first is the type name.
func ParseLookup(lookupText string) (Lookup, error) {
	if lookupText == "" {
		return Lookup{}, &InvalidLookupError{LookupText: lookupText}
	}
	var segments []string
	for _, s := range strings.Split(lookupText, ",") {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}
	switch len(segments) {
	case 1:
		return Lookup{ModuleName: segments[0]}, nil
	case 2:
		return Lookup{TypeName: segments[0], ModuleName: segments[1]}, nil
	default:
		return Lookup{}, &InvalidLookupError{LookupText: lookupText}
	}
}

// String returns the lookup in its canonical text form.
func (l Lookup) String() string {
	if l.TypeName == "" {
		return l.ModuleName
	}
	return l.TypeName + ", " + l.ModuleName
}
