// Package htmlcase converts identifiers to the lower-case, hyphen-separated form
// used for HTML element and attribute names.
package htmlcase

import (
	"strings"

	"github.com/ettle/strcase"
)

// FromIdentifier converts a Pascal- or camel-case identifier to HTML case, so
// "InputTagHelper" becomes "input-tag-helper" and "HTMLElement" becomes
// "html-element". Underscores become hyphens.
func FromIdentifier(name string) string {
	return strcase.ToKebab(name)
}

// ElementName derives an element name from a type name: a trailing "TagHelper"
// is removed (unless that is the whole name) and the rest is converted to HTML
// case.
func ElementName(typeName string) string {
	const suffix = "TagHelper"
	if len(typeName) > len(suffix) {
		typeName = strings.TrimSuffix(typeName, suffix)
	}
	return FromIdentifier(typeName)
}
