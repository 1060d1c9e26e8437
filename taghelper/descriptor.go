package taghelper

import (
	"fmt"
	"strings"
)

// Descriptor describes a single tag helper. A component type may produce more than
// one descriptor, such as when it targets multiple elements.
//
// Descriptors are values. Code that receives one must not modify its Attributes
// slice, since it may be shared with other descriptors for the same type.
type Descriptor struct {
	// TagName is the name of the HTML element that the tag helper targets.
	TagName string
	// TypeName is the fully-qualified name of the component type that
	// implements the tag helper.
	TypeName string
	// ModuleName is the name of the module in which the type was found.
	ModuleName string
	// Attributes are the HTML attributes that the tag helper binds.
	Attributes []AttributeDescriptor
	// ContentBehavior indicates how the tag helper treats the content of the
	// element it targets.
	ContentBehavior ContentBehavior
}

// AttributeDescriptor describes an HTML attribute bound by a tag helper.
type AttributeDescriptor struct {
	// Name is the HTML attribute name.
	Name string
	// PropertyName is the name of the field or property, on the component type,
	// to which the attribute is bound.
	PropertyName string
	// TypeName is the name of the type of that property.
	TypeName string
}

// ContentBehavior describes how a tag helper modifies the content of the element
// that it targets.
type ContentBehavior int

const (
	// ContentBehaviorNone means the tag helper does not touch the element's
	// content.
	ContentBehaviorNone ContentBehavior = iota
	// ContentBehaviorAppend means the tag helper's output is added after the
	// element's content.
	ContentBehaviorAppend
	// ContentBehaviorPrepend means the tag helper's output is added before the
	// element's content.
	ContentBehaviorPrepend
	// ContentBehaviorReplace means the tag helper's output replaces the
	// element's content.
	ContentBehaviorReplace
	// ContentBehaviorModify means the tag helper receives the element's
	// rendered content and may change it.
	ContentBehaviorModify
)

var contentBehaviorNames = [...]string{
	ContentBehaviorNone:    "none",
	ContentBehaviorAppend:  "append",
	ContentBehaviorPrepend: "prepend",
	ContentBehaviorReplace: "replace",
	ContentBehaviorModify:  "modify",
}

// String returns the lower-case name of the behavior.
func (b ContentBehavior) String() string {
	if b < 0 || int(b) >= len(contentBehaviorNames) {
		return fmt.Sprintf("ContentBehavior(%d)", int(b))
	}
	return contentBehaviorNames[b]
}

// ParseContentBehavior returns the behavior with the given name. Names are
// matched without regard to case, and the empty string is the same as "none".
func ParseContentBehavior(name string) (ContentBehavior, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return ContentBehaviorNone, nil
	}
	for i, n := range contentBehaviorNames {
		if strings.EqualFold(n, name) {
			return ContentBehavior(i), nil
		}
	}
	return ContentBehaviorNone, fmt.Errorf("unknown content behavior %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (b ContentBehavior) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(contentBehaviorNames) {
		return nil, fmt.Errorf("invalid content behavior %d", int(b))
	}
	return []byte(contentBehaviorNames[b]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *ContentBehavior) UnmarshalText(text []byte) error {
	v, err := ParseContentBehavior(string(text))
	if err != nil {
		return err
	}
	*b = v
	return nil
}
