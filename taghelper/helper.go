package taghelper

import "context"

// TagHelper is implemented by Go types that are tag helpers. Discovery (see
// package tagreflect) only considers types that implement this interface, with
// either value or pointer receivers.
type TagHelper interface {
	// Process is invoked for each matching element. Implementations may change
	// the given tag in place.
	Process(ctx context.Context, tag *Tag) error
}

// Tag is an element being processed by a TagHelper.
type Tag struct {
	Name       string
	Attributes map[string]string
	Content    string
}

// ElementNamer may optionally be implemented by a TagHelper to name the elements
// that it targets. Without it, the element name is derived from the type name.
// The method is invoked on a zero value of the type.
type ElementNamer interface {
	ElementNames() []string
}

// ContentBehaviorProvider may optionally be implemented by a TagHelper to report
// how it treats element content. Without it, ContentBehaviorNone is assumed. The
// method is invoked on a zero value of the type.
type ContentBehaviorProvider interface {
	ContentBehavior() ContentBehavior
}
