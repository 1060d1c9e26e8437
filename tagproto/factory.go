package tagproto

import (
	"bufio"
	"fmt"
	"strings"

	"google.golang.org/protobuf/reflect/protoreflect"

	"github.com/jhump/taghelpers/internal/htmlcase"
	"github.com/jhump/taghelpers/taghelper"
)

const directivePrefix = "taghelper:"

// CreateDescriptors returns the descriptors for the given message. The TypeName of
// each is the message's fully-qualified name. One descriptor is returned for each
// "taghelper:element" directive in the message's leading comments or, if there
// are none, a single descriptor whose element name is derived from the message
// name, minus any "TagHelper" suffix, in HTML case. A "taghelper:content"
// directive sets the content behavior.
//
// Each field becomes an attribute, named by converting the field's JSON name to
// HTML case.
func CreateDescriptors(moduleName string, md protoreflect.MessageDescriptor) ([]taghelper.Descriptor, error) {
	elements, behavior, err := parseDirectives(md)
	if err != nil {
		return nil, fmt.Errorf("tagproto: %s: %w", md.FullName(), err)
	}
	if len(elements) == 0 {
		elements = []string{htmlcase.ElementName(string(md.Name()))}
	}

	var attrs []taghelper.AttributeDescriptor
	fields := md.Fields()
	for i, length := 0, fields.Len(); i < length; i++ {
		fld := fields.Get(i)
		attrs = append(attrs, taghelper.AttributeDescriptor{
			Name:         htmlcase.FromIdentifier(fld.JSONName()),
			PropertyName: string(fld.Name()),
			TypeName:     fieldTypeName(fld),
		})
	}

	descs := make([]taghelper.Descriptor, len(elements))
	for i, element := range elements {
		descs[i] = taghelper.Descriptor{
			TagName:         element,
			TypeName:        string(md.FullName()),
			ModuleName:      moduleName,
			Attributes:      attrs,
			ContentBehavior: behavior,
		}
	}
	return descs, nil
}

func parseDirectives(md protoreflect.MessageDescriptor) ([]string, taghelper.ContentBehavior, error) {
	var behavior taghelper.ContentBehavior
	file := md.ParentFile()
	if file == nil {
		return nil, behavior, nil
	}
	loc := file.SourceLocations().ByDescriptor(md)
	var elements []string
	sc := bufio.NewScanner(strings.NewReader(loc.LeadingComments))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		directive, ok := strings.CutPrefix(line, directivePrefix)
		if !ok {
			continue
		}
		key, value, _ := strings.Cut(directive, " ")
		value = strings.TrimSpace(value)
		switch key {
		case "element":
			if value == "" {
				return nil, behavior, fmt.Errorf("element directive requires a name")
			}
			elements = append(elements, value)
		case "content":
			b, err := taghelper.ParseContentBehavior(value)
			if err != nil {
				return nil, behavior, err
			}
			behavior = b
		default:
			return nil, behavior, fmt.Errorf("unknown directive %q", directivePrefix+key)
		}
	}
	return elements, behavior, nil
}

func fieldTypeName(fld protoreflect.FieldDescriptor) string {
	var name string
	switch {
	case fld.IsMap():
		return fmt.Sprintf("map<%s, %s>", fieldTypeName(fld.MapKey()), fieldTypeName(fld.MapValue()))
	case fld.Message() != nil:
		name = string(fld.Message().FullName())
	case fld.Enum() != nil:
		name = string(fld.Enum().FullName())
	default:
		name = fld.Kind().String()
	}
	if fld.IsList() {
		return "repeated " + name
	}
	return name
}
