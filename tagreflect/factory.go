package tagreflect

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/jhump/taghelpers/internal/htmlcase"
	"github.com/jhump/taghelpers/taghelper"
	"github.com/jhump/taghelpers/tagresolve"
)

// StructTag is the struct tag key that names the HTML attribute bound to a field.
// A value of "-" excludes the field.
const StructTag = "taghelper"

// Factory is a tagresolve.DescriptorFactory for Go types. It delegates to
// CreateDescriptors.
var Factory tagresolve.DescriptorFactory[reflect.Type] = tagresolve.DescriptorFactoryFunc[reflect.Type](CreateDescriptors)

// NewResolver returns a resolver for the tag helpers registered in the given
// registry. If reg is nil, GlobalRegistry is used.
func NewResolver(reg *Registry, opts ...tagresolve.Option) *tagresolve.Resolver {
	if reg == nil {
		reg = GlobalRegistry
	}
	return tagresolve.NewResolver(tagresolve.ScanModule[reflect.Type](reg, Factory), opts...)
}

// CreateDescriptors returns the descriptors for the given tag helper type. One
// descriptor is returned for each element the type targets. The elements come from
// the type's taghelper.ElementNamer implementation if it has one that returns at
// least one name. Otherwise the single element name is derived from the type name,
// minus any "TagHelper" suffix, in HTML case. So a type named AnchorTagHelper
// targets "anchor" elements.
//
// Attributes are bound to the exported fields of the struct, including those
// promoted from embedded structs. The attribute name is taken from the field's
// "taghelper" struct tag or, absent that, is the field name in HTML case.
func CreateDescriptors(moduleName string, typ reflect.Type) ([]taghelper.Descriptor, error) {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tagreflect: %v is not a struct type", typ)
	}
	typeName := typ.Name()
	if typ.PkgPath() != "" {
		typeName = typ.PkgPath() + "." + typeName
	}

	zero := reflect.New(typ).Interface()
	var elements []string
	if namer, ok := zero.(taghelper.ElementNamer); ok {
		elements = namer.ElementNames()
		for _, name := range elements {
			if strings.TrimSpace(name) == "" {
				return nil, fmt.Errorf("tagreflect: %s: element name must not be blank", typeName)
			}
		}
	}
	if len(elements) == 0 {
		elements = []string{htmlcase.ElementName(typ.Name())}
	}
	var behavior taghelper.ContentBehavior
	if p, ok := zero.(taghelper.ContentBehaviorProvider); ok {
		behavior = p.ContentBehavior()
	}

	attrs := attributes(typ)
	descs := make([]taghelper.Descriptor, len(elements))
	for i, element := range elements {
		descs[i] = taghelper.Descriptor{
			TagName:         element,
			TypeName:        typeName,
			ModuleName:      moduleName,
			Attributes:      attrs,
			ContentBehavior: behavior,
		}
	}
	return descs, nil
}

func attributes(typ reflect.Type) []taghelper.AttributeDescriptor {
	var attrs []taghelper.AttributeDescriptor
	for _, fld := range reflect.VisibleFields(typ) {
		if !fld.IsExported() || fld.Anonymous {
			continue
		}
		name, ok := fld.Tag.Lookup(StructTag)
		if name == "-" {
			continue
		}
		if name, _, _ = strings.Cut(name, ","); !ok || name == "" {
			name = htmlcase.FromIdentifier(fld.Name)
		}
		attrs = append(attrs, taghelper.AttributeDescriptor{
			Name:         name,
			PropertyName: fld.Name,
			TypeName:     fld.Type.String(),
		})
	}
	return attrs
}
