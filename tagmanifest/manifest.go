// Package tagmanifest discovers tag helpers declared in YAML manifests.
//
// A module is a manifest file. DirTypeResolver finds the manifest for module
// "Widgets" at "<dir>/Widgets.yaml" (or "Widgets.yml"):
//
//	module: Widgets
//	tagHelpers:
//	  - type: Widgets.LinkTagHelper
//	    elements: [a, link]
//	    content: append
//	    attributes:
//	      - property: Href
//	      - name: css-class
//	        property: Class
//	        type: string
//
// Each entry under tagHelpers is one component type.
package tagmanifest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jhump/taghelpers/internal/htmlcase"
	"github.com/jhump/taghelpers/taghelper"
)

// Manifest is the content of a manifest file.
type Manifest struct {
	// Module, if set, must match the name of the module being resolved.
	Module     string       `yaml:"module"`
	TagHelpers []Definition `yaml:"tagHelpers"`
}

// Definition declares a single tag helper component type.
type Definition struct {
	// Type is the fully-qualified type name. Required.
	Type string `yaml:"type"`
	// Elements are the elements targeted. If empty, the element name is derived
	// from the last dot-separated part of Type.
	Elements   []string                  `yaml:"elements"`
	Content    taghelper.ContentBehavior `yaml:"content"`
	Attributes []Attribute               `yaml:"attributes"`
}

// Attribute declares a bound attribute.
type Attribute struct {
	// Name is the HTML attribute name. If empty, it is derived from Property.
	Name string `yaml:"name"`
	// Property is the name of the bound property. Required.
	Property string `yaml:"property"`
	Type     string `yaml:"type"`
}

// Parse decodes and validates a manifest. Unknown keys are rejected.
func Parse(data []byte) (*Manifest, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("tagmanifest: manifest is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("tagmanifest: decode manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks that required values are present and that type names are
// unique.
func (m *Manifest) Validate() error {
	seen := make(map[string]int, len(m.TagHelpers))
	for i, def := range m.TagHelpers {
		if strings.TrimSpace(def.Type) == "" {
			return fmt.Errorf("tagmanifest: tag helper #%d: type is required", i+1)
		}
		if prev, ok := seen[def.Type]; ok {
			return fmt.Errorf("tagmanifest: tag helper #%d: type %s already declared by #%d", i+1, def.Type, prev)
		}
		seen[def.Type] = i + 1
		for _, el := range def.Elements {
			if strings.TrimSpace(el) == "" {
				return fmt.Errorf("tagmanifest: %s: element name must not be blank", def.Type)
			}
		}
		for j, attr := range def.Attributes {
			if strings.TrimSpace(attr.Property) == "" {
				return fmt.Errorf("tagmanifest: %s: attribute #%d: property is required", def.Type, j+1)
			}
		}
	}
	return nil
}

// CreateDescriptors returns the descriptors for a definition, one per element.
func CreateDescriptors(moduleName string, def Definition) ([]taghelper.Descriptor, error) {
	elements := def.Elements
	if len(elements) == 0 {
		typeName := def.Type
		if i := strings.LastIndexByte(typeName, '.'); i >= 0 {
			typeName = typeName[i+1:]
		}
		if typeName == "" {
			return nil, fmt.Errorf("tagmanifest: cannot derive element name from type %q", def.Type)
		}
		elements = []string{htmlcase.ElementName(typeName)}
	}
	var attrs []taghelper.AttributeDescriptor
	for _, attr := range def.Attributes {
		name := attr.Name
		if name == "" {
			name = htmlcase.FromIdentifier(attr.Property)
		}
		attrs = append(attrs, taghelper.AttributeDescriptor{
			Name:         name,
			PropertyName: attr.Property,
			TypeName:     attr.Type,
		})
	}
	descs := make([]taghelper.Descriptor, len(elements))
	for i, element := range elements {
		descs[i] = taghelper.Descriptor{
			TagName:         element,
			TypeName:        def.Type,
			ModuleName:      moduleName,
			Attributes:      attrs,
			ContentBehavior: def.Content,
		}
	}
	return descs, nil
}
