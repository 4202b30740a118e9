package definitions

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/vango-dev/svgkit/pkg/svg"
)

// Element returns the definition for name.
func Element(name string) (ElementDefinition, bool) {
	def, ok := elements[name]
	if !ok {
		return ElementDefinition{}, false
	}
	return ElementDefinition{
		HasClosingTag:       def.HasClosingTag,
		PermittedAttributes: slices.Clone(def.PermittedAttributes),
		PermittedContents:   slices.Clone(def.PermittedContents),
		AnyContent:          def.AnyContent,
	}, true
}

// Attribute returns the definition for name.
func Attribute(name string) (AttributeDefinition, bool) {
	def, ok := attributes[name]
	if !ok {
		return AttributeDefinition{}, false
	}
	return AttributeDefinition{
		ValueHints:      slices.Clone(def.ValueHints),
		Enumerated:      def.Enumerated,
		ValidOnElements: slices.Clone(def.ValidOnElements),
	}, true
}

// ElementNames returns every defined element name, sorted.
func ElementNames() []string {
	names := make([]string, 0, len(elements))
	for name := range elements {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsPermitted reports whether attr may appear on element.
func IsPermitted(element, attr string) bool {
	for _, prefix := range globalPrefixes {
		if strings.HasPrefix(attr, prefix) {
			return true
		}
	}
	if def, ok := attributes[attr]; ok {
		if len(def.ValidOnElements) == 0 || slices.Contains(def.ValidOnElements, element) {
			return true
		}
	}
	if def, ok := elements[element]; ok {
		return slices.Contains(def.PermittedAttributes, attr)
	}
	return false
}

// PermitsChild reports whether child may appear inside parent. Pairs
// involving an undefined element are not judged and report true.
func PermitsChild(parent, child string) bool {
	pdef, ok := elements[parent]
	if !ok {
		return true
	}
	if _, ok := elements[child]; !ok {
		return true
	}
	if !pdef.HasClosingTag {
		return false
	}
	return pdef.AnyContent || slices.Contains(pdef.PermittedContents, child)
}

// ValidationError lists the problems found on a single element.
type ValidationError struct {
	Element string

	// UnknownElement is set when the element has no definition. Attribute
	// checks are skipped in that case.
	UnknownElement bool

	// Attributes are attribute names not permitted on the element.
	Attributes []string

	// Values are "name=value" pairs outside an enumerated vocabulary.
	Values []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.UnknownElement {
		return fmt.Sprintf("validation: unknown element <%s>", e.Element)
	}

	var parts []string
	if len(e.Attributes) > 0 {
		parts = append(parts, "attributes not permitted: "+strings.Join(e.Attributes, ", "))
	}
	if len(e.Values) > 0 {
		parts = append(parts, "invalid values: "+strings.Join(e.Values, ", "))
	}
	return fmt.Sprintf("validation: <%s> %s", e.Element, strings.Join(parts, "; "))
}

// Validate checks the element name and attributes of e against the tables.
// Content is not checked: it is already flattened to text.
func Validate(e *svg.Element) error {
	if e == nil {
		return nil
	}

	name := e.Name()
	if _, ok := elements[name]; !ok {
		return &ValidationError{Element: name, UnknownElement: true}
	}

	verr := &ValidationError{Element: name}
	for key, value := range e.Attributes().All() {
		if !IsPermitted(name, key) {
			verr.Attributes = append(verr.Attributes, key)
			continue
		}
		def, ok := attributes[key]
		if !ok || !def.Enumerated || value.IsBare() {
			continue
		}
		if !slices.Contains(def.ValueHints, value.String()) {
			verr.Values = append(verr.Values, key+"="+value.String())
		}
	}

	if len(verr.Attributes) == 0 && len(verr.Values) == 0 {
		return nil
	}
	return verr
}
