package svg

import "strings"

// Namespace declarations carried by every Document.
const (
	NamespaceSVG   = "http://www.w3.org/2000/svg"
	NamespaceXLink = "http://www.w3.org/1999/xlink"
)

// XMLDeclaration is the prolog written by Document.File.
const XMLDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Document is the outermost <svg> element.
type Document struct {
	*Element
}

// Create returns a root svg element. The xmlns and xmlns:xlink declarations
// always come first; caller values for those two keys are ignored.
func Create(attrs Attrs, content ...Content) *Document {
	e := New("svg", true, nil, content...)
	e.SetAttribute("xmlns", Str(NamespaceSVG))
	e.SetAttribute("xmlns:xlink", Str(NamespaceXLink))
	for _, a := range attrs {
		if a.Key == "xmlns" || a.Key == "xmlns:xlink" {
			continue
		}
		e.SetAttribute(a.Key, a.Value)
	}
	return &Document{Element: e}
}

// Width sets the width attribute.
func (d *Document) Width(width Value) *Document {
	return d.SetAttribute("width", width)
}

// Height sets the height attribute.
func (d *Document) Height(height Value) *Document {
	return d.SetAttribute("height", height)
}

// ViewBox sets the viewBox attribute from a preformatted string.
func (d *Document) ViewBox(value string) *Document {
	return d.SetAttribute("viewBox", Str(value))
}

// ViewBoxRect sets the viewBox attribute from its four components.
func (d *Document) ViewBoxRect(minX, minY, width, height float64) *Document {
	parts := []string{
		formatFloat(minX, 64),
		formatFloat(minY, 64),
		formatFloat(width, 64),
		formatFloat(height, 64),
	}
	return d.ViewBox(strings.Join(parts, " "))
}

// SetAttribute sets a single attribute.
func (d *Document) SetAttribute(name string, value Value) *Document {
	d.Element.SetAttribute(name, value)
	return d
}

// SetAttributes sets every attribute in attrs, in order.
func (d *Document) SetAttributes(attrs Attrs) *Document {
	d.Element.SetAttributes(attrs)
	return d
}

// AppendChild normalizes each item and appends it to the content.
func (d *Document) AppendChild(items ...Content) *Document {
	d.Element.AppendChild(items...)
	return d
}

// SetStyle replaces the style attribute.
func (d *Document) SetStyle(style StyleMap) *Document {
	d.Element.SetStyle(style)
	return d
}

// File renders the document as a standalone file: the XML declaration, a
// newline, then the svg element.
func (d *Document) File() string {
	return XMLDeclaration + "\n" + d.Render()
}
