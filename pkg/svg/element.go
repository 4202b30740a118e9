package svg

import (
	"io"
	"strings"
)

// Element is a serializable markup node.
//
// An Element is not safe for concurrent mutation. Rendering only reads its
// state and may be repeated.
type Element struct {
	name          string
	hasClosingTag bool
	attrs         *Attributes
	content       string

	// trailer is appended to content at render time without being stored.
	trailer string
}

// New creates an element. When hasClosingTag is false the element renders
// in the self-closing form and its content is never emitted.
func New(name string, hasClosingTag bool, attrs Attrs, content ...Content) *Element {
	e := &Element{name: name, hasClosingTag: hasClosingTag}
	e.SetAttributes(attrs)
	e.content = normalize(Group(content))
	return e
}

// Name returns the tag name.
func (e *Element) Name() string { return e.name }

// HasClosingTag reports whether the element renders an explicit closing tag.
func (e *Element) HasClosingTag() bool { return e.hasClosingTag }

// Attributes returns the attribute store, or nil if no attribute was ever set.
func (e *Element) Attributes() *Attributes { return e.attrs }

// Content returns the flattened content.
func (e *Element) Content() string { return e.content }

// SetAttribute sets a single attribute. String values are escaped before
// they are stored.
func (e *Element) SetAttribute(name string, value Value) *Element {
	if e.attrs == nil {
		e.attrs = newAttributes()
	}
	if !value.bare {
		value.text = EscapeAttr(value.text)
	}
	e.attrs.set(name, value)
	return e
}

// SetAttributes sets every attribute in attrs, in order.
func (e *Element) SetAttributes(attrs Attrs) *Element {
	for _, a := range attrs {
		e.SetAttribute(a.Key, a.Value)
	}
	return e
}

// AppendChild normalizes each item and appends it to the content.
func (e *Element) AppendChild(items ...Content) *Element {
	for _, item := range items {
		e.content += normalize(item)
	}
	return e
}

// SetStyle replaces the style attribute with the given declarations, written
// as "prop:value;" pairs separated by spaces.
func (e *Element) SetStyle(style StyleMap) *Element {
	decls := make([]string, 0, len(style))
	for _, d := range style {
		decls = append(decls, escapeStyle(d.Property)+":"+escapeStyle(d.Value.text)+";")
	}
	return e.SetAttribute("style", Str(strings.Join(decls, " ")))
}

// Render serializes the element.
func (e *Element) Render() string {
	if e == nil {
		return ""
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(e.name)

	if e.attrs != nil {
		b.WriteByte(' ')
		for i, key := range e.attrs.keys {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(key)
			v := e.attrs.values[key]
			if v.bare {
				continue
			}
			b.WriteString(`="`)
			b.WriteString(v.text)
			b.WriteByte('"')
		}
	}

	if !e.hasClosingTag {
		b.WriteString(" />")
		return b.String()
	}

	b.WriteByte('>')
	b.WriteString(e.content)
	b.WriteString(e.trailer)
	b.WriteString("</")
	b.WriteString(e.name)
	b.WriteByte('>')
	return b.String()
}

// String implements fmt.Stringer.
func (e *Element) String() string { return e.Render() }

// Bytes returns the UTF-8 encoding of Render.
func (e *Element) Bytes() []byte { return []byte(e.Render()) }

// WriteTo writes the rendered element to w.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, e.Render())
	return int64(n), err
}
