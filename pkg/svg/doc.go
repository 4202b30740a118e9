// Package svg provides the element model and serializer for building SVG
// documents in Go.
//
// An Element holds a tag name, a closing-tag policy, an ordered attribute
// set and a flat content string. Content is normalized the moment it is
// attached: nested elements are rendered to text immediately, so a parent
// never keeps a reference to its children.
//
// # Building
//
//	doc := svg.Create(svg.Attrs{svg.Attribute("width", svg.Num(100))},
//	    svg.New("circle", false, svg.Attrs{
//	        svg.Attribute("cx", svg.Num(50)),
//	        svg.Attribute("cy", svg.Num(50)),
//	        svg.Attribute("r", svg.Num(40)),
//	    }),
//	)
//	out := doc.Render()
//
// # Escaping
//
// Attribute values are escaped when they are set: a double quote becomes
// &quot;. Inline styles built with SetStyle replace double quotes with single
// quotes instead. Text content is inserted verbatim; use EscapeText for
// untrusted input, or a Style block for stylesheet text.
//
// # Closing tags
//
// Elements constructed with hasClosingTag render as <tag ...>content</tag>,
// even when content is empty. All other elements render as <tag ... /> and
// any content appended to them is discarded.
package svg
