package el

import "github.com/vango-dev/svgkit/pkg/svg"

// Type aliases for the svg primitives used by the DSL.
type Element = svg.Element
type Document = svg.Document
type StyleBlock = svg.Style
type Attr = svg.Attr
type Attrs = svg.Attrs
type Value = svg.Value
type Content = svg.Content
type Group = svg.Group
type StyleMap = svg.StyleMap

// Constructor is the signature shared by every tag constructor.
type Constructor func(attrs svg.Attrs, content ...svg.Content) *svg.Element
