package svg

const (
	cdataOpen  = "<![CDATA[\n"
	cdataClose = "\n]]>"
)

// Style is a <style> element whose content is wrapped in a CDATA section,
// so stylesheet text is never interpreted as markup.
type Style struct {
	*Element
}

// NewStyle creates a style block holding css.
func NewStyle(attrs Attrs, css string) *Style {
	e := New("style", true, attrs, Text(css))
	e.content = cdataOpen + e.content
	e.trailer = cdataClose
	return &Style{Element: e}
}

// SetAttribute sets a single attribute.
func (s *Style) SetAttribute(name string, value Value) *Style {
	s.Element.SetAttribute(name, value)
	return s
}

// SetAttributes sets every attribute in attrs, in order.
func (s *Style) SetAttributes(attrs Attrs) *Style {
	s.Element.SetAttributes(attrs)
	return s
}

// AppendChild appends more stylesheet text inside the CDATA section.
func (s *Style) AppendChild(items ...Content) *Style {
	s.Element.AppendChild(items...)
	return s
}

// SetStyle sets the inline style attribute of the style element itself.
func (s *Style) SetStyle(style StyleMap) *Style {
	s.Element.SetStyle(style)
	return s
}
