package svg

import "strings"

// Content is anything that can be attached to an element: Text, Number,
// *Element, *Style, *Document, or a Group of those.
//
// The interface is sealed; types outside this package cannot implement it.
type Content interface {
	isContent()
}

// Text is literal content, inserted without escaping.
type Text string

// Number is numeric content, rendered in its shortest decimal form.
type Number float64

// Group is a sequence of content, concatenated in order with no separator.
type Group []Content

func (Text) isContent()     {}
func (Number) isContent()   {}
func (Group) isContent()    {}
func (*Element) isContent() {}

// normalize flattens c into the string stored as element content.
// Elements are rendered at this point, so later changes to them are not
// seen by the parent.
func normalize(c Content) string {
	switch v := c.(type) {
	case nil:
		return ""
	case Text:
		return string(v)
	case Number:
		return formatFloat(float64(v), 64)
	case *Element:
		return v.Render()
	case *Style:
		if v == nil {
			return ""
		}
		return v.Render()
	case *Document:
		if v == nil {
			return ""
		}
		return v.Render()
	case Group:
		var b strings.Builder
		for _, item := range v {
			b.WriteString(normalize(item))
		}
		return b.String()
	default:
		// Unreachable: Content is sealed.
		return ""
	}
}
