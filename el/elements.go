// This file defines one constructor per SVG tag.
package el

import "github.com/vango-dev/svgkit/pkg/svg"

// SVG creates the root document element.
func SVG(attrs svg.Attrs, content ...svg.Content) *svg.Document {
	return svg.Create(attrs, content...)
}

// Style creates a <style> block holding css.
func Style(attrs svg.Attrs, css string) *svg.Style {
	return svg.NewStyle(attrs, css)
}

// Containers

func A(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("a", true, attrs, content...)
}
func G(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("g", true, attrs, content...)
}
func Defs(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("defs", true, attrs, content...)
}
func Symbol(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("symbol", true, attrs, content...)
}
func ClipPath(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("clipPath", true, attrs, content...)
}
func Mask(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("mask", true, attrs, content...)
}
func Pattern(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("pattern", true, attrs, content...)
}
func Marker(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("marker", true, attrs, content...)
}
func ForeignObject(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("foreignObject", true, attrs, content...)
}

// Shapes

func Circle(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("circle", false, attrs, content...)
}
func Ellipse(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("ellipse", false, attrs, content...)
}
func Line(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("line", false, attrs, content...)
}
func Rect(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("rect", false, attrs, content...)
}
func Path(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("path", false, attrs, content...)
}
func Polygon(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("polygon", false, attrs, content...)
}
func Polyline(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("polyline", false, attrs, content...)
}

// References and media

func Use(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("use", false, attrs, content...)
}
func Image(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("image", false, attrs, content...)
}

// Text

func Text(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("text", true, attrs, content...)
}
func Tspan(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("tspan", true, attrs, content...)
}
func Title(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("title", true, attrs, content...)
}
func Desc(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("desc", true, attrs, content...)
}

// Paint servers and effects

func LinearGradient(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("linearGradient", true, attrs, content...)
}
func RadialGradient(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("radialGradient", true, attrs, content...)
}
func Stop(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("stop", false, attrs, content...)
}
func Filter(attrs svg.Attrs, content ...svg.Content) *svg.Element {
	return svg.New("filter", true, attrs, content...)
}

// constructors maps tag names to constructors for ByName.
var constructors = map[string]Constructor{
	"a":              A,
	"g":              G,
	"defs":           Defs,
	"symbol":         Symbol,
	"clipPath":       ClipPath,
	"mask":           Mask,
	"pattern":        Pattern,
	"marker":         Marker,
	"foreignObject":  ForeignObject,
	"circle":         Circle,
	"ellipse":        Ellipse,
	"line":           Line,
	"rect":           Rect,
	"path":           Path,
	"polygon":        Polygon,
	"polyline":       Polyline,
	"use":            Use,
	"image":          Image,
	"text":           Text,
	"tspan":          Tspan,
	"title":          Title,
	"desc":           Desc,
	"linearGradient": LinearGradient,
	"radialGradient": RadialGradient,
	"stop":           Stop,
	"filter":         Filter,
}

// ByName returns the constructor for tag. The root svg and style tags are
// not included; use SVG and Style.
func ByName(tag string) (Constructor, bool) {
	c, ok := constructors[tag]
	return c, ok
}
