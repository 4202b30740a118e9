// This file defines attribute helpers returning svg.Attr values.
package el

import (
	"strings"

	"github.com/vango-dev/svgkit/pkg/svg"
)

// Attribute creates an attribute with an arbitrary value.
func Attribute(key string, value svg.Value) svg.Attr { return svg.Attribute(key, value) }

// Str returns a string value.
func Str(s string) svg.Value { return svg.Str(s) }

// Num returns a numeric value.
func Num[T svg.Numeric](n T) svg.Value { return svg.Num(n) }

// Bare creates a name-only attribute.
func Bare(key string) svg.Attr { return svg.Attribute(key, svg.NoValue) }

func str(key, value string) svg.Attr { return svg.Attribute(key, svg.Str(value)) }

// Identity attributes

// ID sets the id attribute.
func ID(id string) svg.Attr { return str("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) svg.Attr { return str("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
func Data(key, value string) svg.Attr { return str("data-"+key, value) }

// Geometry

func X[T svg.Numeric](v T) svg.Attr      { return svg.Attribute("x", svg.Num(v)) }
func Y[T svg.Numeric](v T) svg.Attr      { return svg.Attribute("y", svg.Num(v)) }
func X1[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("x1", svg.Num(v)) }
func Y1[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("y1", svg.Num(v)) }
func X2[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("x2", svg.Num(v)) }
func Y2[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("y2", svg.Num(v)) }
func Cx[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("cx", svg.Num(v)) }
func Cy[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("cy", svg.Num(v)) }
func R[T svg.Numeric](v T) svg.Attr      { return svg.Attribute("r", svg.Num(v)) }
func Rx[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("rx", svg.Num(v)) }
func Ry[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("ry", svg.Num(v)) }
func Dx[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("dx", svg.Num(v)) }
func Dy[T svg.Numeric](v T) svg.Attr     { return svg.Attribute("dy", svg.Num(v)) }
func Width[T svg.Numeric](v T) svg.Attr  { return svg.Attribute("width", svg.Num(v)) }
func Height[T svg.Numeric](v T) svg.Attr { return svg.Attribute("height", svg.Num(v)) }

// D sets the path data attribute.
func D(d string) svg.Attr { return str("d", d) }

// Points sets the points attribute of polygons and polylines.
func Points(points string) svg.Attr { return str("points", points) }

// Transform sets the transform attribute.
func Transform(t string) svg.Attr { return str("transform", t) }

// Paint

// Fill sets the fill attribute.
func Fill(paint string) svg.Attr { return str("fill", paint) }

// Stroke sets the stroke attribute.
func Stroke(paint string) svg.Attr { return str("stroke", paint) }

// StrokeWidth sets the stroke-width attribute.
func StrokeWidth[T svg.Numeric](v T) svg.Attr { return svg.Attribute("stroke-width", svg.Num(v)) }

// Opacity sets the opacity attribute.
func Opacity[T svg.Numeric](v T) svg.Attr { return svg.Attribute("opacity", svg.Num(v)) }

// Offset sets the offset attribute of gradient stops.
func Offset(offset string) svg.Attr { return str("offset", offset) }

// StopColor sets the stop-color attribute.
func StopColor(color string) svg.Attr { return str("stop-color", color) }

// Text

// TextAnchor sets the text-anchor attribute.
func TextAnchor(anchor string) svg.Attr { return str("text-anchor", anchor) }

// FontFamily sets the font-family attribute.
func FontFamily(family string) svg.Attr { return str("font-family", family) }

// FontSize sets the font-size attribute.
func FontSize[T svg.Numeric](v T) svg.Attr { return svg.Attribute("font-size", svg.Num(v)) }

// Links

// Href sets the href attribute.
func Href(url string) svg.Attr { return str("href", url) }

// XlinkHref sets the legacy xlink:href attribute.
func XlinkHref(url string) svg.Attr { return str("xlink:href", url) }

// ViewBox sets the viewBox attribute on nested viewports.
func ViewBox(minX, minY, width, height float64) svg.Attr {
	parts := []string{
		svg.Num(minX).String(),
		svg.Num(minY).String(),
		svg.Num(width).String(),
		svg.Num(height).String(),
	}
	return str("viewBox", strings.Join(parts, " "))
}
