// Package el provides the SVG tag DSL for svgkit.
//
// It wraps github.com/vango-dev/svgkit/pkg/svg with one constructor per tag,
// attribute helpers and a few composition helpers.
//
// Typical usage:
//
//	import (
//	    "github.com/vango-dev/svgkit/pkg/svg"
//	    . "github.com/vango-dev/svgkit/el"
//	)
//
//	doc := SVG(Attrs{Width(120), Height(40)},
//	    Rect(Attrs{Width(120), Height(40), Fill("#eee")}),
//	    Text(Attrs{X(10), Y(25)}, svg.Text("hello")),
//	)
//
// Constructors carry no logic: each passes a fixed tag name and closing
// policy to svg.New.
package el
