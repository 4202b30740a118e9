package definitions

// ElementDefinition describes what an element accepts.
type ElementDefinition struct {
	// HasClosingTag is the closing policy used by the tag constructors.
	HasClosingTag bool

	// PermittedAttributes lists element-specific attributes. Global
	// attributes are permitted on every element and are not repeated here.
	PermittedAttributes []string

	// PermittedContents lists element names that may appear as children.
	PermittedContents []string

	// AnyContent permits children from other vocabularies, such as HTML
	// inside foreignObject.
	AnyContent bool
}

// AttributeDefinition describes a single attribute.
type AttributeDefinition struct {
	// ValueHints lists well-known values.
	ValueHints []string

	// Enumerated marks attributes whose value must be one of ValueHints.
	Enumerated bool

	// ValidOnElements restricts a global attribute to some elements.
	// Empty means any element.
	ValidOnElements []string
}

// Content categories.
var (
	descriptive = []string{"title", "desc"}
	shapes      = []string{"circle", "ellipse", "line", "path", "polygon", "polyline", "rect"}
	structural  = []string{"defs", "g", "svg", "symbol", "use"}
	gradients   = []string{"linearGradient", "radialGradient"}
	textual     = []string{"text"}
	graphics    = []string{"image", "foreignObject"}
	other       = []string{"a", "clipPath", "filter", "marker", "mask", "pattern", "style"}
)

func concat(groups ...[]string) []string {
	var out []string
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var containerContent = concat(descriptive, shapes, structural, gradients, textual, graphics, other)

// elements is the element table. It is never modified after init.
var elements = map[string]ElementDefinition{
	"svg": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"xmlns", "xmlns:xlink", "version", "x", "y", "width", "height", "viewBox", "preserveAspectRatio"},
		PermittedContents:   containerContent,
	},
	"style": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"type", "media", "title"},
	},
	"a": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"href", "xlink:href", "target", "download", "rel", "hreflang", "type"},
		PermittedContents:   containerContent,
	},
	"g": {
		HasClosingTag:     true,
		PermittedContents: containerContent,
	},
	"defs": {
		HasClosingTag:     true,
		PermittedContents: containerContent,
	},
	"symbol": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x", "y", "width", "height", "viewBox", "preserveAspectRatio", "refX", "refY"},
		PermittedContents:   containerContent,
	},
	"use": {
		PermittedAttributes: []string{"href", "xlink:href", "x", "y", "width", "height"},
	},
	"circle": {
		PermittedAttributes: []string{"cx", "cy", "r", "pathLength"},
	},
	"ellipse": {
		PermittedAttributes: []string{"cx", "cy", "rx", "ry", "pathLength"},
	},
	"line": {
		PermittedAttributes: []string{"x1", "y1", "x2", "y2", "pathLength"},
	},
	"rect": {
		PermittedAttributes: []string{"x", "y", "width", "height", "rx", "ry", "pathLength"},
	},
	"path": {
		PermittedAttributes: []string{"d", "pathLength"},
	},
	"polygon": {
		PermittedAttributes: []string{"points", "pathLength"},
	},
	"polyline": {
		PermittedAttributes: []string{"points", "pathLength"},
	},
	"text": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x", "y", "dx", "dy", "rotate", "lengthAdjust", "textLength"},
		PermittedContents:   concat(descriptive, []string{"a", "tspan"}),
	},
	"tspan": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x", "y", "dx", "dy", "rotate", "lengthAdjust", "textLength"},
		PermittedContents:   concat(descriptive, []string{"a", "tspan"}),
	},
	"foreignObject": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x", "y", "width", "height"},
		AnyContent:          true,
	},
	"image": {
		PermittedAttributes: []string{"href", "xlink:href", "x", "y", "width", "height", "preserveAspectRatio", "crossorigin"},
	},
	"clipPath": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"clipPathUnits"},
		PermittedContents:   concat(descriptive, shapes, textual, []string{"use"}),
	},
	"mask": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x", "y", "width", "height", "maskUnits", "maskContentUnits"},
		PermittedContents:   containerContent,
	},
	"pattern": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x", "y", "width", "height", "href", "patternUnits", "patternContentUnits", "patternTransform", "viewBox", "preserveAspectRatio"},
		PermittedContents:   containerContent,
	},
	"marker": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"markerWidth", "markerHeight", "markerUnits", "orient", "refX", "refY", "viewBox", "preserveAspectRatio"},
		PermittedContents:   containerContent,
	},
	"linearGradient": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x1", "y1", "x2", "y2", "href", "gradientUnits", "gradientTransform", "spreadMethod"},
		PermittedContents:   concat(descriptive, []string{"stop"}),
	},
	"radialGradient": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"cx", "cy", "r", "fx", "fy", "fr", "href", "gradientUnits", "gradientTransform", "spreadMethod"},
		PermittedContents:   concat(descriptive, []string{"stop"}),
	},
	"stop": {
		PermittedAttributes: []string{"offset", "stop-color", "stop-opacity"},
	},
	"filter": {
		HasClosingTag:       true,
		PermittedAttributes: []string{"x", "y", "width", "height", "filterUnits", "primitiveUnits"},
		PermittedContents:   descriptive,
	},
	"title": {HasClosingTag: true},
	"desc":  {HasClosingTag: true},
}

var units = []string{"userSpaceOnUse", "objectBoundingBox"}

// attributes lists global attributes and element attributes with a known
// vocabulary. Entries without ValidOnElements are global.
var attributes = map[string]AttributeDefinition{
	// Core
	"id":        {},
	"class":     {},
	"style":     {},
	"lang":      {},
	"tabindex":  {},
	"xml:space": {ValueHints: []string{"default", "preserve"}, Enumerated: true},

	// Presentation
	"color":             {},
	"display":           {ValueHints: []string{"inline", "block", "none"}},
	"visibility":        {ValueHints: []string{"visible", "hidden", "collapse"}, Enumerated: true},
	"opacity":           {},
	"transform":         {},
	"fill":              {ValueHints: []string{"none", "currentColor"}},
	"fill-opacity":      {},
	"fill-rule":         {ValueHints: []string{"nonzero", "evenodd"}, Enumerated: true},
	"stroke":            {ValueHints: []string{"none", "currentColor"}},
	"stroke-width":      {},
	"stroke-opacity":    {},
	"stroke-dasharray":  {},
	"stroke-dashoffset": {},
	"stroke-linecap":    {ValueHints: []string{"butt", "round", "square"}, Enumerated: true},
	"stroke-linejoin":   {ValueHints: []string{"arcs", "bevel", "miter", "miter-clip", "round"}, Enumerated: true},
	"clip-path":         {},
	"clip-rule":         {ValueHints: []string{"nonzero", "evenodd"}, Enumerated: true},
	"mask":              {},
	"filter":            {},
	"font-family":       {ValueHints: []string{"serif", "sans-serif", "monospace"}},
	"font-size":         {},
	"font-weight":       {ValueHints: []string{"normal", "bold", "bolder", "lighter"}},
	"font-style":        {ValueHints: []string{"normal", "italic", "oblique"}, Enumerated: true},
	"text-anchor": {
		ValueHints:      []string{"start", "middle", "end"},
		Enumerated:      true,
		ValidOnElements: []string{"text", "tspan"},
	},
	"dominant-baseline": {
		ValueHints:      []string{"auto", "middle", "hanging", "central", "alphabetic", "text-top", "text-bottom"},
		ValidOnElements: []string{"text", "tspan"},
	},

	// Element attributes with fixed vocabularies
	"clipPathUnits":       {ValueHints: units, Enumerated: true, ValidOnElements: []string{"clipPath"}},
	"gradientUnits":       {ValueHints: units, Enumerated: true, ValidOnElements: gradients},
	"maskUnits":           {ValueHints: units, Enumerated: true, ValidOnElements: []string{"mask"}},
	"maskContentUnits":    {ValueHints: units, Enumerated: true, ValidOnElements: []string{"mask"}},
	"patternUnits":        {ValueHints: units, Enumerated: true, ValidOnElements: []string{"pattern"}},
	"patternContentUnits": {ValueHints: units, Enumerated: true, ValidOnElements: []string{"pattern"}},
	"filterUnits":         {ValueHints: units, Enumerated: true, ValidOnElements: []string{"filter"}},
	"primitiveUnits":      {ValueHints: units, Enumerated: true, ValidOnElements: []string{"filter"}},
	"markerUnits":         {ValueHints: []string{"strokeWidth", "userSpaceOnUse"}, Enumerated: true, ValidOnElements: []string{"marker"}},
	"spreadMethod":        {ValueHints: []string{"pad", "reflect", "repeat"}, Enumerated: true, ValidOnElements: gradients},
	"lengthAdjust":        {ValueHints: []string{"spacing", "spacingAndGlyphs"}, Enumerated: true, ValidOnElements: []string{"text", "tspan"}},
	"crossorigin":         {ValueHints: []string{"anonymous", "use-credentials"}, Enumerated: true, ValidOnElements: []string{"image"}},
	"target":              {ValueHints: []string{"_self", "_parent", "_top", "_blank"}, ValidOnElements: []string{"a"}},
	"preserveAspectRatio": {
		ValueHints:      []string{"none", "xMidYMid meet", "xMidYMid slice", "xMinYMin meet"},
		ValidOnElements: []string{"svg", "symbol", "image", "pattern", "marker"},
	},
	"orient": {ValueHints: []string{"auto", "auto-start-reverse"}, ValidOnElements: []string{"marker"}},
}

// globalPrefixes are attribute prefixes permitted on every element.
var globalPrefixes = []string{"data-", "aria-"}
