// Package scene turns declarative JSON or TOML descriptions into SVG
// documents.
//
// A scene is a tree of nodes. The root node must have tag "svg"; every
// other node names an SVG tag and carries attributes, an inline style, text
// and children:
//
//	{
//	  "tag": "svg",
//	  "attrs": {"width": 120, "height": 40},
//	  "children": [
//	    {"tag": "rect", "attrs": {"width": 120, "height": 40, "fill": "#eee"}},
//	    {"tag": "text", "attrs": {"x": 10, "y": 25}, "text": "hello"}
//	  ]
//	}
//
// Attribute values may be strings, numbers, true or null. True and null
// produce a bare attribute; false omits it. JSON objects keep their key
// order. TOML tables are unordered, so their keys are applied sorted; use an
// array of {name, value} tables when order matters.
//
// Text is entity-escaped. Raw is inserted verbatim. Nodes with tag "style"
// take their stylesheet from CSS and render as a CDATA block.
//
// # Usage
//
//	root, err := scene.Load("diagram.toml")
//	if err != nil {
//	    return err
//	}
//	doc, err := scene.Build(root, scene.WithStrict())
//	if err != nil {
//	    return err
//	}
//	fmt.Println(doc.File())
package scene
