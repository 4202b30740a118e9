package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vango-dev/svgkit/el"
	"github.com/vango-dev/svgkit/pkg/svg"
	"github.com/vango-dev/svgkit/pkg/svg/definitions"
)

var (
	// ErrRootNotSVG is returned when the root node is not an svg node.
	ErrRootNotSVG = errors.New("root node must have tag \"svg\"")

	// ErrMissingTag is returned for a node with attributes or children but
	// no tag.
	ErrMissingTag = errors.New("node has no tag")

	// ErrInvalidValue is returned for attribute or style values that are
	// not strings, numbers, booleans or null.
	ErrInvalidValue = errors.New("invalid value")

	// ErrContentDropped is reported in strict mode for text, raw markup or
	// children that the element would not render.
	ErrContentDropped = errors.New("content is not rendered")

	// ErrChildNotPermitted is reported in strict mode for a child element
	// outside its parent's permitted contents.
	ErrChildNotPermitted = errors.New("child element not permitted")
)

// NodeError locates a build error in the scene tree. Path looks like
// /svg/g[0]/rect[2].
type NodeError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *NodeError) Error() string {
	return e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *NodeError) Unwrap() error { return e.Err }

// Option configures Build.
type Option func(*builder)

// WithStrict validates every built element against the SVG definitions,
// including parent and child pairs and content the element cannot render.
// All violations are reported, not only the first.
func WithStrict() Option {
	return func(b *builder) {
		b.strict = true
	}
}

type builder struct {
	strict   bool
	problems []error
}

// Build turns a scene tree into a document.
func Build(root Node, opts ...Option) (*svg.Document, error) {
	b := &builder{}
	for _, opt := range opts {
		opt(b)
	}

	path := childPath("", root.Tag, -1)
	if root.Tag != "svg" {
		return nil, &NodeError{Path: path, Err: ErrRootNotSVG}
	}

	doc, err := b.document(root, path)
	if err != nil {
		return nil, err
	}
	if len(b.problems) > 0 {
		return nil, errors.Join(b.problems...)
	}
	return doc, nil
}

// Problems splits an error returned by Build into its individual node
// errors.
func Problems(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

func (b *builder) document(n Node, path string) (*svg.Document, error) {
	attrs, err := b.attrs(n, path)
	if err != nil {
		return nil, err
	}
	content, err := b.content(n, path)
	if err != nil {
		return nil, err
	}

	doc := svg.Create(attrs, content...)
	if err := b.style(doc.Element, n, path); err != nil {
		return nil, err
	}
	b.validate(doc.Element, path)
	b.checkContent(n, path, true)
	return doc, nil
}

func (b *builder) node(n Node, path string) (svg.Content, error) {
	switch n.Tag {
	case "":
		if len(n.Attrs) > 0 || len(n.Style) > 0 || len(n.Children) > 0 || n.CSS != "" {
			return nil, &NodeError{Path: path, Err: ErrMissingTag}
		}
		return svg.Text(svg.EscapeText(n.Text) + n.Raw), nil
	case "svg":
		return b.document(n, path)
	case "style":
		attrs, err := b.attrs(n, path)
		if err != nil {
			return nil, err
		}
		css := n.CSS
		if css == "" {
			css = n.Text
		}
		s := svg.NewStyle(attrs, css)
		if err := b.style(s.Element, n, path); err != nil {
			return nil, err
		}
		b.validate(s.Element, path)
		b.checkContent(n, path, true)
		return s, nil
	}

	attrs, err := b.attrs(n, path)
	if err != nil {
		return nil, err
	}
	content, err := b.content(n, path)
	if err != nil {
		return nil, err
	}

	var e *svg.Element
	if ctor, ok := el.ByName(n.Tag); ok {
		e = ctor(attrs, content...)
	} else {
		e = svg.New(n.Tag, true, attrs, content...)
	}
	if err := b.style(e, n, path); err != nil {
		return nil, err
	}
	b.validate(e, path)
	b.checkContent(n, path, e.HasClosingTag())
	return e, nil
}

func (b *builder) content(n Node, path string) ([]svg.Content, error) {
	content := make([]svg.Content, 0, len(n.Children)+2)
	if n.Text != "" {
		content = append(content, el.Escaped(n.Text))
	}
	if n.Raw != "" {
		content = append(content, svg.Text(n.Raw))
	}
	for i, child := range n.Children {
		c, err := b.node(child, childPath(path, child.Tag, i))
		if err != nil {
			return nil, err
		}
		content = append(content, c)
	}
	return content, nil
}

func (b *builder) attrs(n Node, path string) (svg.Attrs, error) {
	attrs := make(svg.Attrs, 0, len(n.Attrs))
	for _, a := range n.Attrs {
		v, ok, err := toValue(a.Value, true)
		if err != nil {
			return nil, &NodeError{Path: path, Err: fmt.Errorf("attribute %q: %w", a.Name, err)}
		}
		if ok {
			attrs = append(attrs, svg.Attribute(a.Name, v))
		}
	}
	return attrs, nil
}

func (b *builder) style(e *svg.Element, n Node, path string) error {
	if len(n.Style) == 0 {
		return nil
	}
	decls := make(svg.StyleMap, 0, len(n.Style))
	for _, s := range n.Style {
		v, _, err := toValue(s.Value, false)
		if err != nil {
			return &NodeError{Path: path, Err: fmt.Errorf("style %q: %w", s.Property, err)}
		}
		decls = append(decls, svg.Decl(s.Property, v))
	}
	e.SetStyle(decls)
	return nil
}

func (b *builder) validate(e *svg.Element, path string) {
	if !b.strict {
		return
	}
	if err := definitions.Validate(e); err != nil {
		b.problems = append(b.problems, &NodeError{Path: path, Err: err})
	}
}

// checkContent reports content n carries that will not reach the output,
// then children its tag does not permit.
func (b *builder) checkContent(n Node, path string, closing bool) {
	if !b.strict {
		return
	}

	var dropped []string
	switch {
	case !closing:
		if n.Text != "" {
			dropped = append(dropped, "text")
		}
		if n.Raw != "" {
			dropped = append(dropped, "raw")
		}
		if len(n.Children) > 0 {
			dropped = append(dropped, "children")
		}
	case n.Tag == "style":
		if n.CSS != "" && n.Text != "" {
			dropped = append(dropped, "text")
		}
		if n.Raw != "" {
			dropped = append(dropped, "raw")
		}
		if len(n.Children) > 0 {
			dropped = append(dropped, "children")
		}
	}
	if len(dropped) > 0 {
		b.problems = append(b.problems, &NodeError{
			Path: path,
			Err:  fmt.Errorf("%w: <%s> ignores %s", ErrContentDropped, n.Tag, strings.Join(dropped, ", ")),
		})
		return
	}

	for i, child := range n.Children {
		if child.Tag == "" || definitions.PermitsChild(n.Tag, child.Tag) {
			continue
		}
		b.problems = append(b.problems, &NodeError{
			Path: childPath(path, child.Tag, i),
			Err:  fmt.Errorf("%w: <%s> inside <%s>", ErrChildNotPermitted, child.Tag, n.Tag),
		})
	}
}

// toValue converts a decoded value. The bool result is false when the
// attribute should be omitted. Booleans and null are only accepted when
// bare is set.
func toValue(v any, bare bool) (svg.Value, bool, error) {
	switch v := v.(type) {
	case string:
		return svg.Str(v), true, nil
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return svg.Num(n), true, nil
		}
		if isInteger(string(v)) {
			return svg.Str(string(v)), true, nil
		}
		if f, err := v.Float64(); err == nil && finite(f) {
			return svg.Num(f), true, nil
		}
	case float64:
		if finite(v) {
			return svg.Num(v), true, nil
		}
	case int64:
		return svg.Num(v), true, nil
	case int:
		return svg.Num(v), true, nil
	case nil:
		if bare {
			return svg.NoValue, true, nil
		}
	case bool:
		if bare {
			return svg.NoValue, v, nil
		}
	}
	return svg.Value{}, false, fmt.Errorf("%w: %v (%T)", ErrInvalidValue, v, v)
}

func childPath(parent, tag string, index int) string {
	if tag == "" {
		tag = "#text"
	}
	if index < 0 {
		return parent + "/" + tag
	}
	return parent + "/" + tag + "[" + strconv.Itoa(index) + "]"
}

// finite reports whether a decoded number can be rendered as a plain
// attribute value.
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// isInteger reports whether s is an integer literal. Integers beyond int64
// are kept as written instead of rounding through float64.
func isInteger(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
