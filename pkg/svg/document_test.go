package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const nsAttrs = `xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink"`

func TestCreateInjectsNamespaces(t *testing.T) {
	doc := Create(nil)

	assert.Equal(t, "<svg "+nsAttrs+"></svg>", doc.Render())
	requireWellFormed(t, doc.Render())
}

func TestCreateNamespacesComeFirst(t *testing.T) {
	doc := Create(Attrs{
		Attribute("width", Num(10)),
		Attribute("xmlns", Str("urn:other")),
		Attribute("height", Num(20)),
	})

	assert.Equal(t, []string{"xmlns", "xmlns:xlink", "width", "height"}, doc.Attributes().Keys())
	v, ok := doc.Attributes().Get("xmlns")
	require.True(t, ok)
	assert.Equal(t, NamespaceSVG, v.String())
}

func TestCreateWithContent(t *testing.T) {
	circle := New("circle", false, Attrs{Attribute("r", Num(5))})
	doc := Create(nil, circle, Text("t"))

	assert.Equal(t, "<svg "+nsAttrs+`><circle r="5" />t</svg>`, doc.Render())
}

func TestDocumentSizing(t *testing.T) {
	doc := Create(nil).Width(Num(100)).Height(Str("50%"))

	assert.True(t, strings.HasSuffix(doc.Render(), ` width="100" height="50%"></svg>`))
}

func TestViewBoxForms(t *testing.T) {
	a := Create(nil).ViewBoxRect(0, 0, 100, 50)
	b := Create(nil).ViewBox("0 0 100 50")

	va, _ := a.Attributes().Get("viewBox")
	vb, _ := b.Attributes().Get("viewBox")
	assert.Equal(t, "0 0 100 50", va.String())
	assert.Equal(t, va, vb)
	assert.Equal(t, a.Render(), b.Render())
}

func TestViewBoxRectFractions(t *testing.T) {
	doc := Create(nil).ViewBoxRect(-0.5, 1.25, 10, 2e-7)
	v, _ := doc.Attributes().Get("viewBox")
	assert.Equal(t, "-0.5 1.25 10 2e-7", v.String())
}

func TestDocumentFluent(t *testing.T) {
	doc := Create(nil).
		SetAttribute("id", Str("root")).
		SetAttributes(Attrs{Attribute("class", Str("chart"))}).
		SetStyle(StyleMap{Decl("background", Str("white"))}).
		AppendChild(New("g", true, nil))

	assert.Equal(t,
		"<svg "+nsAttrs+` id="root" class="chart" style="background:white;"><g></g></svg>`,
		doc.Render())
}

func TestDocumentNestedInDocument(t *testing.T) {
	inner := Create(Attrs{Attribute("x", Num(10))})
	outer := Create(nil, inner)

	assert.Equal(t, 4, strings.Count(outer.Render(), "xmlns"))
	requireWellFormed(t, outer.Render())
}

func TestDocumentFile(t *testing.T) {
	doc := Create(nil).Width(Num(1))

	out := doc.File()
	assert.True(t, strings.HasPrefix(out, XMLDeclaration+"\n<svg "))
	parsed := requireWellFormed(t, out)
	root := parsed.Root()
	require.NotNil(t, root)
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "1", root.SelectAttrValue("width", ""))
}
