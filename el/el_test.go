package el

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/svgkit/pkg/svg"
	"github.com/vango-dev/svgkit/pkg/svg/definitions"
)

func TestConstructorsMatchCore(t *testing.T) {
	attrs := svg.Attrs{ID("a"), Cx(1)}

	assert.Equal(t, svg.New("circle", false, attrs).Render(), Circle(attrs).Render())
	assert.Equal(t, svg.New("g", true, attrs, svg.Text("x")).Render(), G(attrs, svg.Text("x")).Render())
}

func TestClosingPolicyMatchesDefinitions(t *testing.T) {
	for tag, ctor := range constructors {
		t.Run(tag, func(t *testing.T) {
			def, ok := definitions.Element(tag)
			require.True(t, ok, "no definition for %s", tag)

			el := ctor(nil)
			assert.Equal(t, tag, el.Name())
			assert.Equal(t, def.HasClosingTag, el.HasClosingTag())
		})
	}
}

func TestByName(t *testing.T) {
	ctor, ok := ByName("rect")
	require.True(t, ok)
	assert.Equal(t, "<rect />", ctor(nil).Render())

	_, ok = ByName("svg")
	assert.False(t, ok)
	_, ok = ByName("marquee")
	assert.False(t, ok)
}

func TestSVGAndStyle(t *testing.T) {
	doc := SVG(Attrs{Width(120), Height(40)},
		Style(nil, "rect{fill:red}"),
		Rect(Attrs{Width(120), Height(40)}),
		Text(Attrs{X(10), Y(25), TextAnchor("start")}, svg.Text("hello")),
	)

	want := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" width="120" height="40">` +
		"<style><![CDATA[\nrect{fill:red}\n]]></style>" +
		`<rect width="120" height="40" />` +
		`<text x="10" y="25" text-anchor="start">hello</text>` +
		`</svg>`
	assert.Equal(t, want, doc.Render())
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		name string
		attr svg.Attr
		key  string
		want string
	}{
		{"id", ID("main"), "id", "main"},
		{"class", Class("a", "b"), "class", "a b"},
		{"data", Data("series", "1"), "data-series", "1"},
		{"fractional", Cx(0.5), "cx", "0.5"},
		{"stroke width", StrokeWidth(2), "stroke-width", "2"},
		{"view box", ViewBox(0, 0, 10, 20), "viewBox", "0 0 10 20"},
		{"xlink", XlinkHref("#a"), "xlink:href", "#a"},
		{"generic", Attribute("k", Num(3)), "k", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.want, tt.attr.Value.String())
		})
	}

	assert.True(t, Bare("hidden").Value.IsBare())
}

func TestHelpers(t *testing.T) {
	points := []int{1, 2, 3}
	g := G(nil, Range(points, func(p int, i int) svg.Content {
		return Circle(Attrs{Cx(p), R(i)})
	}))
	assert.Equal(t, `<g><circle cx="1" r="0" /><circle cx="2" r="1" /><circle cx="3" r="2" /></g>`, g.Render())

	g = G(nil, Repeat(2, func(i int) svg.Content { return Textf("%d;", i) }))
	assert.Equal(t, "<g>0;1;</g>", g.Render())
	assert.Nil(t, Repeat(0, func(int) svg.Content { return nil }))

	g = G(nil, If(false, Rect(nil)), If(true, Escaped("a<b")))
	assert.Equal(t, "<g>a&lt;b</g>", g.Render())
}
