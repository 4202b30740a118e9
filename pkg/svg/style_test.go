package svg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStyleWrapsCDATA(t *testing.T) {
	s := NewStyle(nil, "body{color:red}")

	assert.Equal(t, "<style><![CDATA[\nbody{color:red}\n]]></style>", s.Render())
	assert.Equal(t, "<![CDATA[\nbody{color:red}", s.Content())
}

func TestStyleRenderIdempotent(t *testing.T) {
	s := NewStyle(nil, "a{}")

	first := s.Render()
	second := s.Render()
	assert.Equal(t, first, second)
	assert.Equal(t, 1, strings.Count(second, "]]>"))
	assert.Equal(t, []byte(first), s.Bytes())
}

func TestStyleContentNotEscaped(t *testing.T) {
	s := NewStyle(Attrs{Attribute("type", Str("text/css"))}, `a > b { content: "<&>" }`)

	out := s.Render()
	assert.Contains(t, out, `a > b { content: "<&>" }`)
	assert.True(t, strings.HasPrefix(out, `<style type="text/css"><![CDATA[`))
	requireWellFormed(t, out)
}

func TestStyleFluent(t *testing.T) {
	s := NewStyle(nil, ".a{fill:red}").
		SetAttribute("id", Str("theme")).
		AppendChild(Text(" .b{fill:blue}"))

	assert.Equal(t, "<style id=\"theme\"><![CDATA[\n.a{fill:red} .b{fill:blue}\n]]></style>", s.Render())
}

func TestStyleAsChild(t *testing.T) {
	s := NewStyle(nil, "rect{fill:red}")
	parent := New("defs", true, nil, s)

	assert.Equal(t, "<defs>"+s.Render()+"</defs>", parent.Render())
	assert.Equal(t, 1, strings.Count(parent.Render(), "]]>"))
}

func TestNilStyleContent(t *testing.T) {
	parent := New("defs", true, nil, (*Style)(nil))
	assert.Equal(t, "<defs></defs>", parent.Render())
}
