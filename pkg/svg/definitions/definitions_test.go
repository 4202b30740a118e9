package definitions

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/svgkit/pkg/svg"
)

func TestValidateAcceptsKnownAttributes(t *testing.T) {
	el := svg.New("circle", false, svg.Attrs{
		svg.Attribute("cx", svg.Num(1)),
		svg.Attribute("r", svg.Num(2)),
		svg.Attribute("fill", svg.Str("red")),
		svg.Attribute("data-series", svg.Str("a")),
		svg.Attribute("aria-label", svg.Str("point")),
	})

	assert.NoError(t, Validate(el))
}

func TestValidateUnknownElement(t *testing.T) {
	err := Validate(svg.New("blink", true, nil))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.True(t, verr.UnknownElement)
	assert.Equal(t, "validation: unknown element <blink>", err.Error())
}

func TestValidateAttributeNotPermitted(t *testing.T) {
	el := svg.New("rect", false, svg.Attrs{
		svg.Attribute("width", svg.Num(1)),
		svg.Attribute("r", svg.Num(2)),
		svg.Attribute("text-anchor", svg.Str("middle")),
	})

	err := Validate(el)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"r", "text-anchor"}, verr.Attributes)
	assert.Contains(t, err.Error(), "attributes not permitted: r, text-anchor")
}

func TestValidateEnumeratedValues(t *testing.T) {
	el := svg.New("text", true, svg.Attrs{
		svg.Attribute("text-anchor", svg.Str("center")),
		svg.Attribute("stroke-linecap", svg.Str("round")),
	})

	err := Validate(el)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Empty(t, verr.Attributes)
	assert.Equal(t, []string{"text-anchor=center"}, verr.Values)
}

func TestValidateNil(t *testing.T) {
	assert.NoError(t, Validate(nil))
}

func TestValidateDocumentAndStyle(t *testing.T) {
	doc := svg.Create(nil).Width(svg.Num(10)).ViewBox("0 0 1 1")
	assert.NoError(t, Validate(doc.Element))

	style := svg.NewStyle(svg.Attrs{svg.Attribute("type", svg.Str("text/css"))}, "a{}")
	assert.NoError(t, Validate(style.Element))
}

func TestIsPermitted(t *testing.T) {
	tests := []struct {
		element string
		attr    string
		want    bool
	}{
		{"circle", "cx", true},
		{"circle", "d", false},
		{"g", "transform", true},
		{"g", "data-anything", true},
		{"text", "text-anchor", true},
		{"rect", "text-anchor", false},
		{"linearGradient", "gradientUnits", true},
		{"rect", "gradientUnits", false},
		{"unknown", "id", true},
		{"unknown", "cx", false},
	}

	for _, tt := range tests {
		t.Run(tt.element+"/"+tt.attr, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPermitted(tt.element, tt.attr))
		})
	}
}

func TestPermitsChild(t *testing.T) {
	tests := []struct {
		parent string
		child  string
		want   bool
	}{
		{"svg", "circle", true},
		{"g", "g", true},
		{"text", "tspan", true},
		{"text", "rect", false},
		{"linearGradient", "stop", true},
		{"linearGradient", "circle", false},
		{"circle", "title", false},
		{"rect", "g", false},
		{"style", "g", false},
		{"title", "g", false},
		{"foreignObject", "circle", true},
		{"svg", "feGaussianBlur", true},
		{"unknown", "circle", true},
	}

	for _, tt := range tests {
		t.Run(tt.parent+"/"+tt.child, func(t *testing.T) {
			assert.Equal(t, tt.want, PermitsChild(tt.parent, tt.child))
		})
	}
}

func TestLookupsReturnCopies(t *testing.T) {
	def, ok := Element("circle")
	require.True(t, ok)
	def.PermittedAttributes[0] = "mutated"

	again, _ := Element("circle")
	assert.Equal(t, "cx", again.PermittedAttributes[0])

	_, ok = Element("nope")
	assert.False(t, ok)

	attr, ok := Attribute("spreadMethod")
	require.True(t, ok)
	assert.True(t, attr.Enumerated)
	assert.Equal(t, []string{"linearGradient", "radialGradient"}, attr.ValidOnElements)
}

func TestElementNamesSorted(t *testing.T) {
	names := ElementNames()
	assert.Contains(t, names, "svg")
	assert.IsNonDecreasing(t, names)
}
