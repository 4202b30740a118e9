package errors

import (
	"strings"
	"testing"

	"github.com/vango-dev/svgkit/pkg/scene"
)

func TestFromScene(t *testing.T) {
	if FromScene(nil, "", nil) != nil {
		t.Fatal("nil error should map to nil")
	}

	tests := []struct {
		name  string
		input string
		code  string
	}{
		{"syntax", `{"tag": "svg",}`, "E101"},
		{"root", `{"tag": "g"}`, "E102"},
		{"missing tag", `{"tag": "svg", "children": [{"attrs": {"x": 1}}]}`, "E103"},
		{"invalid value", `{"tag": "svg", "attrs": {"x": [1]}}`, "E105"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := []byte(tt.input)
			root, err := scene.DecodeJSON(data)
			if err == nil {
				_, err = scene.Build(root)
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			got := FromScene(err, "in.json", data)
			if got.Code != tt.code {
				t.Errorf("Code = %q, want %q (%v)", got.Code, tt.code, err)
			}
		})
	}
}

func TestFromScene_SyntaxLocation(t *testing.T) {
	data := []byte("{\n  \"tag\": \"svg\",\n  \"attrs\": {\"x\" 1}\n}")
	_, err := scene.DecodeJSON(data)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	got := FromScene(err, "badge.json", data)
	if got.Location == nil {
		t.Fatal("expected a location")
	}
	if got.Location.File != "badge.json" || got.Location.Line != 3 {
		t.Errorf("Location = %+v, want badge.json line 3", got.Location)
	}
	if len(got.Context) == 0 {
		t.Error("expected context lines")
	}
	if got.Location.Format != "json" {
		t.Errorf("Location.Format = %q, want json", got.Location.Format)
	}
}

func TestFromScene_TOMLLocation(t *testing.T) {
	data := []byte("tag = \"svg\"\ntext = \n")
	_, err := scene.DecodeTOML(data)
	if err == nil {
		t.Fatal("expected a syntax error")
	}
	got := FromScene(err, "badge.toml", data)
	if got.Code != "E101" {
		t.Fatalf("Code = %q, want E101", got.Code)
	}
	if got.Location == nil || got.Location.Line != 2 || got.Location.Format != "toml" {
		t.Errorf("Location = %+v, want badge.toml line 2 (toml)", got.Location)
	}
}

func TestFromScene_Validation(t *testing.T) {
	root, err := scene.DecodeJSON([]byte(`{"tag": "svg", "children": [{"tag": "blink"}, {"tag": "rect", "attrs": {"href": "x"}}]}`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = scene.Build(root, scene.WithStrict())
	if err == nil {
		t.Fatal("expected validation errors")
	}
	got := FromScene(err, "", nil)
	if got.Code != "E110" {
		t.Fatalf("Code = %q, want E110", got.Code)
	}
	if got.Detail != "2 elements failed validation." || got.Suggestion == "" {
		t.Errorf("expected detail and suggestion, got %+v", got)
	}
	want := []Problem{
		{Path: "/svg/blink[0]", Message: "validation: unknown element <blink>"},
		{Path: "/svg/rect[1]", Message: "validation: <rect> attributes not permitted: href"},
	}
	if len(got.Problems) != len(want) {
		t.Fatalf("Problems = %+v, want %+v", got.Problems, want)
	}
	for i := range want {
		if got.Problems[i] != want[i] {
			t.Errorf("Problems[%d] = %+v, want %+v", i, got.Problems[i], want[i])
		}
	}
}

func TestFromScene_StrictContent(t *testing.T) {
	root, err := scene.DecodeJSON([]byte(`{"tag": "svg", "children": [{"tag": "circle", "children": [{"tag": "title", "text": "dot"}]}]}`))
	if err != nil {
		t.Fatal(err)
	}
	_, err = scene.Build(root, scene.WithStrict())
	if err == nil {
		t.Fatal("expected dropped content to be reported")
	}
	got := FromScene(err, "", nil)
	if got.Code != "E110" {
		t.Fatalf("Code = %q, want E110", got.Code)
	}
	if len(got.Problems) != 1 {
		t.Fatalf("Problems = %+v, want one", got.Problems)
	}
	if got.Problems[0].Path != "/svg/circle[0]" || !strings.Contains(got.Problems[0].Message, "children") {
		t.Errorf("Problem = %+v, want the circle and its dropped children", got.Problems[0])
	}
}

func TestFromScene_Unsupported(t *testing.T) {
	_, err := scene.Load("scene.yaml")
	if got := FromScene(err, "scene.yaml", nil); got.Code != "E104" {
		t.Errorf("Code = %q, want E104", got.Code)
	}
}

func TestFromScene_PassesThrough(t *testing.T) {
	orig := New("E402")
	if FromScene(orig, "", nil) != orig {
		t.Error("SvgkitError should be returned unchanged")
	}
}
