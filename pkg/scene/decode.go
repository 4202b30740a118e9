package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Format identifies a scene encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// ErrUnsupportedFormat is returned for unknown file extensions and media
// types.
var ErrUnsupportedFormat = errors.New("scene: unsupported format")

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// FormatFromMediaType picks the format from a Content-Type header. An empty
// header means JSON.
func FormatFromMediaType(contentType string) (Format, error) {
	if contentType == "" {
		return FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedFormat, err)
	}
	switch mt {
	case "application/json", "text/json":
		return FormatJSON, nil
	case "application/toml", "text/toml", "application/x-toml":
		return FormatTOML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, mt)
}

// SyntaxError reports a scene that could not be decoded. Line and Column
// are 1-based; Offset is the byte offset for JSON input and -1 for TOML.
type SyntaxError struct {
	Format Format
	Offset int64
	Line   int
	Column int
	Err    error
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("scene: %s:%d:%d: %v", e.Format, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("scene: %s: %v", e.Format, e.Err)
}

// Unwrap returns the decoder error.
func (e *SyntaxError) Unwrap() error { return e.Err }

// Load reads a scene file, choosing the decoder by extension.
func Load(path string) (Node, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Node{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Node{}, fmt.Errorf("scene: %w", err)
	}
	return Decode(data, format)
}

// Read decodes a scene from r.
func Read(r io.Reader, format Format) (Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Node{}, fmt.Errorf("scene: %w", err)
	}
	return Decode(data, format)
}

// Decode decodes data in the given format.
func Decode(data []byte, format Format) (Node, error) {
	switch format {
	case FormatJSON:
		return DecodeJSON(data)
	case FormatTOML:
		return DecodeTOML(data)
	}
	return Node{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// DecodeJSON decodes a JSON scene. Unknown fields are rejected.
func DecodeJSON(data []byte) (Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var n Node
	if err := dec.Decode(&n); err != nil {
		offset := dec.InputOffset()
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.As(err, &syntaxErr):
			offset = syntaxErr.Offset
		case errors.As(err, &typeErr):
			offset = typeErr.Offset
		case errors.Is(err, io.EOF):
			err = io.ErrUnexpectedEOF
		}
		return Node{}, jsonSyntaxError(data, offset, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Node{}, jsonSyntaxError(data, dec.InputOffset(), errors.New("unexpected data after scene"))
	}
	return n, nil
}

func jsonSyntaxError(data []byte, offset int64, err error) *SyntaxError {
	line, column := position(data, offset)
	return &SyntaxError{Format: FormatJSON, Offset: offset, Line: line, Column: column, Err: err}
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, column int) {
	if offset < 0 {
		return 0, 0
	}
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte{'\n'}) + 1
	column = int(offset) - bytes.LastIndexByte(before, '\n')
	return line, column
}

// tomlNode mirrors Node with untyped attribute and style fields so that
// both tables and arrays are accepted.
type tomlNode struct {
	Tag      string     `toml:"tag"`
	Attrs    any        `toml:"attrs"`
	Style    any        `toml:"style"`
	Text     string     `toml:"text"`
	Raw      string     `toml:"raw"`
	CSS      string     `toml:"css"`
	Children []tomlNode `toml:"children"`
}

// DecodeTOML decodes a TOML scene. The document itself is the root node.
func DecodeTOML(data []byte) (Node, error) {
	var raw tomlNode
	err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&raw)
	if err != nil {
		serr := &SyntaxError{Format: FormatTOML, Offset: -1, Err: err}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			serr.Line, serr.Column = decodeErr.Position()
		}
		return Node{}, serr
	}
	n, err := raw.node(childPath("", raw.Tag, -1))
	if err != nil {
		return Node{}, &SyntaxError{Format: FormatTOML, Offset: -1, Err: err}
	}
	return n, nil
}

func (t tomlNode) node(path string) (Node, error) {
	attrs, err := pairsFromAny(t.Attrs, "name")
	if err != nil {
		return Node{}, fmt.Errorf("%s: attrs: %w", path, err)
	}
	style, err := pairsFromAny(t.Style, "property")
	if err != nil {
		return Node{}, fmt.Errorf("%s: style: %w", path, err)
	}

	n := Node{Tag: t.Tag, Text: t.Text, Raw: t.Raw, CSS: t.CSS}
	for _, p := range attrs {
		n.Attrs = append(n.Attrs, AttrSpec{Name: p.key, Value: p.value})
	}
	for _, p := range style {
		n.Style = append(n.Style, StyleSpec{Property: p.key, Value: p.value})
	}
	for i, c := range t.Children {
		child, err := c.node(childPath(path, c.Tag, i))
		if err != nil {
			return Node{}, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}
