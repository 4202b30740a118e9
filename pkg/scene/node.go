package scene

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Node is one element of a scene.
type Node struct {
	// Tag is the element name. A node without a tag is a text node and may
	// only carry Text or Raw.
	Tag string `json:"tag,omitempty"`

	// Attrs are applied in order.
	Attrs AttrList `json:"attrs,omitempty"`

	// Style becomes the inline style attribute.
	Style StyleList `json:"style,omitempty"`

	// Text is escaped and placed before the children.
	Text string `json:"text,omitempty"`

	// Raw is inserted verbatim after Text.
	Raw string `json:"raw,omitempty"`

	// CSS is the stylesheet of a style node.
	CSS string `json:"css,omitempty"`

	Children []Node `json:"children,omitempty"`
}

// AttrSpec is a single attribute. Value is a string, a number, a bool or
// nil, as produced by the decoders. JSON numbers arrive as json.Number.
type AttrSpec struct {
	Name  string
	Value any
}

// AttrList is an ordered attribute list. In JSON it is either an object or
// an array of {"name", "value"} objects.
type AttrList []AttrSpec

// StyleSpec is a single inline style declaration.
type StyleSpec struct {
	Property string
	Value    any
}

// StyleList is an ordered list of style declarations. In JSON it is either
// an object or an array of {"property", "value"} objects.
type StyleList []StyleSpec

type pair struct {
	key   string
	value any
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *AttrList) UnmarshalJSON(data []byte) error {
	pairs, err := decodePairs(data, "name")
	if err != nil {
		return fmt.Errorf("attrs: %w", err)
	}
	out := make(AttrList, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, AttrSpec{Name: p.key, Value: p.value})
	}
	*l = out
	return nil
}

// MarshalJSON implements json.Marshaler. The list is written as an object.
func (l AttrList) MarshalJSON() ([]byte, error) {
	pairs := make([]pair, len(l))
	for i, a := range l {
		pairs[i] = pair{a.Name, a.Value}
	}
	return encodePairs(pairs)
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *StyleList) UnmarshalJSON(data []byte) error {
	pairs, err := decodePairs(data, "property")
	if err != nil {
		return fmt.Errorf("style: %w", err)
	}
	out := make(StyleList, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, StyleSpec{Property: p.key, Value: p.value})
	}
	*l = out
	return nil
}

// MarshalJSON implements json.Marshaler. The list is written as an object.
func (l StyleList) MarshalJSON() ([]byte, error) {
	pairs := make([]pair, len(l))
	for i, s := range l {
		pairs[i] = pair{s.Property, s.Value}
	}
	return encodePairs(pairs)
}

// decodePairs reads an object in key order, or an array of objects holding
// keyField and "value".
func decodePairs(data []byte, keyField string) ([]pair, error) {
	trimmed := bytes.TrimSpace(data)
	if bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []map[string]any
		if err := dec.Decode(&items); err != nil {
			return nil, err
		}
		return pairsFromList(items, keyField)
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("expected object or array, got %v", tok)
	}

	var pairs []pair
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, err
		}
		pairs = append(pairs, pair{key, value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return pairs, nil
}

func encodePairs(pairs []pair) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(p.value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func pairsFromList(items []map[string]any, keyField string) ([]pair, error) {
	pairs := make([]pair, 0, len(items))
	for i, item := range items {
		key, ok := item[keyField].(string)
		if !ok || key == "" {
			return nil, fmt.Errorf("entry %d: missing %q", i, keyField)
		}
		pairs = append(pairs, pair{key, item["value"]})
	}
	return pairs, nil
}

// pairsFromAny converts a decoded TOML value: a table (applied in sorted
// key order) or an array of tables / [key, value] arrays.
func pairsFromAny(v any, keyField string) ([]pair, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]pair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, pair{k, v[k]})
		}
		return pairs, nil
	case []any:
		pairs := make([]pair, 0, len(v))
		for i, item := range v {
			switch item := item.(type) {
			case map[string]any:
				key, ok := item[keyField].(string)
				if !ok || key == "" {
					return nil, fmt.Errorf("entry %d: missing %q", i, keyField)
				}
				pairs = append(pairs, pair{key, item["value"]})
			case []any:
				if len(item) != 2 {
					return nil, fmt.Errorf("entry %d: want [%s, value]", i, keyField)
				}
				key, ok := item[0].(string)
				if !ok || key == "" {
					return nil, fmt.Errorf("entry %d: %s must be a string", i, keyField)
				}
				pairs = append(pairs, pair{key, item[1]})
			default:
				return nil, fmt.Errorf("entry %d: unsupported %T", i, item)
			}
		}
		return pairs, nil
	default:
		return nil, fmt.Errorf("expected table or array, got %T", v)
	}
}
