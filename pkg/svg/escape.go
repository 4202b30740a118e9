package svg

import "strings"

// EscapeAttr escapes a value for inclusion in a double-quoted attribute.
// Only the double quote is replaced; the rest of the value is kept as is.
func EscapeAttr(s string) string {
	if !strings.ContainsRune(s, '"') {
		return s
	}
	return strings.ReplaceAll(s, `"`, "&quot;")
}

// escapeStyle prepares a CSS property or value for the style attribute.
// Declarations live inside a double-quoted attribute, so double quotes are
// turned into single quotes rather than entities.
func escapeStyle(s string) string {
	return strings.ReplaceAll(s, `"`, "'")
}

// EscapeText escapes text for safe inclusion as element content.
// The core never calls it; content is inserted verbatim unless the caller
// escapes it first.
func EscapeText(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
