// This file defines composition helpers for building content.
package el

import (
	"fmt"

	"github.com/vango-dev/svgkit/pkg/svg"
)

// Textf creates text content from a format string.
func Textf(format string, args ...any) svg.Text {
	return svg.Text(fmt.Sprintf(format, args...))
}

// Escaped creates text content with markup characters escaped.
func Escaped(s string) svg.Text {
	return svg.Text(svg.EscapeText(s))
}

// If returns c when condition holds, nil otherwise. Nil content renders as
// nothing.
func If(condition bool, c svg.Content) svg.Content {
	if condition {
		return c
	}
	return nil
}

// Range maps items to content.
func Range[T any](items []T, fn func(item T, index int) svg.Content) svg.Group {
	out := make(svg.Group, 0, len(items))
	for i, item := range items {
		out = append(out, fn(item, i))
	}
	return out
}

// Repeat calls fn n times.
func Repeat(n int, fn func(i int) svg.Content) svg.Group {
	if n <= 0 {
		return nil
	}
	out := make(svg.Group, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fn(i))
	}
	return out
}
