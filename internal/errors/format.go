package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

const (
	ansiReset = "\033[0m"
	ansiRed   = "\033[31m"
	ansiCyan  = "\033[36m"
	ansiGray  = "\033[90m"
	ansiBold  = "\033[1m"
)

var colorEnabled = true

// DisableColors turns off ANSI colors in Format.
func DisableColors() { colorEnabled = false }

// EnableColors turns ANSI colors in Format back on.
func EnableColors() { colorEnabled = true }

func paint(code, text string) string {
	if !colorEnabled || text == "" {
		return text
	}
	return code + text + ansiReset
}

// detailWidth is the column at which Detail is wrapped.
const detailWidth = 70

// Format renders the error for a terminal. Sections appear only when the
// error carries them: the scene source around Location, the problem list,
// then detail, hint, example and cause.
func (e *SvgkitError) Format() string {
	var b strings.Builder
	b.WriteString("\n")
	e.writeHeader(&b)
	e.writeSource(&b)
	e.writeProblems(&b)

	if lines := wrapText(e.Detail, detailWidth); len(lines) > 0 {
		for _, line := range lines {
			fmt.Fprintf(&b, "  %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "  %s%s\n\n", paint(ansiCyan, "Hint: "), e.Suggestion)
	}
	if e.Example != "" {
		fmt.Fprintf(&b, "  %s\n", paint(ansiCyan, "Example:"))
		for _, line := range strings.Split(e.Example, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		b.WriteString("\n")
	}
	if e.Wrapped != nil && len(e.Problems) == 0 {
		fmt.Fprintf(&b, "  %s%s\n", paint(ansiGray, "Cause: "), e.Wrapped.Error())
	}
	return b.String()
}

func (e *SvgkitError) writeHeader(b *strings.Builder) {
	label := "ERROR: "
	if e.Code != "" {
		label = "ERROR " + e.Code + ": "
	}
	b.WriteString(paint(ansiRed+ansiBold, label))
	b.WriteString(e.Message)
	b.WriteString("\n\n")
}

// writeSource prints the location and, when the input was available, the
// numbered lines around it with a caret under the column.
func (e *SvgkitError) writeSource(b *strings.Builder) {
	if e.Location == nil {
		return
	}
	where := e.Location.String()
	if e.Location.Format != "" {
		where += " (" + e.Location.Format + ")"
	}
	fmt.Fprintf(b, "  %s\n\n", paint(ansiCyan, where))
	if len(e.Context) == 0 {
		return
	}

	for i, line := range e.Context {
		n := e.ContextStart + i
		if n != e.Location.Line {
			fmt.Fprintf(b, "    %4d %s %s\n", n, paint(ansiGray, "│"), line)
			continue
		}
		fmt.Fprintf(b, "  %s%4d %s %s\n", paint(ansiRed, "→ "), n, paint(ansiGray, "│"), line)
		if col := e.Location.Column; col > 0 {
			fmt.Fprintf(b, "         %s %s%s\n", paint(ansiGray, "│"), strings.Repeat(" ", col-1), paint(ansiRed, "^"))
		}
	}
	b.WriteString("\n")
}

// writeProblems prints one aligned line per scene node.
func (e *SvgkitError) writeProblems(b *strings.Builder) {
	if len(e.Problems) == 0 {
		return
	}
	width := 0
	for _, p := range e.Problems {
		width = max(width, len(problemPath(p)))
	}
	for _, p := range e.Problems {
		path := problemPath(p)
		pad := strings.Repeat(" ", width-len(path))
		fmt.Fprintf(b, "    %s%s  %s\n", paint(ansiCyan, path), pad, p.Message)
	}
	b.WriteString("\n")
}

func problemPath(p Problem) string {
	if p.Path == "" {
		return "-"
	}
	return p.Path
}

// FormatCompact returns a single line: location, code, message and, for
// validation errors, the problem count.
func (e *SvgkitError) FormatCompact() string {
	var b strings.Builder
	if e.Location != nil {
		b.WriteString(e.Location.String())
		b.WriteString(": ")
	}
	if e.Code != "" {
		b.WriteString(e.Code)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	switch n := len(e.Problems); n {
	case 0:
	case 1:
		fmt.Fprintf(&b, " (%s: %s)", problemPath(e.Problems[0]), e.Problems[0].Message)
	default:
		fmt.Fprintf(&b, " (%d problems)", n)
	}
	return b.String()
}

type jsonLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column,omitempty"`
	Format string `json:"format,omitempty"`
}

type jsonError struct {
	Code       string        `json:"code,omitempty"`
	Category   Category      `json:"category"`
	Message    string        `json:"message"`
	Detail     string        `json:"detail,omitempty"`
	Location   *jsonLocation `json:"location,omitempty"`
	Problems   []Problem     `json:"problems,omitempty"`
	Suggestion string        `json:"suggestion,omitempty"`
	Cause      string        `json:"cause,omitempty"`
}

// FormatJSON returns the error as a single-line JSON object. Markup in
// messages is not HTML-escaped.
func (e *SvgkitError) FormatJSON() string {
	out := jsonError{
		Code:       e.Code,
		Category:   e.Category,
		Message:    e.Message,
		Detail:     e.Detail,
		Problems:   e.Problems,
		Suggestion: e.Suggestion,
	}
	if l := e.Location; l != nil {
		out.Location = &jsonLocation{File: l.File, Line: l.Line, Column: l.Column, Format: l.Format}
	}
	if e.Wrapped != nil {
		out.Cause = e.Wrapped.Error()
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Sprintf(`{"code":%q,"message":"unencodable error"}`, e.Code)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// wrapText breaks text into lines of at most width characters at word
// boundaries. Explicit newlines are kept.
func wrapText(text string, width int) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		if len(para) <= width {
			if para != "" || len(lines) > 0 {
				lines = append(lines, para)
			}
			continue
		}
		var current strings.Builder
		for _, word := range strings.Fields(para) {
			if current.Len() > 0 && current.Len()+1+len(word) > width {
				lines = append(lines, current.String())
				current.Reset()
			}
			if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(word)
		}
		if current.Len() > 0 {
			lines = append(lines, current.String())
		}
	}
	return lines
}

// Fprint writes err to w, using Format for registered errors.
func Fprint(w io.Writer, err error) {
	if se, ok := err.(*SvgkitError); ok {
		fmt.Fprint(w, se.Format())
		return
	}
	fmt.Fprintf(w, "\n%s%s\n\n", paint(ansiRed+ansiBold, "ERROR: "), err.Error())
}

// PrintError writes err to stderr.
func PrintError(err error) {
	Fprint(os.Stderr, err)
}
