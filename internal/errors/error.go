package errors

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Category represents the type of error.
type Category string

const (
	CategoryScene      Category = "scene"
	CategoryValidation Category = "validation"
	CategoryConfig     Category = "config"
	CategoryRender     Category = "render"
	CategoryPublish    Category = "publish"
	CategoryServer     Category = "server"
	CategoryCLI        Category = "cli"
)

// Location represents a position in an input file.
type Location struct {
	File   string
	Line   int
	Column int

	// Format names the input syntax, "json" or "toml", when known.
	Format string
}

// Problem is one issue found on a scene node. Path locates the node, as in
// /svg/g[0]/rect[2].
type Problem struct {
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
}

// String returns the location as a formatted string.
func (l *Location) String() string {
	if l == nil {
		return ""
	}
	if l.Column > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// SvgkitError is a structured error with an optional input location and hint.
type SvgkitError struct {
	// Code is a unique error identifier (e.g., "E101").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Location is the input position where the error occurred.
	Location *Location

	// Context contains the input lines around Location, starting at
	// line ContextStart.
	Context      []string
	ContextStart int

	// Problems lists per-node issues in document order.
	Problems []Problem

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Example shows the correct input.
	Example string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SvgkitError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = e.Code + ": " + msg
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SvgkitError) Unwrap() error {
	return e.Wrapped
}

// WithLocation adds a file location and reads the surrounding lines.
func (e *SvgkitError) WithLocation(file string, line, column int) *SvgkitError {
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.ContextStart = readContextLines(file, line, 5)
	return e
}

// WithOffset adds a location computed from a byte offset into data, as
// reported by decoders. The context lines are taken from data.
func (e *SvgkitError) WithOffset(file string, data []byte, offset int64) *SvgkitError {
	if offset < 0 || offset > int64(len(data)) {
		return e
	}
	before := data[:offset]
	line := bytes.Count(before, []byte{'\n'}) + 1
	column := int(offset) - bytes.LastIndexByte(before, '\n')
	e.Location = &Location{File: file, Line: line, Column: column}
	e.Context, e.ContextStart = contextLines(strings.Split(string(data), "\n"), line, 5)
	return e
}

// WithProblem appends a per-node issue.
func (e *SvgkitError) WithProblem(path, message string) *SvgkitError {
	e.Problems = append(e.Problems, Problem{Path: path, Message: message})
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SvgkitError) WithSuggestion(s string) *SvgkitError {
	e.Suggestion = s
	return e
}

// WithExample adds an example of correct input.
func (e *SvgkitError) WithExample(ex string) *SvgkitError {
	e.Example = ex
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SvgkitError) WithDetail(d string) *SvgkitError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SvgkitError) Wrap(err error) *SvgkitError {
	e.Wrapped = err
	return e
}

// readContextLines reads lines around the specified line number from a file.
func readContextLines(filename string, targetLine, contextSize int) ([]string, int) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, 0
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if len(lines) > targetLine+contextSize/2 {
			break
		}
	}
	return contextLines(lines, targetLine, contextSize)
}

// contextLines returns the window of lines centered on targetLine and the
// 1-based number of its first line.
func contextLines(lines []string, targetLine, contextSize int) ([]string, int) {
	start := targetLine - contextSize/2
	end := targetLine + contextSize/2
	if start < 1 {
		start = 1
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start > end {
		return nil, 0
	}
	return lines[start-1 : end], start
}

// New creates an SvgkitError from a registered error code.
func New(code string) *SvgkitError {
	template, ok := registry[code]
	if !ok {
		return &SvgkitError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SvgkitError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		Detail:   template.Detail,
	}
}

// Newf creates a new SvgkitError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SvgkitError {
	return &SvgkitError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an SvgkitError.
func FromError(err error, code string) *SvgkitError {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SvgkitError); ok {
		return se
	}
	return New(code).Wrap(err)
}
