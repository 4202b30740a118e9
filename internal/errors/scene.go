package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/vango-dev/svgkit/pkg/scene"
	"github.com/vango-dev/svgkit/pkg/svg/definitions"
)

// FromScene converts an error from loading, decoding or building a scene
// into a registered error. data is the raw scene input, used to locate JSON
// syntax errors; file names the input in the location.
func FromScene(err error, file string, data []byte) *SvgkitError {
	if err == nil {
		return nil
	}
	var se *SvgkitError
	if stderrors.As(err, &se) {
		return se
	}

	var syntax *scene.SyntaxError
	if stderrors.As(err, &syntax) {
		e := New("E101").Wrap(syntax.Err)
		switch {
		case syntax.Offset >= 0 && data != nil:
			e.WithOffset(file, data, syntax.Offset)
		case syntax.Line > 0 && data != nil:
			e.Location = &Location{File: file, Line: syntax.Line, Column: syntax.Column}
			e.Context, e.ContextStart = contextLines(strings.Split(string(data), "\n"), syntax.Line, 5)
		case syntax.Line > 0:
			e.WithLocation(file, syntax.Line, syntax.Column)
		}
		if e.Location != nil {
			e.Location.Format = string(syntax.Format)
		}
		return e
	}

	var validation *definitions.ValidationError
	if stderrors.As(err, &validation) ||
		stderrors.Is(err, scene.ErrContentDropped) ||
		stderrors.Is(err, scene.ErrChildNotPermitted) {
		e := New("E110").
			WithSuggestion("Fix the listed elements or render without --strict.").
			Wrap(err)
		for _, p := range scene.Problems(err) {
			var nodeErr *scene.NodeError
			if stderrors.As(p, &nodeErr) {
				e.WithProblem(nodeErr.Path, nodeErr.Err.Error())
				continue
			}
			e.WithProblem("", p.Error())
		}
		if n := len(e.Problems); n == 1 {
			e.Detail = "1 element failed validation."
		} else {
			e.Detail = fmt.Sprintf("%d elements failed validation.", n)
		}
		return e
	}

	switch {
	case stderrors.Is(err, scene.ErrUnsupportedFormat):
		return New("E104").Wrap(err)
	case stderrors.Is(err, scene.ErrRootNotSVG):
		return New("E102").Wrap(err).WithExample(`{"tag": "svg", "attrs": {"width": 100}}`)
	case stderrors.Is(err, scene.ErrMissingTag):
		return New("E103").Wrap(err)
	case stderrors.Is(err, scene.ErrInvalidValue):
		return New("E105").Wrap(err)
	}
	return New("E100").Wrap(err)
}
