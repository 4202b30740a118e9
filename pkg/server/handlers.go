package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vango-dev/svgkit/internal/dev"
	svgerrors "github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/pkg/scene"
	"github.com/vango-dev/svgkit/pkg/svg"
)

// SVGContentType is the media type of rendered documents.
const SVGContentType = "image/svg+xml"

// requestInput names request bodies in error locations.
const requestInput = "request"

// Problem is one validation failure reported by /validate.
type Problem struct {
	Path  string `json:"path,omitempty"`
	Error string `json:"error"`
}

// ValidateResponse is the body returned by /validate.
type ValidateResponse struct {
	Valid    bool      `json:"valid"`
	Problems []Problem `json:"problems"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handlePreviewPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.WriteString(w, dev.PreviewPage)
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, http.StatusTooManyRequests, svgerrors.New("E401"))
}

// handleRender renders a scene body. ?declaration=1 prefixes the XML
// declaration and ?strict=1 enables validation for this request.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	data, format, ok := s.readScene(w, r)
	if !ok {
		return
	}

	doc, err := s.build(data, format, s.config.Strict || queryBool(r, "strict"))
	if err != nil {
		s.metrics.RecordRender("http", 0, err)
		e := svgerrors.FromScene(err, requestInput, data)
		s.writeError(w, statusFor(e), e)
		return
	}

	out := doc.Render()
	if queryBool(r, "declaration") {
		out = doc.File()
	}
	s.metrics.RecordRender("http", len(out), nil)

	w.Header().Set("Content-Type", SVGContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, out)
}

// handleValidate builds the scene in strict mode and lists every problem.
// Malformed scenes are errors; well-formed scenes that fail validation are
// reported with valid=false.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	data, format, ok := s.readScene(w, r)
	if !ok {
		return
	}

	root, err := scene.Decode(data, format)
	if err != nil {
		e := svgerrors.FromScene(err, requestInput, data)
		s.writeError(w, statusFor(e), e)
		return
	}

	resp := ValidateResponse{Valid: true, Problems: []Problem{}}
	if _, err := scene.Build(root, scene.WithStrict()); err != nil {
		resp.Valid = false
		for _, p := range scene.Problems(err) {
			resp.Problems = append(resp.Problems, problemFrom(p))
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// readScene reads a size-limited body and picks its format. It writes the
// error response itself and returns false on failure.
func (s *Server) readScene(w http.ResponseWriter, r *http.Request) ([]byte, scene.Format, bool) {
	format, err := scene.FormatFromMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		s.writeError(w, http.StatusUnsupportedMediaType, svgerrors.New("E104").Wrap(err))
		return nil, "", false
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, svgerrors.New("E402").
				WithDetail("The scene exceeds "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes."))
			return nil, "", false
		}
		s.writeError(w, http.StatusBadRequest, svgerrors.New("E100").Wrap(err))
		return nil, "", false
	}
	return data, format, true
}

// build decodes and builds a scene.
func (s *Server) build(data []byte, format scene.Format, strict bool) (*svg.Document, error) {
	root, err := scene.Decode(data, format)
	if err != nil {
		return nil, err
	}
	var opts []scene.Option
	if strict {
		opts = append(opts, scene.WithStrict())
	}
	return scene.Build(root, opts...)
}

func (s *Server) writeError(w http.ResponseWriter, status int, e *svgerrors.SvgkitError) {
	if status >= http.StatusInternalServerError {
		s.config.Logger.Error("request failed", "code", e.Code, "error", e)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, e.FormatJSON())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps an error code to an HTTP status.
func statusFor(e *svgerrors.SvgkitError) int {
	switch e.Code {
	case "E104":
		return http.StatusUnsupportedMediaType
	case "E110":
		return http.StatusUnprocessableEntity
	case "E401":
		return http.StatusTooManyRequests
	case "E402":
		return http.StatusRequestEntityTooLarge
	}
	if e.Category == svgerrors.CategoryScene {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func problemFrom(err error) Problem {
	var nodeErr *scene.NodeError
	if errors.As(err, &nodeErr) {
		return Problem{Path: nodeErr.Path, Error: nodeErr.Err.Error()}
	}
	return Problem{Error: err.Error()}
}

func queryBool(r *http.Request, name string) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get(name))
	return err == nil && v
}

func slogLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
