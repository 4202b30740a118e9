package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	svgerrors "github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/pkg/scene"
)

const wsWriteTimeout = 10 * time.Second

// handleWebSocket renders each text frame as a scene. Replies are the SVG
// markup on success or an error JSON object. The scene format is taken
// from ?format= and defaults to JSON.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	format := scene.FormatJSON
	if f := r.URL.Query().Get("format"); f != "" {
		format = scene.Format(f)
		if format != scene.FormatJSON && format != scene.FormatTOML {
			s.writeError(w, http.StatusBadRequest, svgerrors.New("E104").
				WithDetail("format must be json or toml"))
			return
		}
	}
	strict := s.config.Strict || queryBool(r, "strict")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.metrics.RecordWebSocketError("upgrade")
		s.config.Logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()
	conn.SetReadLimit(s.config.MaxBodyBytes)

	for {
		typ, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.metrics.RecordWebSocketError("read")
				s.config.Logger.Debug("websocket read failed", "error", err)
			}
			return
		}
		if typ != websocket.TextMessage {
			continue
		}

		reply := s.renderFrame(data, format, strict)
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			s.metrics.RecordWebSocketError("write")
			return
		}
	}
}

func (s *Server) renderFrame(data []byte, format scene.Format, strict bool) string {
	doc, err := s.build(data, format, strict)
	if err != nil {
		s.metrics.RecordRender("ws", 0, err)
		return svgerrors.FromScene(err, "frame", data).FormatJSON()
	}
	out := doc.Render()
	s.metrics.RecordRender("ws", len(out), nil)
	return out
}
