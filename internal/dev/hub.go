package dev

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/svgkit/pkg/middleware"
)

// PreviewMessageType represents the type of preview message.
type PreviewMessageType string

const (
	PreviewTypeSVG   PreviewMessageType = "svg"
	PreviewTypeError PreviewMessageType = "error"
)

// PreviewMessage is sent to browsers via WebSocket.
type PreviewMessage struct {
	Type  PreviewMessageType `json:"type"`
	SVG   string             `json:"svg,omitempty"`
	Error string             `json:"error,omitempty"`
	File  string             `json:"file,omitempty"`
}

// PreviewHub manages WebSocket connections for live preview. The latest
// message is replayed to clients when they connect.
type PreviewHub struct {
	clients  map[*websocket.Conn]bool
	mu       sync.RWMutex
	writeMu  sync.Mutex
	last     []byte
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *middleware.Metrics
}

// HubOption configures a PreviewHub.
type HubOption func(*PreviewHub)

// WithLogger sets the hub logger.
func WithLogger(logger *slog.Logger) HubOption {
	return func(h *PreviewHub) {
		h.logger = logger
	}
}

// WithMetrics reports client counts and socket errors to m.
func WithMetrics(m *middleware.Metrics) HubOption {
	return func(h *PreviewHub) {
		h.metrics = m
	}
}

// NewPreviewHub creates a new preview hub.
func NewPreviewHub(opts ...HubOption) *PreviewHub {
	h := &PreviewHub{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true // Local preview only
			},
		},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (h *PreviewHub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.metrics.RecordWebSocketError("upgrade")
		h.logger.Debug("preview upgrade failed", "error", err)
		return
	}

	// Registration and replay share the broadcast lock, so a client sees
	// each message exactly once.
	h.writeMu.Lock()
	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()
	if h.last != nil {
		if err := conn.WriteMessage(websocket.TextMessage, h.last); err != nil {
			h.metrics.RecordWebSocketError("write")
		}
	}
	h.writeMu.Unlock()
	h.metrics.RecordPreviewConnect()
	h.logger.Debug("preview client connected", "remote", req.RemoteAddr)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(conn)
}

// Broadcast sends a rendered document to all clients.
func (h *PreviewHub) Broadcast(file, svg string) {
	h.broadcast(PreviewMessage{Type: PreviewTypeSVG, SVG: svg, File: file})
}

// BroadcastError sends a render error to all clients.
func (h *PreviewHub) BroadcastError(file string, err error) {
	h.broadcast(PreviewMessage{Type: PreviewTypeError, Error: err.Error(), File: file})
}

// broadcast sends a message to all connected clients.
func (h *PreviewHub) broadcast(msg PreviewMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	h.last = data

	h.mu.RLock()
	clients := make([]*websocket.Conn, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			h.metrics.RecordWebSocketError("write")
			h.remove(client)
		}
	}
}

// remove drops and closes a client once.
func (h *PreviewHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()

	if ok {
		h.metrics.RecordPreviewDisconnect()
		conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *PreviewHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *PreviewHub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*websocket.Conn]bool)
	h.mu.Unlock()

	for client := range clients {
		h.metrics.RecordPreviewDisconnect()
		client.Close()
	}
}

// PreviewPage is the HTML page served at /preview. It connects to
// /preview/ws and swaps in each rendered document.
const PreviewPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>svgkit preview</title>
<style>
body { margin: 0; font-family: sans-serif; background: #f4f4f4; }
#stage { display: flex; align-items: center; justify-content: center; min-height: 100vh; }
#error { display: none; position: fixed; inset: 0; background: rgba(0,0,0,0.9); color: #fff; font-family: monospace; padding: 20px; white-space: pre-wrap; }
</style>
</head>
<body>
<div id="stage"></div>
<pre id="error"></pre>
<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;
    var stage = document.getElementById('stage');
    var overlay = document.getElementById('error');

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + '/preview/ws');

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }

            switch (msg.type) {
                case 'svg':
                    overlay.style.display = 'none';
                    stage.innerHTML = msg.svg;
                    break;

                case 'error':
                    overlay.textContent = (msg.file ? msg.file + '\n\n' : '') + msg.error;
                    overlay.style.display = 'block';
                    break;
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    connect();
})();
</script>
</body>
</html>
`
