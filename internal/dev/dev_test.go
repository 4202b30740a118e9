package dev

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/svgkit/internal/config"
)

func dialHub(t *testing.T, hub *PreviewHub) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	require.Eventually(t, func() bool { return hub.ClientCount() > 0 }, time.Second, 10*time.Millisecond)
	return conn
}

func readMessage(t *testing.T, conn *websocket.Conn) PreviewMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg PreviewMessage
	require.NoError(t, json.Unmarshal(data, &msg))
	return msg
}

func TestPreviewHub_Broadcast(t *testing.T) {
	hub := NewPreviewHub()
	conn := dialHub(t, hub)

	hub.Broadcast("a.json", "<svg></svg>")
	msg := readMessage(t, conn)
	assert.Equal(t, PreviewTypeSVG, msg.Type)
	assert.Equal(t, "<svg></svg>", msg.SVG)
	assert.Equal(t, "a.json", msg.File)

	hub.BroadcastError("a.json", errors.New("bad scene"))
	msg = readMessage(t, conn)
	assert.Equal(t, PreviewTypeError, msg.Type)
	assert.Equal(t, "bad scene", msg.Error)
}

func TestPreviewHub_ReplaysLastMessage(t *testing.T) {
	hub := NewPreviewHub()
	hub.Broadcast("late.json", "<svg>late</svg>")

	conn := dialHub(t, hub)
	msg := readMessage(t, conn)
	assert.Equal(t, "<svg>late</svg>", msg.SVG)
}

func TestPreviewHub_ConnectDuringBroadcast(t *testing.T) {
	hub := NewPreviewHub()
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	t.Cleanup(srv.Close)

	// Hold the lock the way an in-flight broadcast does.
	hub.writeMu.Lock()
	hub.last = []byte(`{"type":"svg","svg":"<svg>first</svg>"}`)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	assert.Never(t, func() bool { return hub.ClientCount() > 0 }, 100*time.Millisecond, 10*time.Millisecond,
		"client registered while a broadcast was in flight")
	hub.writeMu.Unlock()

	msg := readMessage(t, conn)
	assert.Equal(t, "<svg>first</svg>", msg.SVG)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	hub.Broadcast("a.json", "<svg>second</svg>")
	msg = readMessage(t, conn)
	assert.Equal(t, "<svg>second</svg>", msg.SVG)
}

func TestPreviewHub_Close(t *testing.T) {
	hub := NewPreviewHub()
	dialHub(t, hub)
	require.Equal(t, 1, hub.ClientCount())

	hub.Close()
	assert.Equal(t, 0, hub.ClientCount())
}

func TestPreviewHub_NoClients(t *testing.T) {
	hub := NewPreviewHub()
	assert.Equal(t, 0, hub.ClientCount())
	hub.Broadcast("x.json", "<svg/>") // must not block or panic
}

func TestPreviewMessage_JSON(t *testing.T) {
	data, err := json.Marshal(PreviewMessage{Type: PreviewTypeError, Error: "boom"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","error":"boom"}`, string(data))
}

func TestPreviewPage(t *testing.T) {
	assert.Contains(t, PreviewPage, "/preview/ws")
	assert.Contains(t, PreviewPage, "case 'svg'")
	assert.Contains(t, PreviewPage, "case 'error'")
}

func TestWatcher_ReportsWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"tag":"svg"}`), 0644))

	w := NewWatcher(WatcherConfig{Paths: []string{file}, Debounce: 50 * time.Millisecond})
	changes := make(chan Change, 10)
	w.OnChange(func(c Change) { changes <- c })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, w.IsRunning, time.Second, 10*time.Millisecond)
	// fsnotify registration happens just after running is set.
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(file, []byte(`{"tag":"svg","text":"x"}`), 0644))

	select {
	case c := <-changes:
		assert.Equal(t, ChangeScene, c.Type)
		assert.Equal(t, file, c.Path)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}

	// Writes to other files in the same directory are ignored.
	other := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(other, []byte("{}"), 0644))
	deadline := time.After(150 * time.Millisecond)
	for waiting := true; waiting; {
		select {
		case c := <-changes:
			assert.NotEqual(t, other, c.Path)
		case <-deadline:
			waiting = false
		}
	}

	w.Stop()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
	assert.False(t, w.IsRunning())
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(file, []byte("tag = \"svg\"\n"), 0644))

	changes := make(chan Change, 10)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go Watch(ctx, file, 150*time.Millisecond, func(c Change) { changes <- c })
	time.Sleep(100 * time.Millisecond)

	for i := range 5 {
		require.NoError(t, os.WriteFile(file, []byte("tag = \"svg\"\ntext = \""+strings.Repeat("x", i)+"\"\n"), 0644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-changes:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change")
	}
	select {
	case c := <-changes:
		t.Fatalf("burst should be reported once, got extra %+v", c)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcher_Ignore(t *testing.T) {
	w := NewWatcher(WatcherConfig{})
	tests := []struct {
		path   string
		ignore bool
	}{
		{"/x/scene.json", false},
		{"/x/scene.json.swp", true},
		{"/x/scene.json~", true},
		{"/x/.#scene.json", true},
		{"/x/a.tmp", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ignore, w.shouldIgnore(tt.path), tt.path)
	}
}

func TestClassifyChange(t *testing.T) {
	assert.Equal(t, ChangeScene, classifyChange("/a/scene.json"))
	assert.Equal(t, ChangeConfig, classifyChange("/a/svgkit.toml"))
	assert.Equal(t, ChangeConfig, classifyChange("/a/SVGKIT.json"))
	assert.Equal(t, "removed", ChangeRemoved.String())
	assert.Equal(t, "ChangeType(9)", ChangeType(9).String())
}

func TestCollectWatchPaths(t *testing.T) {
	dir := t.TempDir()
	cfg := config.New()
	require.NoError(t, cfg.SaveTo(filepath.Join(dir, config.TOMLFileName)))

	scene := filepath.Join(dir, "a.json")
	paths := CollectWatchPaths(cfg, scene, scene, "")
	assert.Equal(t, []string{scene, filepath.Join(dir, config.TOMLFileName)}, paths)

	assert.Equal(t, []string{scene}, CollectWatchPaths(nil, scene))
}

func TestSceneRenderer(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"tag":"svg","children":[{"tag":"blink"}]}`), 0644))

	out, err := SceneRenderer(false)(file)
	require.NoError(t, err)
	assert.Contains(t, out, "<blink></blink>")

	_, err = SceneRenderer(true)(file)
	assert.Error(t, err)

	_, err = SceneRenderer(false)(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestPreview_Refresh(t *testing.T) {
	hub := NewPreviewHub()
	conn := dialHub(t, hub)

	fail := false
	p := &Preview{
		Hub:   hub,
		Scene: "/scenes/badge.json",
		Render: func(path string) (string, error) {
			if fail {
				return "", errors.New("broken")
			}
			return "<svg>" + filepath.Base(path) + "</svg>", nil
		},
	}

	p.Refresh()
	msg := readMessage(t, conn)
	assert.Equal(t, "<svg>badge.json</svg>", msg.SVG)
	assert.Equal(t, "badge.json", msg.File)

	fail = true
	p.Refresh()
	msg = readMessage(t, conn)
	assert.Equal(t, PreviewTypeError, msg.Type)
	assert.Equal(t, "broken", msg.Error)
}
