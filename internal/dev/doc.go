// Package dev provides the live preview used by "svgkit serve --watch".
//
// This package implements:
//   - File watching for scene and configuration files (fsnotify)
//   - WebSocket-based browser refresh
//   - An error overlay in the browser
//
// # Architecture
//
//   - Watcher: reports debounced changes to a set of files
//   - PreviewHub: pushes rendered documents to browsers via WebSocket
//   - Preview: re-renders a scene on change and feeds the hub
//
// # Usage
//
//	hub := dev.NewPreviewHub(dev.WithLogger(logger))
//	p := &dev.Preview{
//	    Hub:    hub,
//	    Scene:  "diagram.toml",
//	    Render: dev.SceneRenderer(false),
//	}
//	go p.Run(ctx)
//
// # Preview Protocol
//
// The browser loads /preview and connects to /preview/ws. Messages are
// JSON-encoded:
//
//	{"type": "svg", "svg": "<svg ...>", "file": "diagram.toml"}
//	{"type": "error", "error": "...", "file": "diagram.toml"}
//
// A client that connects late receives the most recent message at once.
package dev
