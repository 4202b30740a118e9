package dev

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/vango-dev/svgkit/pkg/middleware"
	"github.com/vango-dev/svgkit/pkg/scene"
)

// Renderer turns a scene file into SVG markup.
type Renderer func(path string) (string, error)

// SceneRenderer returns a Renderer that loads and builds a scene file.
func SceneRenderer(strict bool) Renderer {
	return func(path string) (string, error) {
		root, err := scene.Load(path)
		if err != nil {
			return "", err
		}
		var opts []scene.Option
		if strict {
			opts = append(opts, scene.WithStrict())
		}
		doc, err := scene.Build(root, opts...)
		if err != nil {
			return "", err
		}
		return doc.Render(), nil
	}
}

// Preview re-renders a scene whenever it (or the configuration) changes and
// pushes the result to a PreviewHub.
type Preview struct {
	Hub      *PreviewHub
	Scene    string
	Extra    []string
	Render   Renderer
	Debounce time.Duration
	Logger   *slog.Logger
	Metrics  *middleware.Metrics

	// OnConfigChange is called when a watched configuration file changes.
	OnConfigChange func(path string)
}

// Refresh renders the scene once and broadcasts the result.
func (p *Preview) Refresh() {
	name := filepath.Base(p.Scene)
	start := time.Now()
	svg, err := p.Render(p.Scene)
	p.Metrics.RecordRender("watch", len(svg), err)
	if err != nil {
		p.logger().Warn("render failed", "scene", p.Scene, "error", err)
		p.Hub.BroadcastError(name, err)
		return
	}
	p.logger().Info("rendered", "scene", p.Scene, "bytes", len(svg), "duration", time.Since(start))
	p.Hub.Broadcast(name, svg)
}

// Run renders once, then watches until ctx is cancelled.
func (p *Preview) Run(ctx context.Context) error {
	p.Refresh()

	w := NewWatcher(WatcherConfig{
		Paths:    append([]string{p.Scene}, p.Extra...),
		Debounce: p.Debounce,
		Logger:   p.logger(),
	})
	w.OnChange(func(c Change) {
		switch c.Type {
		case ChangeRemoved:
			p.logger().Warn("watched file removed", "path", c.Path)
		case ChangeConfig:
			if p.OnConfigChange != nil {
				p.OnConfigChange(c.Path)
			}
			p.Refresh()
		default:
			p.Refresh()
		}
	})

	err := w.Start(ctx)
	if err == context.Canceled {
		return nil
	}
	return err
}

func (p *Preview) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}
