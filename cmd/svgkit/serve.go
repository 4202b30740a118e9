package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vango-dev/svgkit/internal/config"
	"github.com/vango-dev/svgkit/internal/dev"
	svgerrors "github.com/vango-dev/svgkit/internal/errors"
	"github.com/vango-dev/svgkit/pkg/server"
)

func serveCmd(flags *globalFlags) *cobra.Command {
	var (
		port   int
		host   string
		watch  string
		strict bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the render server",
		Long: `Start the HTTP and WebSocket render server.

With --watch the given scene is re-rendered whenever it or the
configuration changes and pushed to browsers open on /preview.

Routes:
  POST /render      render a scene body to SVG
  POST /validate    list validation problems
  GET  /ws          render scenes sent as WebSocket frames
  GET  /preview     live preview of the watched scene
  GET  /metrics     Prometheus metrics
  GET  /healthz     liveness

Examples:
  svgkit serve
  svgkit serve --port=9000
  svgkit serve --watch badge.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			if port > 0 {
				cfg.Server.Port = port
			}
			if host != "" {
				cfg.Server.Host = host
			}
			if strict {
				cfg.Render.Strict = true
			}
			if watch != "" && !cfg.Server.Preview {
				warn("preview is disabled in the configuration; enabling it for --watch")
				cfg.Server.Preview = true
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, watch, strict)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from configuration)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from configuration)")
	cmd.Flags().StringVarP(&watch, "watch", "w", "", "Scene file to live-preview")
	cmd.Flags().BoolVar(&strict, "strict", false, "Reject unknown elements and attributes")

	return cmd
}

func runServe(ctx context.Context, cfg *config.Config, watch string, strict bool) error {
	printBanner()
	fmt.Fprintln(stdout, "  serve")
	fmt.Fprintln(stdout)

	srv := server.New(server.ConfigFrom(cfg))

	info("Listening on %s", cfg.URL())
	if cfg.MetricsEnabled() {
		info("Metrics at   %s%s", cfg.URL(), cfg.Server.MetricsPath)
	}

	previewErr := make(chan error, 1)
	if watch != "" {
		if _, err := os.Stat(watch); err != nil {
			return svgerrors.New("E100").WithDetail("Could not read " + watch).Wrap(err)
		}
		info("Preview at   %s/preview", cfg.URL())

		preview := &dev.Preview{
			Hub:      srv.Hub(),
			Scene:    watch,
			Extra:    dev.CollectWatchPaths(cfg),
			Render:   dev.SceneRenderer(cfg.Render.Strict),
			Debounce: cfg.Debounce(),
			Metrics:  srv.Metrics(),
		}
		preview.OnConfigChange = reloadRenderer(preview, strict)
		go func() { previewErr <- preview.Run(ctx) }()
	}
	fmt.Fprintln(stdout)

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Run(ctx) }()

	select {
	case err := <-serveErr:
		if err != nil {
			return svgerrors.New("E400").Wrap(err)
		}
		return nil
	case err := <-previewErr:
		if err != nil {
			return svgerrors.New("E400").WithDetail("The scene watcher stopped.").Wrap(err)
		}
		if err := <-serveErr; err != nil {
			return svgerrors.New("E400").Wrap(err)
		}
		return nil
	}
}

// reloadRenderer rebuilds the preview renderer from a changed configuration
// file. A --strict flag stays in effect across reloads.
func reloadRenderer(preview *dev.Preview, strict bool) func(path string) {
	return func(path string) {
		reloaded, err := config.LoadFile(path)
		if err != nil {
			slog.Warn("configuration reload failed", "path", path, "error", err)
			return
		}
		effective := strict || reloaded.Render.Strict
		preview.Render = dev.SceneRenderer(effective)
		slog.Info("configuration reloaded", "path", path, "strict", effective)
	}
}
