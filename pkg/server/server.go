package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/svgkit/internal/dev"
	"github.com/vango-dev/svgkit/pkg/middleware"
)

// Server renders scenes for HTTP and WebSocket clients.
type Server struct {
	config   Config
	registry *prometheus.Registry
	metrics  *middleware.Metrics
	hub      *dev.PreviewHub
	upgrader websocket.Upgrader
	handler  http.Handler

	mu         sync.Mutex
	httpServer *http.Server
}

// New creates a new Server with the given configuration.
func New(cfg Config) *Server {
	cfg = cfg.withDefaults()
	cfg.Logger = cfg.Logger.With("component", "server")

	registry := cfg.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	s := &Server{
		config:   cfg,
		registry: registry,
		metrics:  middleware.NewMetrics(middleware.WithRegistry(registry)),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	if cfg.Preview {
		s.hub = dev.NewPreviewHub(dev.WithLogger(cfg.Logger), dev.WithMetrics(s.metrics))
	}
	s.handler = s.routes()
	return s
}

// routes builds the chi router.
func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(s.logRequests)
	r.Use(s.metrics.Middleware)
	if s.config.Tracing {
		r.Use(middleware.OpenTelemetry(middleware.WithTracerProvider(s.config.TracerProvider)))
	}

	r.Get("/healthz", s.handleHealth)
	if s.config.MetricsPath != "" {
		r.Handle(s.config.MetricsPath, promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}))
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: s.config.RateLimit,
			Burst:             s.config.Burst,
			Metrics:           s.metrics,
			OnLimit:           s.handleRateLimited,
		}))
		r.Post("/render", s.handleRender)
		r.Post("/validate", s.handleValidate)
		r.Get("/ws", s.handleWebSocket)
	})

	if s.hub != nil {
		r.Get("/preview", s.handlePreviewPage)
		r.Get("/preview/ws", s.hub.HandleWebSocket)
	}
	return r
}

// Handler returns the HTTP handler, for mounting or tests.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Metrics returns the server metrics.
func (s *Server) Metrics() *middleware.Metrics {
	return s.metrics
}

// Hub returns the preview hub, or nil when preview is disabled.
func (s *Server) Hub() *dev.PreviewHub {
	return s.hub
}

// Config returns the server configuration.
func (s *Server) Config() Config {
	return s.config
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.mu.Lock()
	s.httpServer = httpServer
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.config.Logger.Info("server starting", "address", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.config.Logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server and closes preview clients.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if s.hub != nil {
		s.hub.Close()
	}

	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()
	if httpServer != nil {
		if err := httpServer.Shutdown(ctx); err != nil {
			s.config.Logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.config.Logger.Info("server shutdown complete")
	return nil
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		level := slogLevel(status)
		s.config.Logger.Log(r.Context(), level, "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chimw.GetReqID(r.Context()),
		)
	})
}
