package server

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/svgkit/internal/config"
)

// Config holds server settings.
type Config struct {
	// Address is the address to listen on.
	// Default: "localhost:8080".
	Address string

	// Strict validates every scene before rendering.
	Strict bool

	// MaxBodyBytes caps request bodies and websocket frames.
	// Default: 1MB.
	MaxBodyBytes int64

	// RateLimit is the sustained requests per second for render routes.
	// Zero disables rate limiting.
	RateLimit float64

	// Burst is the number of requests allowed above RateLimit.
	Burst int

	// MetricsPath mounts the Prometheus handler. Empty disables it.
	MetricsPath string

	// Tracing wraps requests in OpenTelemetry spans.
	Tracing bool

	// TracerProvider is used when Tracing is set. Defaults to the global
	// provider.
	TracerProvider trace.TracerProvider

	// Preview mounts /preview and /preview/ws.
	Preview bool

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds reading request headers.
	// Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// Registry collects the server metrics. A new registry with Go and
	// process collectors is created when nil.
	Registry *prometheus.Registry

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address:           "localhost:8080",
		MaxBodyBytes:      config.DefaultMaxBodyBytes,
		MetricsPath:       config.DefaultMetricsPath,
		Preview:           true,
		ShutdownTimeout:   10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// ConfigFrom maps a loaded svgkit configuration onto server settings.
func ConfigFrom(c *config.Config) Config {
	cfg := DefaultConfig()
	cfg.Address = c.Address()
	cfg.Strict = c.Render.Strict
	cfg.MaxBodyBytes = c.Server.MaxBodyBytes
	cfg.RateLimit = c.Server.RateLimit
	cfg.Burst = c.Server.Burst
	cfg.MetricsPath = c.Server.MetricsPath
	if !c.MetricsEnabled() {
		cfg.MetricsPath = ""
	}
	cfg.Tracing = c.Server.Tracing
	cfg.Preview = c.Server.Preview
	cfg.ShutdownTimeout = c.ShutdownTimeout()
	return cfg
}

// withDefaults fills in unset fields.
func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaults.MaxBodyBytes
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout == 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
