package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "svgkit").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "svgkit",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for the render service. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	rendersTotal    *prometheus.CounterVec
	renderedBytes   prometheus.Counter
	rateLimited     prometheus.Counter
	previewClients  prometheus.Gauge
	wsErrors        *prometheus.CounterVec
	publishesTotal  *prometheus.CounterVec
}

// NewMetrics registers the svgkit collectors.
//
// Metrics collected:
//   - svgkit_requests_total: Counter of HTTP requests by route and status code
//   - svgkit_request_duration_seconds: Histogram of request duration by route
//   - svgkit_renders_total: Counter of scene renders by source and status
//   - svgkit_rendered_bytes_total: Counter of SVG bytes produced
//   - svgkit_rate_limited_total: Counter of requests rejected by RateLimit
//   - svgkit_preview_clients: Gauge of connected preview websockets
//   - svgkit_websocket_errors_total: Counter of WebSocket errors by type
//   - svgkit_publishes_total: Counter of object store uploads by status
//
// Registration panics if the collectors are already registered on the
// registry; create one Metrics per registry.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "requests_total",
			Help:        "Total number of HTTP requests handled",
			ConstLabels: config.ConstLabels,
		}, []string{"route", "code"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"route"}),

		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of scene renders",
			ConstLabels: config.ConstLabels,
		}, []string{"source", "status"}),

		renderedBytes: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rendered_bytes_total",
			Help:        "Total number of SVG bytes rendered",
			ConstLabels: config.ConstLabels,
		}),

		rateLimited: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "rate_limited_total",
			Help:        "Total number of requests rejected by the rate limiter",
			ConstLabels: config.ConstLabels,
		}),

		previewClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "preview_clients",
			Help:        "Number of connected preview WebSocket clients",
			ConstLabels: config.ConstLabels,
		}),

		wsErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "websocket_errors_total",
			Help:        "Total WebSocket errors by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		publishesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "publishes_total",
			Help:        "Total number of object store uploads",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),
	}
}

// Prometheus creates middleware that records request counts and durations
// on a fresh Metrics.
//
// Example:
//
//	r := chi.NewRouter()
//	r.Use(middleware.Prometheus(middleware.WithNamespace("diagrams")))
//	r.Handle("/metrics", promhttp.Handler())
func Prometheus(opts ...MetricsOption) func(http.Handler) http.Handler {
	return NewMetrics(opts...).Middleware
}

// Middleware records a request count and duration labelled with the chi
// route pattern, so path parameters do not inflate cardinality.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		route := routePattern(r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	})
}

// routePattern returns the matched chi pattern, or "other" for requests
// that did not match a route.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "other"
}

// =============================================================================
// Metrics Recording Functions
// =============================================================================

// RecordRender records one render from source ("http", "ws", "watch").
// size is the rendered length; it is ignored when err is non-nil.
func (m *Metrics) RecordRender(source string, size int, err error) {
	if m == nil {
		return
	}
	if err != nil {
		m.rendersTotal.WithLabelValues(source, "error").Inc()
		return
	}
	m.rendersTotal.WithLabelValues(source, "success").Inc()
	m.renderedBytes.Add(float64(size))
}

// RecordRateLimited records a request rejected by the rate limiter.
func (m *Metrics) RecordRateLimited() {
	if m != nil {
		m.rateLimited.Inc()
	}
}

// RecordPreviewConnect records a preview client connecting.
func (m *Metrics) RecordPreviewConnect() {
	if m != nil {
		m.previewClients.Inc()
	}
}

// RecordPreviewDisconnect records a preview client disconnecting.
func (m *Metrics) RecordPreviewDisconnect() {
	if m != nil {
		m.previewClients.Dec()
	}
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	if m != nil {
		m.wsErrors.WithLabelValues(errorType).Inc()
	}
}

// RecordPublish records an upload attempt.
func (m *Metrics) RecordPublish(err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.publishesTotal.WithLabelValues(status).Inc()
}
