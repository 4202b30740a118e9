// Package middleware provides net/http middleware for the svgkit render
// service.
//
// This package includes:
//   - Prometheus metrics middleware and render counters
//   - OpenTelemetry distributed tracing middleware
//   - A token bucket rate limiter
//
// All middleware has the func(http.Handler) http.Handler shape and plugs
// into a chi router with Use.
//
// # Prometheus Metrics
//
//	m := middleware.NewMetrics(middleware.WithRegistry(reg))
//	r := chi.NewRouter()
//	r.Use(m.Middleware)
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Handlers report renders with m.RecordRender. A nil *Metrics records
// nothing, so callers need not check whether metrics are enabled.
//
// # OpenTelemetry Middleware
//
// Every request gets a server span named after its route:
//
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("svgkit"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// The span context is stored on the request, so handlers and outgoing
// calls made with r.Context() inherit the trace.
//
// # Rate Limiting
//
//	r.Use(middleware.RateLimit(middleware.RateLimitConfig{
//	    RequestsPerSecond: 20,
//	    Burst:             40,
//	}))
package middleware
