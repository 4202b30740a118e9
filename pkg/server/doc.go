// Package server exposes scene rendering over HTTP and WebSocket.
//
// Routes:
//
//	POST /render     scene body (JSON or TOML by Content-Type) -> image/svg+xml
//	POST /validate   scene body -> {"valid": bool, "problems": [...]}
//	GET  /healthz    liveness
//	GET  /metrics    Prometheus metrics (path configurable)
//	GET  /ws         each text frame is a scene, each reply the rendered SVG
//	GET  /preview    live preview page, fed by /preview/ws
//
// Errors are written as JSON using the registered error codes:
//
//	{"code":"E101","category":"scene","message":"Scene syntax error",...}
//
// A Server is created with New and started with Run, which shuts down
// gracefully when its context is cancelled:
//
//	srv := server.New(server.ConfigFrom(cfg))
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
