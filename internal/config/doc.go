// Package config loads svgkit project configuration.
//
// The configuration lives in svgkit.toml or svgkit.json at the project root.
// Both formats share one schema; TOML keys are snake_case, JSON keys are
// camelCase.
//
// # Configuration File Structure
//
//	[server]
//	host = "0.0.0.0"
//	port = 8080
//	rate_limit = 20.0
//	burst = 40
//	metrics_path = "/metrics"
//	tracing = true
//	preview = true
//	shutdown_timeout = "10s"
//
//	[render]
//	output = "out/diagram.svg"
//	strict = true
//
//	[publish]
//	bucket = "assets"
//	prefix = "diagrams"
//	region = "eu-west-1"
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
