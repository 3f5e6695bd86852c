// Package config provides 12-factor configuration management for the console
// service.
//
// Configuration is loaded from environment variables with defaults. An
// optional TOML file, given with -config, is applied on top of the
// environment, and CLI flags in cmd/server override both.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host, gzip, shutdown timeout)
//   - Backend: disk backend URL, timeout, retries, rate and breaker threshold
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//   - Console: script size and line limits
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
//
// Example file:
//
//	[backend]
//	url = "http://disks.internal:3001"
//	timeout = "5s"
//
//	[rate_limit]
//	enabled = false
package config
