// Package server wires the godisk HTTP service together.
//
// This package orchestrates all components:
//   - Backend client with retries, rate limiting and a circuit breaker
//   - Explorer service holding the reconciled disk and tree model
//   - Middleware stack (recovery, request IDs, tracing, access log, metrics, CORS, rate limiting)
//   - REST routes, the /stream WebSocket and the /metrics endpoint
//   - Optional gzip response compression
//
// Server Lifecycle:
//  1. Load configuration from environment, file and flags
//  2. Build logger and metrics registry
//  3. Create backend client, runner and explorer service
//  4. Register routes and middleware
//  5. Serve until Shutdown is called
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	defer srv.Shutdown(ctx)
package server
