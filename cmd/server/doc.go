// Package main is the entry point for the godisk console server.
//
// The server forwards console scripts to the disk backend one command at a
// time and reconciles the backend output into an explorer model of disks,
// partitions, folders and files.
//
// Architecture:
//
//	Browser console → godisk server → Disk backend (/execute)
//
// The server provides:
//   - REST API for script execution, uploads and explorer queries
//   - WebSocket streaming of per-command progress
//   - Prometheus metrics
//   - Rate limiting and request tracing
//
// Configuration:
//   - Environment variables (12-factor)
//   - Optional TOML file (-config)
//   - CLI flags (override both)
//
// Usage:
//
//	# Production mode
//	./server -port 3000 -backend http://localhost:3001
//
//	# Development mode (colored logs, debug level)
//	./server -dev -config godisk.toml
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
