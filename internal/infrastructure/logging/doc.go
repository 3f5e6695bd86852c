// Package logging provides structured logging using uber/zap.
//
// Two modes are available:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Batch-related log lines share the field keys in fields.go so a single
// batch can be followed across the HTTP, WebSocket and explorer layers.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	logger.Info("Batch reconciled", logging.BatchID(id), logging.Lines(n))
//	logger.Error("Backend unreachable", zap.Error(err))
package logging
