/*
Package monitoring provides Prometheus metrics for the console service.

# Overview

Metrics are registered against an explicit prometheus.Registerer so tests
can build as many collectors as they need on throwaway registries. The server
passes the default registerer and exposes it on /metrics.

# Metrics

- HTTP requests (count, latency, sizes) labelled by route template
- Console batches by outcome and their duration
- Backend command round-trips and breaker state
- Reconciliation: lines scanned, unrecognized lines, events applied by kind
- Explorer model size (disks, partitions, folders, files)
- WebSocket connections and messages
- Uptime

# Usage

	metrics := monitoring.NewMetrics(prometheus.DefaultRegisterer)
	router.Use(monitoring.Middleware(metrics))

	timer := monitoring.NewTimer(metrics)
	// ... call the backend ...
	timer.Stop("success")

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
*/
package monitoring
