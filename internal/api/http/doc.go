// Package http provides the HTTP handlers of the console REST API.
//
// Endpoints:
//   - Health: / and /health
//   - Console: /console/execute, /console/upload, /console/output
//   - Explorer: /explorer, /explorer/reconcile, /explorer/refresh,
//     /explorer/disks, /explorer/tree, /explorer/tree/find
//
// Errors are JSON bodies of the form {"error": "..."}. A failed console
// batch also reports the script line and command that failed.
//
// Example Usage:
//
//	handlers := http.NewHandlers(service, client, cfg.Console)
//	handlers.Register(router)
package http
