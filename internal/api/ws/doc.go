// Package ws streams console batches over WebSocket.
//
// A client submits a script and receives one message per executed command
// followed by the reconciled explorer model, so long scripts show progress
// as they run.
//
// Message Types (Client → Server):
//   - execute: Run {"script"} against the backend
//   - reconcile: Apply raw backend {"output"}
//   - snapshot: Request the current model
//   - ping: Keep-alive ping
//
// Message Types (Server → Client):
//   - system: Welcome message carrying the connection_id
//   - line: One executed command with its output
//   - model: Reconciled model, batch_id and report
//   - error: Failure; code is "busy" when another batch is running and
//     "remote" with line/command when a backend command failed
//   - pong: Reply to ping
//
// Example Usage:
//
//	handler := ws.NewHandler(service)
//	router.GET("/stream", handler.HandleConnection)
package ws
