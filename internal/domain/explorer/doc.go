// Package explorer keeps the explorer model in sync with backend output.
//
// A Model pairs the disk registry with the directory tree. The Engine folds
// one batch of output text into a model: it classifies every line, applies
// the recognized events in order to a deep copy of the previous model and
// returns the copy with a Report. The previous model is never touched, so a
// caller that fails halfway through a batch simply keeps what it had.
//
// Successive batches accumulate: each one is reconciled against the running
// model, not replayed from an empty one.
//
// Service is the stateful front used by the HTTP, WebSocket and CLI
// surfaces. It runs scripts through a Runner, reconciles their output and
// admits a single writer at a time; a second submission while one is in
// flight fails with ErrBusy.
package explorer
