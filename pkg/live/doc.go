// Package live serves reactive component trees to remote thin clients
// over WebSocket.
//
// Each connection gets a Session: its own Recorder-backed renderer, a
// single event loop goroutine, and a patch stream. The client sends
// Event frames (node ID + event name); the session runs the handler on
// its loop, flushes the effect queue, and streams the resulting host
// mutations back as a PatchBatch frame. All component code for a session
// runs on that one goroutine.
//
// Server wires the sessions into an HTTP server with chi routing,
// Prometheus metrics, and OpenTelemetry spans around event dispatch.
package live
