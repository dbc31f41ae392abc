// Package wire implements the framed patch protocol between a live
// session and a thin client.
//
// Each message is a frame: a 4-byte header (type, flags, payload length)
// followed by a msgpack payload. The server streams PatchBatch frames
// describing host-tree mutations by node ID; the client sends Event
// frames referencing the node ID and event name of the handler to run.
//
// Recorder adapts the runtime's HostOps to this protocol: it mirrors the
// tree in memory, assigns node IDs, and turns every mutation into a
// Patch ready to batch into a frame.
package wire
