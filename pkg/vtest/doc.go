// Package vtest provides testing helpers for Tide components.
//
// A Harness mounts a component into an in-memory host, so tests can
// trigger events, flush the scheduler, and assert on the serialized
// tree without a browser or a WebSocket connection.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.Mount(t, NewCounter())
//	    h.ExpectContains("0")
//	    h.Click("button")
//	    h.ExpectContains("1")
//	}
//
// # Events
//
// Click and Trigger resolve a host node by selector (#id, .class, or
// tag), route the event through the renderer's invoker table exactly
// like a live session would, and flush pending effects before
// returning:
//
//	h.Trigger("input", "oninput", map[string]any{"value": "tide"})
//
// # Assertions
//
// ExpectContains and friends assert on the HTML serialization of the
// mounted tree. Query returns the raw host node for structural checks.
package vtest
