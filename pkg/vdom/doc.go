// Package vdom defines the virtual node model of the Tide runtime: the
// closed VKind union, patch-flag bitmask, and the block tree builder that
// records which nodes in a render are dynamic so the reconciler can skip
// static structure entirely.
//
// Nodes are immutable for the render pass that created them. The previous
// pass's tree is retained by the owning component until the next patch
// completes, then discarded.
package vdom
