// Package runtime is the reconciler of the Tide runtime: it diffs virtual
// node trees from package vdom and applies the minimal mutation sequence to
// a host tree through the pluggable HostOps interface. It also owns the
// component lifecycle: every component's render function runs inside a
// reactive effect whose re-runs are batched through package scheduler.
//
// The closed loop: a signal write marks the component's render effect
// dirty; the scheduler flushes it; the effect re-invokes Render; the
// renderer patches the previous subtree against the new one, re-reading
// reactive state and thereby re-establishing subscriptions for the next
// cycle.
package runtime
