package vtest

import (
	"strings"
	"testing"

	"github.com/tideui/tide/pkg/memhost"
	"github.com/tideui/tide/pkg/runtime"
	"github.com/tideui/tide/pkg/vdom"
)

// Harness drives a mounted component tree from a test.
type Harness struct {
	t   *testing.T
	doc *memhost.Document
	app *runtime.App
}

// Mount mounts a component into a fresh in-memory document and flushes
// the initial render. The tree is unmounted automatically when the test
// finishes.
//
// Example:
//
//	h := vtest.Mount(t, NewDashboard())
//	h.ExpectContains("Welcome")
func Mount(t *testing.T, root vdom.Component, opts ...runtime.AppOption) *Harness {
	t.Helper()

	doc := memhost.NewDocument()
	app := runtime.NewApp(doc.Ops(), root, opts...)
	app.Mount(doc.Body())
	app.FlushSync()

	h := &Harness{t: t, doc: doc, app: app}
	t.Cleanup(h.Unmount)
	return h
}

// App returns the underlying application handle.
func (h *Harness) App() *runtime.App {
	return h.app
}

// Document returns the in-memory host document.
func (h *Harness) Document() *memhost.Document {
	return h.doc
}

// Flush drains dispatched closures and pending effects.
func (h *Harness) Flush() {
	h.app.FlushSync()
}

// Unmount tears the tree down. Safe to call more than once.
func (h *Harness) Unmount() {
	h.app.Unmount()
}

// HTML returns the serialized contents of the mount container.
func (h *Harness) HTML() string {
	return h.doc.Body().HTML()
}

// Query resolves a host node by #id, .class, or tag selector, or nil.
func (h *Harness) Query(selector string) *memhost.Node {
	n, _ := h.doc.Ops().QuerySelector(selector).(*memhost.Node)
	return n
}

// MustQuery is Query that fails the test on a miss.
func (h *Harness) MustQuery(selector string) *memhost.Node {
	h.t.Helper()
	n := h.Query(selector)
	if n == nil {
		h.t.Fatalf("no node matches %q in:\n%s", selector, truncate(h.HTML(), 500))
	}
	return n
}

// Click triggers the click handler on the first node matching selector
// and flushes.
//
// Example:
//
//	h.Click("#save")
func (h *Harness) Click(selector string) {
	h.t.Helper()
	h.Trigger(selector, "onclick")
}

// Trigger routes an event through the renderer's invoker table, exactly
// as a live session dispatches client events, then flushes.
//
// Example:
//
//	h.Trigger("input", "oninput", map[string]any{"value": "tide"})
func (h *Harness) Trigger(selector, event string, payload ...any) {
	h.t.Helper()
	node := h.MustQuery(selector)
	invoker := h.app.Renderer().InvokerFor(node, event)
	if invoker == nil {
		h.t.Fatalf("node %q has no %s handler", selector, event)
	}
	invoker.Call(payload...)
	h.app.FlushSync()
}

// Counters returns the host mutation counters, for asserting that an
// update touched exactly the nodes it should have.
func (h *Harness) Counters() memhost.Counters {
	return h.doc.Ops().Counters()
}

// ResetCounters zeroes the mutation counters, typically right after
// Mount so assertions cover only the update under test.
func (h *Harness) ResetCounters() {
	h.doc.Ops().ResetCounters()
}

// ExpectContains asserts that the rendered output contains expected.
//
// Example:
//
//	h.ExpectContains("Welcome Admin")
func (h *Harness) ExpectContains(expected string) {
	h.t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		h.t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered output does not contain
// unexpected.
func (h *Harness) ExpectNotContains(unexpected string) {
	h.t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		h.t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that the rendered output contains a tag.
func (h *Harness) ExpectElement(tag string) {
	h.t.Helper()
	html := h.HTML()
	if !strings.Contains(html, "<"+tag) {
		h.t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that the rendered output contains an
// attribute value.
//
// Example:
//
//	h.ExpectAttribute("class", "btn-primary")
func (h *Harness) ExpectAttribute(attr, value string) {
	h.t.Helper()
	html := h.HTML()
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		h.t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// RenderToString mounts a throwaway component rendering node and
// returns the HTML, for asserting on static markup without a harness.
func RenderToString(node *vdom.VNode) string {
	doc := memhost.NewDocument()
	app := runtime.NewApp(doc.Ops(), vdom.Func(func() *vdom.VNode { return node }))
	app.Mount(doc.Body())
	app.FlushSync()
	defer app.Unmount()
	return doc.Body().HTML()
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
