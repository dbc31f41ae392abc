package runtime

// HostOps is the renderer's only platform dependency: the primitive
// mutations of the target tree. Host nodes are opaque to the runtime; a
// backend returns whatever node representation it likes and gets it back
// unchanged in later calls.
//
// Implementations: package memhost (in-memory tree for tests and headless
// use), package live (patch recorder for remote thin clients).
type HostOps interface {
	// CreateNode creates an element node. namespace is "" for the default
	// namespace (HTML), or an explicit one such as "svg".
	CreateNode(tag, namespace string) any

	// CreateText creates a text node.
	CreateText(text string) any

	// CreateComment creates a comment node.
	CreateComment(text string) any

	// SetText replaces the content of a text node.
	SetText(node any, text string)

	// SetElementText replaces an element's entire content with text.
	SetElementText(node any, text string)

	// Insert places node under parent, before anchor. A nil anchor
	// appends.
	Insert(node, parent, anchor any)

	// Remove detaches node from its parent.
	Remove(node any)

	// ParentNode returns the parent of node, or nil.
	ParentNode(node any) any

	// NextSibling returns the node after node, or nil.
	NextSibling(node any) any

	// QuerySelector resolves a selector to a host node, or nil. Used for
	// mount targets and teleports.
	QuerySelector(selector string) any

	// PatchProp applies a property/attribute/listener change. prev and
	// next follow the prop's value domain; next == nil removes.
	PatchProp(node any, key string, prev, next any, namespace string)

	// InsertStaticContent inserts a pre-rendered chunk before anchor and
	// returns its first and last top-level nodes, so the runtime can
	// address the range later.
	InsertStaticContent(content string, parent, anchor any) (first, last any)
}
