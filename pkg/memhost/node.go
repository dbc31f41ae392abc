package memhost

import (
	"fmt"
	"sort"
	"strings"
)

// NodeKind discriminates the node types of the in-memory tree.
type NodeKind uint8

const (
	KindElement NodeKind = iota
	KindText
	KindComment
	// KindRaw is a pre-rendered chunk inserted through
	// InsertStaticContent; its text serializes unescaped.
	KindRaw
)

// Node is one node of the in-memory host tree. Fields are exported for
// test assertions; mutate only through Ops so the counters stay honest.
type Node struct {
	Kind      NodeKind
	Tag       string
	Namespace string
	Text      string
	Attrs     map[string]string

	// Listeners holds attached event handlers by event prop name
	// ("onclick"). Values are whatever PatchProp received.
	Listeners map[string]any

	Parent   *Node
	children []*Node
}

func newElement(tag, namespace string) *Node {
	return &Node{
		Kind:      KindElement,
		Tag:       tag,
		Namespace: namespace,
		Attrs:     make(map[string]string),
		Listeners: make(map[string]any),
	}
}

// Children returns the node's children in order.
func (n *Node) Children() []*Node {
	return n.children
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Attr returns the named attribute value and whether it is set.
func (n *Node) Attr(name string) (string, bool) {
	v, ok := n.Attrs[name]
	return v, ok
}

// TextContent concatenates the text of the node and its descendants.
func (n *Node) TextContent() string {
	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	switch n.Kind {
	case KindText:
		b.WriteString(n.Text)
	case KindElement:
		for _, c := range n.children {
			c.writeText(b)
		}
	}
}

// HTML serializes the node's children to an HTML-like string. Attributes
// come out sorted so the output is deterministic.
func (n *Node) HTML() string {
	var b strings.Builder
	for _, c := range n.children {
		c.writeHTML(&b)
	}
	return b.String()
}

// OuterHTML serializes the node itself, including its own tag.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	switch n.Kind {
	case KindText:
		b.WriteString(escapeHTML(n.Text))
	case KindRaw:
		b.WriteString(n.Text)
	case KindComment:
		b.WriteString("<!--")
		b.WriteString(n.Text)
		b.WriteString("-->")
	case KindElement:
		b.WriteByte('<')
		b.WriteString(n.Tag)

		keys := make([]string, 0, len(n.Attrs))
		for key := range n.Attrs {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			fmt.Fprintf(b, ` %s="%s"`, key, escapeAttr(n.Attrs[key]))
		}

		if isVoidElement(n.Tag) && len(n.children) == 0 {
			b.WriteString(">")
			return
		}
		b.WriteByte('>')
		for _, c := range n.children {
			c.writeHTML(b)
		}
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteByte('>')
	}
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

func (n *Node) insertBefore(child, anchor *Node) {
	if child.Parent != nil {
		child.Parent.removeChild(child)
	}
	child.Parent = n
	if anchor == nil {
		n.children = append(n.children, child)
		return
	}
	i := n.indexOf(anchor)
	if i < 0 {
		n.children = append(n.children, child)
		return
	}
	n.children = append(n.children[:i], append([]*Node{child}, n.children[i:]...)...)
}

func (n *Node) removeChild(child *Node) {
	i := n.indexOf(child)
	if i < 0 {
		return
	}
	n.children = append(n.children[:i], n.children[i+1:]...)
	child.Parent = nil
}

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

func isVoidElement(tag string) bool {
	return voidElements[tag]
}

func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '"':
			buf.WriteString("&quot;")
		case '<':
			buf.WriteString("&lt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
