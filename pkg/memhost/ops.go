package memhost

import (
	"fmt"
	"strings"
)

// Counters tallies tree mutations by kind. Tests snapshot, patch, and
// compare to assert how much work a reconciliation actually did.
type Counters struct {
	CreateElement  int
	CreateText     int
	CreateComment  int
	SetText        int
	SetElementText int
	Insert         int
	Remove         int
	PatchProp      int
	InsertStatic   int
}

// Total sums every mutation counter.
func (c Counters) Total() int {
	return c.CreateElement + c.CreateText + c.CreateComment +
		c.SetText + c.SetElementText + c.Insert + c.Remove +
		c.PatchProp + c.InsertStatic
}

// Document is a standalone in-memory tree with a body node to mount
// into and an Ops backend over it.
type Document struct {
	root *Node
	body *Node
	ops  *Ops
}

// NewDocument creates an empty document: <html><body></body></html>.
func NewDocument() *Document {
	root := newElement("html", "")
	body := newElement("body", "")
	body.Parent = root
	root.children = append(root.children, body)
	d := &Document{root: root, body: body}
	d.ops = &Ops{doc: d}
	return d
}

// Body returns the document's body node, the usual mount container.
func (d *Document) Body() *Node {
	return d.body
}

// Root returns the document's root element.
func (d *Document) Root() *Node {
	return d.root
}

// Ops returns the HostOps backend over this document.
func (d *Document) Ops() *Ops {
	return d.ops
}

// Ops implements runtime.HostOps over a Document's tree.
type Ops struct {
	doc      *Document
	counters Counters
}

// Counters returns the mutation tallies since the last Reset.
func (o *Ops) Counters() Counters {
	return o.counters
}

// ResetCounters zeroes the mutation tallies.
func (o *Ops) ResetCounters() {
	o.counters = Counters{}
}

func (o *Ops) CreateNode(tag, namespace string) any {
	o.counters.CreateElement++
	return newElement(tag, namespace)
}

func (o *Ops) CreateText(text string) any {
	o.counters.CreateText++
	return &Node{Kind: KindText, Text: text}
}

func (o *Ops) CreateComment(text string) any {
	o.counters.CreateComment++
	return &Node{Kind: KindComment, Text: text}
}

func (o *Ops) SetText(node any, text string) {
	o.counters.SetText++
	node.(*Node).Text = text
}

func (o *Ops) SetElementText(node any, text string) {
	o.counters.SetElementText++
	el := node.(*Node)
	for _, c := range el.children {
		c.Parent = nil
	}
	el.children = nil
	if text != "" {
		t := &Node{Kind: KindText, Text: text, Parent: el}
		el.children = append(el.children, t)
	}
}

func (o *Ops) Insert(node, parent, anchor any) {
	o.counters.Insert++
	var anchorNode *Node
	if anchor != nil {
		anchorNode = anchor.(*Node)
	}
	parent.(*Node).insertBefore(node.(*Node), anchorNode)
}

func (o *Ops) Remove(node any) {
	o.counters.Remove++
	n := node.(*Node)
	if n.Parent != nil {
		n.Parent.removeChild(n)
	}
}

func (o *Ops) ParentNode(node any) any {
	if node == nil {
		return nil
	}
	p := node.(*Node).Parent
	if p == nil {
		return nil
	}
	return p
}

func (o *Ops) NextSibling(node any) any {
	n := node.(*Node)
	if n.Parent == nil {
		return nil
	}
	i := n.Parent.indexOf(n)
	if i < 0 || i+1 >= len(n.Parent.children) {
		return nil
	}
	return n.Parent.children[i+1]
}

// QuerySelector supports the selectors the runtime itself uses: "#id",
// ".class", and plain tag names. First match in document order wins.
func (o *Ops) QuerySelector(selector string) any {
	if selector == "" {
		return nil
	}
	match := selectorMatcher(selector)
	if found := findNode(o.doc.root, match); found != nil {
		return found
	}
	return nil
}

func (o *Ops) PatchProp(node any, key string, prev, next any, namespace string) {
	o.counters.PatchProp++
	el := node.(*Node)

	if strings.HasPrefix(key, "on") {
		if next == nil {
			delete(el.Listeners, key)
			return
		}
		el.Listeners[key] = next
		return
	}

	switch v := next.(type) {
	case nil:
		delete(el.Attrs, key)
	case bool:
		if v {
			el.Attrs[key] = ""
		} else {
			delete(el.Attrs, key)
		}
	case string:
		el.Attrs[key] = v
	default:
		el.Attrs[key] = fmt.Sprint(v)
	}
}

func (o *Ops) InsertStaticContent(content string, parent, anchor any) (first, last any) {
	o.counters.InsertStatic++
	n := &Node{Kind: KindRaw, Text: content}
	var anchorNode *Node
	if anchor != nil {
		anchorNode = anchor.(*Node)
	}
	parent.(*Node).insertBefore(n, anchorNode)
	return n, n
}

func selectorMatcher(selector string) func(*Node) bool {
	switch {
	case strings.HasPrefix(selector, "#"):
		id := selector[1:]
		return func(n *Node) bool {
			return n.Kind == KindElement && n.Attrs["id"] == id
		}
	case strings.HasPrefix(selector, "."):
		class := selector[1:]
		return func(n *Node) bool {
			if n.Kind != KindElement {
				return false
			}
			for _, c := range strings.Fields(n.Attrs["class"]) {
				if c == class {
					return true
				}
			}
			return false
		}
	default:
		return func(n *Node) bool {
			return n.Kind == KindElement && n.Tag == selector
		}
	}
}

func findNode(n *Node, match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := findNode(c, match); found != nil {
			return found
		}
	}
	return nil
}
