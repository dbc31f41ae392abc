package vdom

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Text creates a static text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// TextDyn creates a text node flagged as dynamic, registering it with the
// innermost open block.
func TextDyn(content string) *VNode {
	node := &VNode{
		Kind:      KindText,
		Text:      content,
		PatchFlag: FlagText,
	}
	trackDynamic(node)
	return node
}

// Textf creates a formatted dynamic text node.
func Textf(format string, args ...any) *VNode {
	return TextDyn(fmt.Sprintf(format, args...))
}

// Comment creates a comment node. Comments double as placeholders for
// absent conditional branches and unresolved async components.
func Comment(text string) *VNode {
	return &VNode{
		Kind: KindComment,
		Text: text,
	}
}

// Static creates a static content node holding a pre-rendered chunk.
// The content hash is computed once here; patching compares hashes, never
// payloads.
func Static(content string) *VNode {
	return &VNode{
		Kind:       KindStatic,
		Text:       content,
		StaticHash: xxhash.Sum64String(content),
	}
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	return newFragment(0, children)
}

// FragmentFlagged creates a fragment with an explicit patch flag
// (FlagStableFragment, FlagKeyedFragment, FlagUnkeyedFragment).
func FragmentFlagged(flag PatchFlag, children ...any) *VNode {
	return newFragment(flag, children)
}

func newFragment(flag PatchFlag, children []any) *VNode {
	node := &VNode{
		Kind:      KindFragment,
		PatchFlag: flag,
	}
	for _, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				node.Children = append(node.Children, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					node.Children = append(node.Children, c)
				}
			}
		case string:
			node.Children = append(node.Children, Text(v))
		case Component:
			node.Children = append(node.Children, Comp(v))
		}
	}
	trackDynamic(node)
	return node
}

// Comp wraps a component in a KindComponent node. An optional key makes
// the component addressable in keyed lists.
func Comp(c Component, key ...string) *VNode {
	node := &VNode{
		Kind: KindComponent,
		Comp: c,
	}
	if len(key) > 0 {
		node.Key = key[0]
	}
	trackDynamic(node)
	return node
}

// Teleport mounts children under the host node selected by target instead
// of the current position.
func Teleport(target string, children ...any) *VNode {
	node := newFragment(0, children)
	node.Kind = KindTeleport
	node.Tag = target
	return node
}

// Suspense renders children once every async component below them has
// resolved, showing fallback until then. A nil fallback shows a comment
// placeholder.
func Suspense(fallback *VNode, children ...any) *VNode {
	node := newFragment(0, children)
	node.Kind = KindSuspense
	node.Fallback = fallback
	trackDynamic(node)
	return node
}

// If returns the node if condition is true, a comment placeholder
// otherwise, so conditional branches keep a stable position.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return Comment("if")
}

// IfElse returns ifTrue when condition holds, ifFalse otherwise.
func IfElse(condition bool, ifTrue, ifFalse *VNode) *VNode {
	if condition {
		return ifTrue
	}
	return ifFalse
}

// When is like If with lazy evaluation: fn only runs when condition holds.
func When(condition bool, fn func() *VNode) *VNode {
	if condition {
		return fn()
	}
	return Comment("when")
}

// Range maps items to child nodes.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(item, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Repeat builds n children from an index function.
func Repeat(n int, fn func(i int) *VNode) []*VNode {
	out := make([]*VNode, 0, n)
	for i := 0; i < n; i++ {
		if node := fn(i); node != nil {
			out = append(out, node)
		}
	}
	return out
}

// Key returns a key attribute for list reconciliation. Non-string values
// are formatted.
func Key(key any) Attr {
	if s, ok := key.(string); ok {
		return Attr{Key: "key", Value: s}
	}
	return Attr{Key: "key", Value: fmt.Sprintf("%v", key)}
}

// Nothing returns an empty placeholder node.
func Nothing() *VNode {
	return Comment("")
}
