package vdom

import (
	"fmt"
	"strings"
)

// VKind is the node type discriminator. The union is closed: every variant
// the reconciler dispatches on is listed here.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindComment                // Comment / placeholder node
	KindFragment               // Grouping without a wrapper element
	KindComponent              // Nested component
	KindStatic                 // Pre-rendered static content, never diffed
	KindTeleport               // Children mount under a different host parent
	KindSuspense               // Fallback shows while async descendants load
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindComment:
		return "Comment"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindStatic:
		return "Static"
	case KindTeleport:
		return "Teleport"
	case KindSuspense:
		return "Suspense"
	default:
		return "Unknown"
	}
}

// VNode is one renderable unit for a given render pass. Nodes are treated
// as immutable once created, except for the host back-references the
// runtime fills in at mount time.
type VNode struct {
	Kind     VKind
	Tag      string   // Element tag, or Teleport target selector
	Props    Props    // Attributes and event handlers
	Children []*VNode // Child nodes
	Key      string   // Identity hint for list diffing ("" = positional)
	Text     string   // For KindText, KindComment, KindStatic
	Comp     Component

	// Fallback is the branch a KindSuspense node shows while async
	// components below Children are still loading.
	Fallback *VNode

	// PatchFlag records which aspects of this node can change between
	// renders. Zero means fully static.
	PatchFlag PatchFlag

	// DynProps names the props that can change when PatchFlag has
	// FlagProps; the reconciler patches only these.
	DynProps []string

	// DynamicChildren is the flattened list of dynamic descendants
	// collected while this node was an open block. Non-nil only on block
	// roots.
	DynamicChildren []*VNode

	// StaticHash is the content hash of a KindStatic node's Text;
	// patching compares hashes instead of payloads.
	StaticHash uint64

	// Host is the live host node this vnode produced once mounted.
	// Anchor is the end marker for fragments. Instance is the component
	// instance for KindComponent. All three are owned by the runtime.
	Host     any
	Anchor   any
	Instance any
}

// Props holds attributes and event handlers. Event handler keys start
// with "on".
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler prop.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Invalidated is implemented by components whose identity has been revoked
// (hot reload). An invalidated component never matches its previous vnode,
// forcing a full replacement on the next patch.
type Invalidated interface {
	Invalidated() bool
}

// SameNode reports whether old and next are the same logical node and can
// be patched in place: same kind, same tag, same key. Empty keys match
// empty keys only because callers compare nodes in the same positional
// slot.
func SameNode(old, next *VNode) bool {
	if old == nil || next == nil {
		return false
	}
	if old.Kind != next.Kind || old.Tag != next.Tag || old.Key != next.Key {
		return false
	}
	if next.Kind == KindComponent {
		if inv, ok := next.Comp.(Invalidated); ok && inv.Invalidated() {
			return false
		}
		if old.Comp != nil && next.Comp != nil && !sameComponentType(old.Comp, next.Comp) {
			return false
		}
	}
	return true
}

// sameComponentType decides whether two component values are the same
// logical component. Function components match by wrapper identity;
// struct components match by dynamic type, so a parent that recreates its
// child component value each render still patches in place.
func sameComponentType(a, b Component) bool {
	fa, aFunc := a.(*FuncComponent)
	fb, bFunc := b.(*FuncComponent)
	if aFunc || bFunc {
		return aFunc && bFunc && fa == fb
	}
	return fmt.Sprintf("%T", a) == fmt.Sprintf("%T", b)
}

// IsEventProp returns true if the prop key is an event handler.
// Case-insensitive: onclick, onClick, ONCLICK all match.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// HasKeys returns true if any child carries a reconciliation key.
func HasKeys(children []*VNode) bool {
	for _, child := range children {
		if child != nil && child.Key != "" {
			return true
		}
	}
	return false
}
