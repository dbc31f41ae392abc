package runtime

import (
	"log/slog"
	"sync"

	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/scheduler"
	"github.com/tideui/tide/pkg/vdom"
)

// Renderer reconciles virtual node trees against a host tree.
// One Renderer drives one host tree; it is not safe for concurrent use —
// the intended model is a single loop that dispatches events and flushes
// the queue (see package live).
type Renderer struct {
	ops    HostOps
	queue  *scheduler.Queue
	logger *slog.Logger

	// rootOwner parents the owner of every root-level component instance.
	rootOwner *reactive.Owner

	// onError is the application-level error handler of last resort,
	// reached when no error-boundary hook captured the error.
	onError func(error)

	// invokers holds the stable event wrappers per host node, keyed by
	// event prop name. Entries are dropped when the node unmounts.
	invokers map[any]map[string]*Invoker

	// pendingUnmounted accumulates unmounted hooks during a teardown so
	// they can run parent-first after the whole removal completes.
	pendingUnmounted []func()

	// dispatched holds closures handed in from other goroutines, run on
	// the driver loop before the next flush.
	dispatchMu     sync.Mutex
	dispatched     []func()
	dispatchNotify chan struct{}
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithLogger sets the logger used for dev diagnostics.
func WithLogger(l *slog.Logger) RendererOption {
	return func(r *Renderer) { r.logger = l }
}

// WithErrorHandler sets the application-level error handler.
func WithErrorHandler(fn func(error)) RendererOption {
	return func(r *Renderer) { r.onError = fn }
}

// NewRenderer creates a renderer over the given host backend.
func NewRenderer(ops HostOps, opts ...RendererOption) *Renderer {
	r := &Renderer{
		ops:            ops,
		logger:         slog.Default(),
		rootOwner:      reactive.NewOwner(nil),
		invokers:       make(map[any]map[string]*Invoker),
		dispatchNotify: make(chan struct{}, 1),
	}
	r.queue = scheduler.NewQueue(func(err error) {
		// Job-level panics already went through the component error
		// chain; anything surfacing here has no boundary left.
		r.reportUncaught(err)
	})
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Queue returns the flush queue so a driver loop can wait on Notify and
// flush after each synchronous burst.
func (r *Renderer) Queue() *scheduler.Queue {
	return r.queue
}

// FlushSync drains all pending effects immediately. The escape hatch for
// code that must observe a consistent host tree right now.
func (r *Renderer) FlushSync() {
	r.queue.Flush()
}

// scheduleEffect is the reactive.WithScheduler target for every effect the
// runtime creates.
func (r *Renderer) scheduleEffect(e *reactive.Effect) {
	r.queue.Schedule(effectJob{e: e})
}

// EffectScheduler exposes scheduleEffect for watchers created by
// application code that want queue-batched flushes.
func (r *Renderer) EffectScheduler() func(*reactive.Effect) {
	return r.scheduleEffect
}

// Dispatch hands fn to the driver loop. Safe to call from any goroutine;
// everything else on the renderer is loop-only.
func (r *Renderer) Dispatch(fn func()) {
	r.dispatchMu.Lock()
	r.dispatched = append(r.dispatched, fn)
	r.dispatchMu.Unlock()
	select {
	case r.dispatchNotify <- struct{}{}:
	default:
	}
}

// DispatchNotify wakes the driver loop after the first Dispatch of a
// burst, like Queue.Notify for effects.
func (r *Renderer) DispatchNotify() <-chan struct{} {
	return r.dispatchNotify
}

// DrainDispatch runs every dispatched closure in arrival order. Called by
// the driver loop before flushing.
func (r *Renderer) DrainDispatch() {
	for {
		r.dispatchMu.Lock()
		fns := r.dispatched
		r.dispatched = nil
		r.dispatchMu.Unlock()
		if len(fns) == 0 {
			return
		}
		for _, fn := range fns {
			fn()
		}
	}
}

// Patch reconciles old (nil to mount) with next (nil to unmount) inside
// container. Public entry point for embedding; component updates go
// through the same internal path.
func (r *Renderer) Patch(old, next *vdom.VNode, container any) {
	if next == nil {
		if old != nil {
			r.unmount(old, nil, true)
			r.runPendingUnmounted()
		}
		return
	}
	r.patch(old, next, container, nil, nil)
	r.runPendingUnmounted()
}

// patch is the reconciliation dispatcher. old is nil on mount. anchor is
// the host node to insert before; nil appends.
func (r *Renderer) patch(old, next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	if old == next {
		return
	}

	// Different identity: tear down and mount fresh in the same slot.
	if old != nil && !vdom.SameNode(old, next) {
		anchor = r.nextHostSibling(old)
		r.unmount(old, parent, true)
		old = nil
	}

	if next.PatchFlag == vdom.FlagBail {
		// Full-diff escape: patch a stripped clone, then carry the host
		// references back so later diffs against next still resolve.
		clone := bailClone(next)
		r.patch(old, clone, container, anchor, parent)
		next.Host, next.Anchor, next.Instance = clone.Host, clone.Anchor, clone.Instance
		return
	}

	switch next.Kind {
	case vdom.KindText:
		r.processText(old, next, container, anchor)
	case vdom.KindComment:
		r.processComment(old, next, container, anchor)
	case vdom.KindStatic:
		r.processStatic(old, next, container, anchor)
	case vdom.KindElement:
		r.processElement(old, next, container, anchor, parent)
	case vdom.KindFragment:
		r.processFragment(old, next, container, anchor, parent)
	case vdom.KindComponent:
		r.processComponent(old, next, container, anchor, parent)
	case vdom.KindTeleport:
		r.processTeleport(old, next, container, anchor, parent)
	case vdom.KindSuspense:
		r.processSuspense(old, next, container, anchor, parent)
	}
}

// bailClone strips the block metadata so the full-diff path runs.
func bailClone(n *vdom.VNode) *vdom.VNode {
	c := *n
	c.PatchFlag = 0
	c.DynamicChildren = nil
	return &c
}

func (r *Renderer) processText(old, next *vdom.VNode, container, anchor any) {
	if old == nil {
		next.Host = r.ops.CreateText(next.Text)
		r.ops.Insert(next.Host, container, anchor)
		return
	}
	next.Host = old.Host
	if old.Text != next.Text {
		r.ops.SetText(next.Host, next.Text)
	}
}

func (r *Renderer) processComment(old, next *vdom.VNode, container, anchor any) {
	if old == nil {
		next.Host = r.ops.CreateComment(next.Text)
		r.ops.Insert(next.Host, container, anchor)
		return
	}
	// Comments never patch content; identity carries over.
	next.Host = old.Host
}

func (r *Renderer) processStatic(old, next *vdom.VNode, container, anchor any) {
	if old == nil {
		next.Host, next.Anchor = r.ops.InsertStaticContent(next.Text, container, anchor)
		return
	}
	if old.StaticHash == next.StaticHash {
		next.Host, next.Anchor = old.Host, old.Anchor
		return
	}
	// Content changed (hot reload of a hoisted chunk): replace the range.
	parentHost := r.ops.ParentNode(old.Host)
	after := r.ops.NextSibling(old.Anchor)
	r.removeStaticRange(old)
	next.Host, next.Anchor = r.ops.InsertStaticContent(next.Text, parentHost, after)
}

// removeStaticRange removes every host node of a static chunk.
func (r *Renderer) removeStaticRange(n *vdom.VNode) {
	cur := n.Host
	for cur != nil {
		sibling := r.ops.NextSibling(cur)
		r.ops.Remove(cur)
		if cur == n.Anchor {
			break
		}
		cur = sibling
	}
}

func (r *Renderer) processElement(old, next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	if old == nil {
		r.mountElement(next, container, anchor, parent)
		return
	}
	r.patchElement(old, next, parent)
}

func (r *Renderer) mountElement(next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	el := r.ops.CreateNode(next.Tag, "")
	next.Host = el

	for key, value := range next.Props {
		r.hostPatchProp(el, key, nil, value, parent)
	}

	if textOnly, text := soleTextChild(next); textOnly {
		r.ops.SetElementText(el, text)
	} else {
		r.mountChildren(next.Children, el, nil, parent)
	}

	r.ops.Insert(el, container, anchor)
}

// soleTextChild reports whether the element's children normalize to one
// plain text run, which mounts and patches through SetElementText instead
// of individual text nodes.
func soleTextChild(n *vdom.VNode) (bool, string) {
	if !n.PatchFlag.Has(vdom.FlagText) {
		return false, ""
	}
	if len(n.Children) != 1 || n.Children[0].Kind != vdom.KindText {
		return false, ""
	}
	return true, n.Children[0].Text
}

func (r *Renderer) mountChildren(children []*vdom.VNode, container, anchor any, parent *ComponentInstance) {
	for _, child := range children {
		r.patch(nil, child, container, anchor, parent)
	}
}

func (r *Renderer) patchElement(old, next *vdom.VNode, parent *ComponentInstance) {
	el := old.Host
	next.Host = el
	flag := next.PatchFlag

	// Children first: the block fast path walks only the tracked dynamic
	// descendants, in array order, skipping static structure entirely.
	if old.DynamicChildren != nil && next.DynamicChildren != nil && flag > 0 {
		r.patchBlockChildren(old.DynamicChildren, next.DynamicChildren, el, parent)
	} else if ok, text := soleTextChild(next); ok {
		if oldOK, oldText := soleTextChild(old); !oldOK || oldText != text {
			r.ops.SetElementText(el, text)
		}
	} else {
		r.patchChildren(old, next, el, nil, parent)
	}

	// Props second, along the narrowest path the flag allows.
	switch {
	case flag.Has(vdom.FlagFullProps) || flag <= 0:
		r.patchProps(el, old.Props, next.Props, parent)
	default:
		if flag.Has(vdom.FlagClass) {
			r.patchSingleProp(el, "class", old.Props, next.Props, parent)
		}
		if flag.Has(vdom.FlagStyle) {
			r.patchSingleProp(el, "style", old.Props, next.Props, parent)
		}
		if flag.Has(vdom.FlagProps) {
			for _, key := range next.DynProps {
				r.patchSingleProp(el, key, old.Props, next.Props, parent)
			}
		}
	}
}

// patchBlockChildren patches only the tracked dynamic nodes, positionally:
// collection order is creation order, identical across renders of the same
// template shape.
func (r *Renderer) patchBlockChildren(old, next []*vdom.VNode, fallback any, parent *ComponentInstance) {
	n := len(next)
	if len(old) < n {
		n = len(old)
	}
	for i := 0; i < n; i++ {
		oldChild, nextChild := old[i], next[i]
		container := fallback
		// Nodes that may move or replace need their real host parent so
		// insertions land in the right place.
		if oldChild.Host != nil &&
			(oldChild.Kind == vdom.KindFragment ||
				oldChild.Kind == vdom.KindComponent ||
				oldChild.Kind == vdom.KindSuspense ||
				!vdom.SameNode(oldChild, nextChild)) {
			container = r.ops.ParentNode(oldChild.Host)
		}
		r.patch(oldChild, nextChild, container, nil, parent)
	}
}

func (r *Renderer) processFragment(old, next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	if old == nil {
		// Fragments bracket their children with two stable anchor nodes
		// so later insertions have a fixed reference point.
		next.Host = r.ops.CreateComment("")
		next.Anchor = r.ops.CreateComment("")
		r.ops.Insert(next.Host, container, anchor)
		r.ops.Insert(next.Anchor, container, anchor)
		r.mountChildren(next.Children, container, next.Anchor, parent)
		return
	}

	next.Host = old.Host
	next.Anchor = old.Anchor

	if next.PatchFlag.Has(vdom.FlagStableFragment) &&
		old.DynamicChildren != nil && next.DynamicChildren != nil {
		r.patchBlockChildren(old.DynamicChildren, next.DynamicChildren, container, parent)
		return
	}
	r.patchChildren(old, next, container, next.Anchor, parent)
}

// nextHostSibling finds the host node immediately after a vnode's rendered
// range, used as the re-mount anchor when identity changes.
func (r *Renderer) nextHostSibling(n *vdom.VNode) any {
	switch n.Kind {
	case vdom.KindFragment, vdom.KindStatic:
		if n.Anchor != nil {
			return r.ops.NextSibling(n.Anchor)
		}
	case vdom.KindComponent:
		if inst, ok := n.Instance.(*ComponentInstance); ok && inst.subTree != nil {
			return r.nextHostSibling(inst.subTree)
		}
	case vdom.KindSuspense:
		if st, ok := n.Instance.(*suspenseState); ok {
			return r.nextHostSibling(st.comp)
		}
	}
	if n.Host == nil {
		return nil
	}
	return r.ops.NextSibling(n.Host)
}

// unmount tears a vnode down: beforeUnmount pre-order, children
// recursively, host removal, resource release. doRemove is false for
// descendants of an element that is removed wholesale.
func (r *Renderer) unmount(n *vdom.VNode, parent *ComponentInstance, doRemove bool) {
	switch n.Kind {
	case vdom.KindComponent:
		r.unmountComponent(n, doRemove)

	case vdom.KindFragment:
		for _, child := range n.Children {
			r.unmount(child, parent, doRemove)
		}
		if doRemove {
			if n.Host != nil {
				r.ops.Remove(n.Host)
			}
			if n.Anchor != nil {
				r.ops.Remove(n.Anchor)
			}
		}

	case vdom.KindTeleport:
		// Teleported children live under another parent; they are always
		// removed individually.
		for _, child := range n.Children {
			r.unmount(child, parent, true)
		}
		if doRemove && n.Host != nil {
			r.ops.Remove(n.Host)
		}

	case vdom.KindSuspense:
		if st, ok := n.Instance.(*suspenseState); ok {
			r.unmount(st.comp, parent, doRemove)
		}

	case vdom.KindStatic:
		if doRemove {
			r.removeStaticRange(n)
		}

	case vdom.KindElement:
		delete(r.invokers, n.Host)
		for _, child := range n.Children {
			r.unmount(child, parent, false)
		}
		if doRemove && n.Host != nil {
			r.ops.Remove(n.Host)
		}

	default:
		if doRemove && n.Host != nil {
			r.ops.Remove(n.Host)
		}
	}
}

// runPendingUnmounted fires collected unmounted hooks. They were appended
// pre-order during teardown, so they run in exact reverse nesting order of
// the mounted hooks.
func (r *Renderer) runPendingUnmounted() {
	hooks := r.pendingUnmounted
	r.pendingUnmounted = nil
	for _, fn := range hooks {
		fn()
	}
}
