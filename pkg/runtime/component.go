package runtime

import (
	"reflect"
	"sync"

	"github.com/petermattis/goid"
	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/vdom"
)

// HookKind identifies a lifecycle hook registry.
type HookKind uint8

const (
	HookBeforeMount HookKind = iota
	HookMounted
	HookBeforeUpdate
	HookUpdated
	HookBeforeUnmount
	HookUnmounted
	hookKindCount
)

// ComponentInstance wraps one mounted component: its reactive render
// effect, current and previous subtree, owner scope, slots, and lifecycle
// hook registries.
//
// Hooks are re-registered on every render (registries reset before each
// pass), so registration calls belong unconditionally at the top of
// Render.
type ComponentInstance struct {
	renderer *Renderer

	// vnode is the component-kind vnode this instance backs. Replaced on
	// every parent render that reuses the instance.
	vnode *vdom.VNode

	parent *ComponentInstance

	// owner scopes every signal, memo, effect, and provided value created
	// during this component's renders.
	owner *reactive.Owner

	effect *reactive.Effect

	// subTree is the last successfully rendered and patched tree. It is
	// retained until the next patch completes, then replaced.
	subTree *vdom.VNode

	// Slots holds the children passed to the component node, keyed by
	// slot name. Unnamed children land under "default".
	Slots map[string][]*vdom.VNode

	// suspense is set on a suspense node's internal root instance; async
	// components walk the parent chain and report loads to the nearest
	// boundary above them.
	suspense *suspenseBoundary

	container any
	anchor    any

	mounted   bool
	unmounted bool

	hooks      [hookKindCount][]func()
	errorHooks []func(error) bool
}

// currentInstances tracks the instance rendering on each goroutine, for
// the package-level hook registration API.
var currentInstances sync.Map

func setCurrentInstance(i *ComponentInstance) *ComponentInstance {
	gid := goid.Get()
	var old *ComponentInstance
	if v, ok := currentInstances.Load(gid); ok {
		old = v.(*ComponentInstance)
	}
	if i == nil {
		currentInstances.Delete(gid)
	} else {
		currentInstances.Store(gid, i)
	}
	return old
}

// CurrentInstance returns the component instance currently rendering on
// this goroutine, or nil outside a render.
func CurrentInstance() *ComponentInstance {
	if v, ok := currentInstances.Load(goid.Get()); ok {
		return v.(*ComponentInstance)
	}
	return nil
}

func (r *Renderer) processComponent(old, next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	if old == nil {
		r.mountComponent(next, container, anchor, parent)
		return
	}
	r.updateComponent(old, next)
}

func (r *Renderer) mountComponent(next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	parentOwner := r.rootOwner
	if parent != nil {
		parentOwner = parent.owner
	}

	inst := &ComponentInstance{
		renderer:  r,
		vnode:     next,
		parent:    parent,
		owner:     reactive.NewOwner(parentOwner),
		container: container,
		anchor:    anchor,
		Slots:     collectSlots(next),
	}
	next.Instance = inst

	opts := []reactive.EffectOption{
		reactive.Lazy(),
		reactive.WithPhase(reactive.FlushRender),
		reactive.WithScheduler(r.scheduleEffect),
		reactive.WithErrorHandler(func(err error) {
			r.handleError(err, inst, "render")
		}),
	}
	if _, ok := next.Comp.(*suspenseRoot); ok {
		// Mounting suspense content registers in-flight loads with the
		// boundary, a write observed by this same render pass; the branch
		// switch depends on re-running for it.
		opts = append(opts, reactive.AllowRecurse())
	}
	inst.effect = reactive.NewEffect(inst.componentUpdateFn, opts...)

	// The mount run happens inline: parents mount children synchronously
	// within their own patch.
	inst.effect.Run()
}

// updateComponent reuses the instance behind old for next. If the
// component value is unchanged the child is left alone; otherwise it
// re-renders synchronously with the new component value (new props).
func (r *Renderer) updateComponent(old, next *vdom.VNode) {
	inst, _ := old.Instance.(*ComponentInstance)
	next.Instance = inst
	if inst == nil || inst.unmounted {
		return
	}

	same := old.Comp == next.Comp
	if !same && reflect.DeepEqual(old.Comp, next.Comp) {
		// Recreated component value with identical fields: nothing the
		// child renders from has changed.
		same = true
	}

	inst.vnode = next
	inst.Slots = collectSlots(next)
	next.Host = old.Host

	if !same {
		inst.effect.Run()
		next.Host = hostOf(inst.subTree)
	}
}

// componentUpdateFn is the body of the render effect: mount on first run,
// patch on re-runs. Reads performed by Render subscribe the effect; the
// next write re-schedules it through the flush queue.
func (inst *ComponentInstance) componentUpdateFn() reactive.Cleanup {
	if inst.unmounted {
		return nil
	}
	r := inst.renderer

	if !inst.mounted {
		tree := inst.renderRoot()
		inst.callHooks(HookBeforeMount)
		r.patch(nil, tree, inst.container, inst.anchor, inst)
		inst.subTree = tree
		inst.vnode.Host = hostOf(tree)
		inst.mounted = true
		// Children mounted during the patch above already fired theirs:
		// post-order, children before parent.
		inst.callHooks(HookMounted)
		return nil
	}

	prev := inst.subTree
	tree := inst.renderRoot()
	inst.callHooks(HookBeforeUpdate)
	container := r.ops.ParentNode(hostOf(prev))
	if container == nil {
		container = inst.container
	}
	r.patch(prev, tree, container, nil, inst)
	inst.subTree = tree
	inst.vnode.Host = hostOf(tree)
	r.runPendingUnmounted()
	inst.callHooks(HookUpdated)
	return nil
}

// renderRoot invokes the component's render function with this instance
// current, its owner adopting created primitives, and a block open so the
// produced tree tracks its dynamic children.
func (inst *ComponentInstance) renderRoot() *vdom.VNode {
	prev := setCurrentInstance(inst)
	defer setCurrentInstance(prev)

	inst.resetHooks()

	var tree *vdom.VNode
	reactive.WithOwner(inst.owner, func() {
		vdom.OpenBlock()
		tree = inst.vnode.Comp.Render()
		tree = vdom.CloseBlock(tree)
	})
	if tree == nil {
		tree = vdom.Comment("empty")
	}
	return tree
}

func (r *Renderer) unmountComponent(n *vdom.VNode, doRemove bool) {
	inst, _ := n.Instance.(*ComponentInstance)
	if inst == nil || inst.unmounted {
		return
	}

	// Pre-order: parent hooks before children's, mirroring (reversed)
	// the post-order mount sequence.
	inst.callHooks(HookBeforeUnmount)
	r.pendingUnmounted = append(r.pendingUnmounted, inst.hooks[HookUnmounted]...)

	inst.unmounted = true
	inst.effect.Stop()
	r.queue.Invalidate(inst.effect.ID())

	if inst.subTree != nil {
		r.unmount(inst.subTree, inst, doRemove)
	}
	inst.owner.Dispose()
}

func (inst *ComponentInstance) resetHooks() {
	for i := range inst.hooks {
		inst.hooks[i] = nil
	}
	inst.errorHooks = nil
}

func (inst *ComponentInstance) callHooks(kind HookKind) {
	for _, fn := range inst.hooks[kind] {
		fn()
	}
}

// Renderer returns the renderer driving this instance.
func (inst *ComponentInstance) Renderer() *Renderer {
	return inst.renderer
}

// Owner returns the reactive scope of this instance.
func (inst *ComponentInstance) Owner() *reactive.Owner {
	return inst.owner
}

// collectSlots normalizes a component vnode's children into the slot map.
func collectSlots(n *vdom.VNode) map[string][]*vdom.VNode {
	if len(n.Children) == 0 {
		return nil
	}
	return map[string][]*vdom.VNode{"default": n.Children}
}

// hostOf resolves the leading host node behind a vnode, descending
// through component subtrees.
func hostOf(n *vdom.VNode) any {
	for n != nil {
		if n.Kind == vdom.KindComponent {
			if inst, ok := n.Instance.(*ComponentInstance); ok {
				n = inst.subTree
				continue
			}
			return nil
		}
		return n.Host
	}
	return nil
}

// Package-level hook registration API, callable during render only.

func registerHook(kind HookKind, fn func()) {
	inst := CurrentInstance()
	if inst == nil {
		return
	}
	inst.hooks[kind] = append(inst.hooks[kind], fn)
}

// OnBeforeMount registers fn to run before the first patch.
func OnBeforeMount(fn func()) { registerHook(HookBeforeMount, fn) }

// OnMounted registers fn to run after the component's tree is in the
// host, children before parents.
func OnMounted(fn func()) { registerHook(HookMounted, fn) }

// OnBeforeUpdate registers fn to run before an update patch.
func OnBeforeUpdate(fn func()) { registerHook(HookBeforeUpdate, fn) }

// OnUpdated registers fn to run after an update patch.
func OnUpdated(fn func()) { registerHook(HookUpdated, fn) }

// OnBeforeUnmount registers fn to run at teardown start, parents before
// children.
func OnBeforeUnmount(fn func()) { registerHook(HookBeforeUnmount, fn) }

// OnUnmounted registers fn to run after the whole removal completes, in
// reverse nesting order of OnMounted.
func OnUnmounted(fn func()) { registerHook(HookUnmounted, fn) }

// OnErrorCaptured registers an error boundary: fn sees errors thrown by
// descendant renders and effects; returning true stops propagation.
func OnErrorCaptured(fn func(error) bool) {
	inst := CurrentInstance()
	if inst == nil {
		return
	}
	inst.errorHooks = append(inst.errorHooks, fn)
}

// Provide stores a context value visible to this component's descendants.
func Provide(key, value any) {
	if inst := CurrentInstance(); inst != nil {
		inst.owner.Provide(key, value)
	}
}

// Inject reads a context value provided by an ancestor, falling back to
// def when no ancestor provided it.
func Inject(key, def any) any {
	inst := CurrentInstance()
	if inst == nil {
		return def
	}
	if v, ok := inst.owner.Value(key); ok {
		return v
	}
	return def
}
