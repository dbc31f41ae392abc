package runtime

import (
	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/vdom"
)

// suspenseBoundary counts async loads in flight beneath one suspense
// node. pending is reactive, so the internal root's render switches
// between fallback and content when the count crosses zero.
type suspenseBoundary struct {
	pending *reactive.Signal[int]
}

func (b *suspenseBoundary) register() {
	b.pending.Update(func(n int) int { return n + 1 })
}

func (b *suspenseBoundary) settle() {
	b.pending.Update(func(n int) int { return n - 1 })
}

// nearestSuspense walks the instance chain to the closest enclosing
// suspense boundary, or nil.
func nearestSuspense(inst *ComponentInstance) *suspenseBoundary {
	for p := inst; p != nil; p = p.parent {
		if p.suspense != nil {
			return p.suspense
		}
	}
	return nil
}

// suspenseRoot is the internal component a KindSuspense node lowers to.
// It renders the content branch while the boundary has no pending loads,
// the fallback branch otherwise.
type suspenseRoot struct {
	boundary *suspenseBoundary
	content  []*vdom.VNode
	fallback *vdom.VNode
}

func (s *suspenseRoot) Render() *vdom.VNode {
	if inst := CurrentInstance(); inst != nil {
		inst.suspense = s.boundary
	}
	// Each branch is wrapped in a fresh fragment: the branch vnodes were
	// built during the outer component's render, so this pass must not
	// claim them as its own block root.
	if s.boundary.pending.Get() > 0 {
		if s.fallback != nil {
			return vdom.Fragment(s.fallback)
		}
		return vdom.Fragment(vdom.Comment("loading"))
	}
	return vdom.Fragment(s.content)
}

// suspenseState is the runtime payload behind a mounted KindSuspense
// vnode, carried on VNode.Instance.
type suspenseState struct {
	root *suspenseRoot
	comp *vdom.VNode
}

func (r *Renderer) processSuspense(old, next *vdom.VNode, container, anchor any, parent *ComponentInstance) {
	if old == nil {
		root := &suspenseRoot{
			boundary: &suspenseBoundary{pending: reactive.NewSignal(0)},
			content:  next.Children,
			fallback: next.Fallback,
		}
		comp := vdom.Comp(root)
		next.Instance = &suspenseState{root: root, comp: comp}
		r.mountComponent(comp, container, anchor, parent)
		next.Host = hostOf(comp)
		return
	}

	st, _ := old.Instance.(*suspenseState)
	next.Instance = st
	next.Host = old.Host
	if st == nil {
		return
	}
	inst, _ := st.comp.Instance.(*ComponentInstance)
	if inst == nil || inst.unmounted {
		return
	}
	// The outer render produced fresh branch trees; point the root at
	// them and re-render so the active branch diffs against its
	// predecessor.
	st.root.content = next.Children
	st.root.fallback = next.Fallback
	inst.effect.Run()
	next.Host = hostOf(st.comp)
}
