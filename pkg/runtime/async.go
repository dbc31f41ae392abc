package runtime

import (
	"sync"

	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/vdom"
)

// asyncComponent renders a placeholder comment until its loader resolves,
// then swaps in the loaded component. The loader runs off-loop so sibling
// mounts are never blocked; the swap re-enters through Dispatch.
type asyncComponent struct {
	loader func() (vdom.Component, error)

	once     sync.Once
	resolved *reactive.Signal[vdom.Component]
	failed   *reactive.Signal[error]
}

// DefineAsync wraps a component loader. The returned component can be
// mounted like any other; it shows a comment node while loading and
// reports loader errors through the error boundary chain. Under a
// vdom.Suspense node the load is reported to the boundary instead, which
// shows its fallback until every registered load settles.
//
// Create the async component once and reuse it: each DefineAsync value
// loads at most once.
func DefineAsync(loader func() (vdom.Component, error)) vdom.Component {
	return &asyncComponent{
		loader:   loader,
		resolved: reactive.NewSignal[vdom.Component](nil),
		failed:   reactive.NewSignal[error](nil),
	}
}

func (a *asyncComponent) Render() *vdom.VNode {
	a.once.Do(func() {
		inst := CurrentInstance()
		var deliver func(fn func())
		if inst != nil {
			deliver = inst.renderer.Dispatch
		} else {
			deliver = func(fn func()) { fn() }
		}
		boundary := nearestSuspense(inst)
		if boundary != nil {
			boundary.register()
		}
		go func() {
			comp, err := a.loader()
			deliver(func() {
				if err != nil {
					a.failed.Set(err)
				} else {
					a.resolved.Set(comp)
				}
				if boundary != nil {
					boundary.settle()
				}
			})
		}()
	})

	if err := a.failed.Get(); err != nil {
		if inst := CurrentInstance(); inst != nil {
			inst.renderer.handleError(err, inst, "async load")
		}
		return vdom.Comment("async failed")
	}
	comp := a.resolved.Get()
	if comp == nil {
		return vdom.Comment("async pending")
	}
	return vdom.Comp(comp)
}
