package runtime_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/tideui/tide/pkg/memhost"
	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/runtime"
	"github.com/tideui/tide/pkg/vdom"
)

func TestLifecycleHookOrder(t *testing.T) {
	var log []string
	rec := func(s string) func() {
		return func() { log = append(log, s) }
	}

	child := vdom.Func(func() *vdom.VNode {
		runtime.OnBeforeMount(rec("child:beforeMount"))
		runtime.OnMounted(rec("child:mounted"))
		runtime.OnBeforeUnmount(rec("child:beforeUnmount"))
		runtime.OnUnmounted(rec("child:unmounted"))
		return vdom.P(vdom.Text("child"))
	})
	parent := vdom.Func(func() *vdom.VNode {
		runtime.OnBeforeMount(rec("parent:beforeMount"))
		runtime.OnMounted(rec("parent:mounted"))
		runtime.OnBeforeUnmount(rec("parent:beforeUnmount"))
		runtime.OnUnmounted(rec("parent:unmounted"))
		return vdom.Div(vdom.Comp(child))
	})

	doc := memhost.NewDocument()
	app := runtime.NewApp(doc.Ops(), parent)
	app.Mount(doc.Body())

	wantMount := []string{
		"parent:beforeMount",
		"child:beforeMount",
		"child:mounted",
		"parent:mounted",
	}
	if !reflect.DeepEqual(log, wantMount) {
		t.Fatalf("mount hooks = %v, want %v", log, wantMount)
	}

	log = nil
	app.Unmount()

	wantUnmount := []string{
		"parent:beforeUnmount",
		"child:beforeUnmount",
		"parent:unmounted",
		"child:unmounted",
	}
	if !reflect.DeepEqual(log, wantUnmount) {
		t.Fatalf("unmount hooks = %v, want %v", log, wantUnmount)
	}
}

func TestUpdateHooksFireOnRerenderOnly(t *testing.T) {
	var log []string
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		runtime.OnBeforeUpdate(func() { log = append(log, "beforeUpdate") })
		runtime.OnUpdated(func() { log = append(log, "updated") })
		return vdom.Div(vdom.Textf("%d", count.Get()))
	})

	app, _ := mountApp(t, root)
	if len(log) != 0 {
		t.Fatalf("update hooks fired on mount: %v", log)
	}

	count.Set(1)
	app.FlushSync()

	want := []string{"beforeUpdate", "updated"}
	if !reflect.DeepEqual(log, want) {
		t.Errorf("update hooks = %v, want %v", log, want)
	}
}

func TestProvideInject(t *testing.T) {
	child := vdom.Func(func() *vdom.VNode {
		color, _ := runtime.Inject("color", "none").(string)
		app, _ := runtime.Inject("appName", "unset").(string)
		return vdom.Div(vdom.Text(color + "/" + app))
	})
	parent := vdom.Func(func() *vdom.VNode {
		runtime.Provide("color", "teal")
		return vdom.Comp(child)
	})

	doc := memhost.NewDocument()
	app := runtime.NewApp(doc.Ops(), parent).Provide("appName", "demo")
	app.Mount(doc.Body())
	t.Cleanup(app.Unmount)

	if got := doc.Body().TextContent(); got != "teal/demo" {
		t.Errorf("TextContent = %q, want %q", got, "teal/demo")
	}
}

func TestInjectFallback(t *testing.T) {
	root := vdom.Func(func() *vdom.VNode {
		v, _ := runtime.Inject("missing", "fallback").(string)
		return vdom.Div(vdom.Text(v))
	})

	_, doc := mountApp(t, root)
	if got := doc.Body().TextContent(); got != "fallback" {
		t.Errorf("TextContent = %q, want fallback", got)
	}
}

func TestProvideShadowsAncestor(t *testing.T) {
	leaf := vdom.Func(func() *vdom.VNode {
		v, _ := runtime.Inject("depth", "?").(string)
		return vdom.Span(vdom.Text(v))
	})
	mid := vdom.Func(func() *vdom.VNode {
		runtime.Provide("depth", "mid")
		return vdom.Comp(leaf)
	})
	root := vdom.Func(func() *vdom.VNode {
		runtime.Provide("depth", "root")
		return vdom.Comp(mid)
	})

	_, doc := mountApp(t, root)
	if got := doc.Body().TextContent(); got != "mid" {
		t.Errorf("TextContent = %q, want the nearest provider", got)
	}
}

// errorChainContains walks the unwrap chain looking for a message fragment.
func errorChainContains(err error, fragment string) bool {
	for e := err; e != nil; e = errors.Unwrap(e) {
		if strings.Contains(e.Error(), fragment) {
			return true
		}
	}
	return false
}

func TestErrorBoundaryCapturesDescendantPanic(t *testing.T) {
	explode := reactive.NewSignal(false)
	var captured error

	child := vdom.Func(func() *vdom.VNode {
		if explode.Get() {
			panic("boom")
		}
		return vdom.P(vdom.Text("ok"))
	})
	parent := vdom.Func(func() *vdom.VNode {
		runtime.OnErrorCaptured(func(err error) bool {
			captured = err
			return true
		})
		return vdom.Div(vdom.Comp(child))
	})

	var uncaught error
	app, _ := mountApp(t, parent, runtime.WithAppErrorHandler(func(err error) { uncaught = err }))

	explode.Set(true)
	app.FlushSync()

	if captured == nil {
		t.Fatal("boundary did not capture the render panic")
	}
	if !errorChainContains(captured, "boom") {
		t.Errorf("captured error %v does not carry the panic value", captured)
	}
	if uncaught != nil {
		t.Errorf("captured error still reached the app handler: %v", uncaught)
	}
}

func TestUncaughtErrorReachesAppHandler(t *testing.T) {
	explode := reactive.NewSignal(false)
	root := vdom.Func(func() *vdom.VNode {
		if explode.Get() {
			panic("unguarded")
		}
		return vdom.Div(vdom.Text("ok"))
	})

	var uncaught error
	app, _ := mountApp(t, root, runtime.WithAppErrorHandler(func(err error) { uncaught = err }))

	explode.Set(true)
	app.FlushSync()

	if uncaught == nil {
		t.Fatal("no boundary: error must reach the app handler")
	}
	if !errorChainContains(uncaught, "unguarded") {
		t.Errorf("app handler got %v, want the panic value in the chain", uncaught)
	}
}

// banner is a struct component; prop identity decides whether the child
// re-renders when its parent does.
type banner struct {
	Text    string
	renders *int
}

func (b banner) Render() *vdom.VNode {
	*b.renders++
	return vdom.H1(vdom.Text(b.Text))
}

func TestStructComponentRerendersOnPropChange(t *testing.T) {
	title := reactive.NewSignal("hello")
	renders := 0
	parent := vdom.Func(func() *vdom.VNode {
		return vdom.Div(vdom.Comp(banner{Text: title.Get(), renders: &renders}))
	})

	app, doc := mountApp(t, parent)
	if renders != 1 {
		t.Fatalf("renders = %d after mount, want 1", renders)
	}

	title.Set("world")
	app.FlushSync()

	if renders != 2 {
		t.Errorf("renders = %d after prop change, want 2", renders)
	}
	if got := doc.Body().TextContent(); got != "world" {
		t.Errorf("TextContent = %q, want world", got)
	}
}

func TestStructComponentSkipsEqualProps(t *testing.T) {
	tick := reactive.NewSignal(0)
	renders := 0
	parent := vdom.Func(func() *vdom.VNode {
		_ = tick.Get()
		return vdom.Div(vdom.Comp(banner{Text: "fixed", renders: &renders}))
	})

	app, _ := mountApp(t, parent)

	tick.Set(1)
	app.FlushSync()

	if renders != 1 {
		t.Errorf("renders = %d, want 1: identical props must not re-render the child", renders)
	}
}

// frame renders whatever children its parent passed in.
type frame struct{}

func (frame) Render() *vdom.VNode {
	var slot []*vdom.VNode
	if inst := runtime.CurrentInstance(); inst != nil {
		slot = inst.Slots["default"]
	}
	return vdom.Div(vdom.Class("frame"), slot)
}

func TestSlotChildrenRender(t *testing.T) {
	root := vdom.Func(func() *vdom.VNode {
		n := vdom.Comp(frame{})
		n.Children = []*vdom.VNode{vdom.P(vdom.Text("inner"))}
		return n
	})

	_, doc := mountApp(t, root)

	want := `<div class="frame"><p>inner</p></div>`
	if got := doc.Body().HTML(); got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}
}

func TestCurrentInstanceOutsideRenderIsNil(t *testing.T) {
	if inst := runtime.CurrentInstance(); inst != nil {
		t.Errorf("CurrentInstance() = %v outside render, want nil", inst)
	}
}
