package runtime_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/tideui/tide/pkg/memhost"
	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/runtime"
	"github.com/tideui/tide/pkg/vdom"
)

// mountApp mounts root into a fresh in-memory document and tears it down
// when the test finishes.
func mountApp(t *testing.T, root vdom.Component, opts ...runtime.AppOption) (*runtime.App, *memhost.Document) {
	t.Helper()
	doc := memhost.NewDocument()
	app := runtime.NewApp(doc.Ops(), root, opts...)
	app.Mount(doc.Body())
	t.Cleanup(app.Unmount)
	return app, doc
}

func TestMountRendersTree(t *testing.T) {
	count := reactive.NewSignal(5)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(vdom.ID("box"),
			vdom.Span(vdom.TextDyn(strconv.Itoa(count.Get()))),
		)
	})

	_, doc := mountApp(t, root)

	want := `<div id="box"><span>5</span></div>`
	if got := doc.Body().HTML(); got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}
}

func TestTextUpdateIsSingleSetText(t *testing.T) {
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(vdom.Span(vdom.TextDyn(strconv.Itoa(count.Get()))))
	})

	app, doc := mountApp(t, root)
	doc.Ops().ResetCounters()

	count.Set(6)
	app.FlushSync()

	c := doc.Ops().Counters()
	if c.SetText != 1 {
		t.Errorf("SetText = %d, want 1", c.SetText)
	}
	if c.CreateElement != 0 || c.Insert != 0 || c.Remove != 0 {
		t.Errorf("structural mutations on a text-only update: %+v", c)
	}
	if !strings.Contains(doc.Body().HTML(), "<span>6</span>") {
		t.Errorf("HTML = %q, want updated text", doc.Body().HTML())
	}
}

func TestUpdatesCoalesceToOnePatch(t *testing.T) {
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(vdom.TextDyn(strconv.Itoa(count.Get())))
	})

	app, doc := mountApp(t, root)
	doc.Ops().ResetCounters()

	count.Set(1)
	count.Set(2)
	app.FlushSync()

	if c := doc.Ops().Counters(); c.SetText != 1 {
		t.Errorf("SetText = %d, want 1 for two coalesced writes", c.SetText)
	}
	if !strings.Contains(doc.Body().HTML(), ">2<") {
		t.Errorf("HTML = %q, want final value only", doc.Body().HTML())
	}
}

func TestEqualWriteDoesNotRender(t *testing.T) {
	count := reactive.NewSignal(9)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(vdom.TextDyn(strconv.Itoa(count.Get())))
	})

	app, doc := mountApp(t, root)
	doc.Ops().ResetCounters()

	count.Set(9)
	app.FlushSync()

	if total := doc.Ops().Counters().Total(); total != 0 {
		t.Errorf("host mutations = %d, want 0 for an equal write", total)
	}
}

func TestBlockFastPathSkipsStaticStructure(t *testing.T) {
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.ElFlagged("div", vdom.FlagNeedPatch, nil,
			vdom.El("p", "immutable heading"),
			vdom.TextDyn(strconv.Itoa(count.Get())),
		)
	})

	app, doc := mountApp(t, root)
	doc.Ops().ResetCounters()

	count.Set(1)
	app.FlushSync()

	c := doc.Ops().Counters()
	if c.SetText != 1 || c.Total() != 1 {
		t.Errorf("counters = %+v, want exactly one SetText", c)
	}
}

func TestBailFlagForcesFullDiff(t *testing.T) {
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		n := vdom.Div(vdom.TextDyn(strconv.Itoa(count.Get())))
		n.PatchFlag = vdom.FlagBail
		return n
	})

	app, doc := mountApp(t, root)
	doc.Ops().ResetCounters()

	count.Set(4)
	app.FlushSync()

	if c := doc.Ops().Counters(); c.SetText != 1 {
		t.Errorf("SetText = %d, want 1", c.SetText)
	}
	if !strings.Contains(doc.Body().HTML(), ">4<") {
		t.Errorf("HTML = %q, want updated text", doc.Body().HTML())
	}
}

func TestFragmentMountAndPatch(t *testing.T) {
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Fragment(
			vdom.El("p", "a"),
			vdom.Span(vdom.TextDyn(strconv.Itoa(count.Get()))),
		)
	})

	app, doc := mountApp(t, root)

	want := "<!----><p>a</p><span>0</span><!---->"
	if got := doc.Body().HTML(); got != want {
		t.Fatalf("HTML = %q, want %q", got, want)
	}

	doc.Ops().ResetCounters()
	count.Set(1)
	app.FlushSync()

	if c := doc.Ops().Counters(); c.SetText != 1 || c.Remove != 0 {
		t.Errorf("counters = %+v, want one SetText", c)
	}
}

func TestReplaceOnTagChange(t *testing.T) {
	emphasized := reactive.NewSignal(false)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(vdom.IfElse(emphasized.Get(),
			vdom.Strong(vdom.Text("x")),
			vdom.Em(vdom.Text("x")),
		))
	})

	app, doc := mountApp(t, root)
	doc.Ops().ResetCounters()

	emphasized.Set(true)
	app.FlushSync()

	c := doc.Ops().Counters()
	if c.Remove != 1 || c.CreateElement != 1 {
		t.Errorf("counters = %+v, want one remove and one create", c)
	}
	if !strings.Contains(doc.Body().HTML(), "<strong>x</strong>") {
		t.Errorf("HTML = %q, want strong element", doc.Body().HTML())
	}
}

func TestInvokerStableAcrossRenders(t *testing.T) {
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(
			vdom.Button(vdom.OnClick(func() { count.Set(count.Peek() + 1) }), "+"),
			vdom.Span(vdom.TextDyn(strconv.Itoa(count.Get()))),
		)
	})

	app, doc := mountApp(t, root)
	btn := doc.Ops().QuerySelector("button")
	if btn == nil {
		t.Fatal("button not mounted")
	}

	inv := app.Renderer().InvokerFor(btn, "onclick")
	if inv == nil {
		t.Fatal("no invoker installed for onclick")
	}

	doc.Ops().ResetCounters()
	inv.Call()
	app.FlushSync()

	if !strings.Contains(doc.Body().HTML(), "<span>1</span>") {
		t.Errorf("HTML = %q, want count 1", doc.Body().HTML())
	}
	if got := app.Renderer().InvokerFor(btn, "onclick"); got != inv {
		t.Error("invoker replaced across renders")
	}
	if c := doc.Ops().Counters(); c.PatchProp != 0 {
		t.Errorf("PatchProp = %d, want 0: handler swap must stay off the host", c.PatchProp)
	}
}

func TestEventHandlerRemoval(t *testing.T) {
	clickable := reactive.NewSignal(true)
	root := vdom.Func(func() *vdom.VNode {
		if clickable.Get() {
			return vdom.Div(vdom.Button(vdom.OnClick(func() {}), "go"))
		}
		return vdom.Div(vdom.Button("go"))
	})

	app, doc := mountApp(t, root)
	btn := doc.Ops().QuerySelector("button")
	if app.Renderer().InvokerFor(btn, "onclick") == nil {
		t.Fatal("no invoker after mount")
	}

	clickable.Set(false)
	app.FlushSync()

	if app.Renderer().InvokerFor(btn, "onclick") != nil {
		t.Error("invoker survived handler removal")
	}
}

func TestStaticContentInsertedOnce(t *testing.T) {
	count := reactive.NewSignal(0)
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Div(
			vdom.Static("<table><tr><td>fixed</td></tr></table>"),
			vdom.TextDyn(strconv.Itoa(count.Get())),
		)
	})

	app, doc := mountApp(t, root)
	if c := doc.Ops().Counters(); c.InsertStatic != 1 {
		t.Fatalf("InsertStatic = %d, want 1", c.InsertStatic)
	}

	doc.Ops().ResetCounters()
	count.Set(1)
	app.FlushSync()

	if c := doc.Ops().Counters(); c.InsertStatic != 0 || c.Remove != 0 {
		t.Errorf("counters = %+v, static chunk must not be touched", c)
	}
}
