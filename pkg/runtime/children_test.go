package runtime_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/tideui/tide/pkg/memhost"
	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/vdom"
)

// keyedListRoot renders one <li> per entry, keyed by the entry itself.
func keyedListRoot(order *reactive.Signal[[]string]) vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		return vdom.Ul(vdom.Range(order.Get(), func(item string, _ int) *vdom.VNode {
			return vdom.Li(vdom.Key(item), item)
		}))
	})
}

func listTexts(t *testing.T, doc *memhost.Document) []string {
	t.Helper()
	ul, ok := doc.Ops().QuerySelector("ul").(*memhost.Node)
	if !ok {
		t.Fatal("list not mounted")
	}
	texts := make([]string, 0, ul.ChildCount())
	for _, li := range ul.Children() {
		texts = append(texts, li.TextContent())
	}
	return texts
}

func TestKeyedReorderMovesOnce(t *testing.T) {
	order := reactive.NewSignal([]string{"a", "b", "c", "d"})
	app, doc := mountApp(t, keyedListRoot(order))
	doc.Ops().ResetCounters()

	order.Set([]string{"a", "c", "b", "d"})
	app.FlushSync()

	if diff := cmp.Diff([]string{"a", "c", "b", "d"}, listTexts(t, doc)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	c := doc.Ops().Counters()
	if c.Insert != 1 {
		t.Errorf("Insert = %d, want 1 move for a single swap", c.Insert)
	}
	if c.CreateElement != 0 || c.Remove != 0 {
		t.Errorf("counters = %+v, reorder must reuse every node", c)
	}
}

func TestKeyedRotationMovesOnce(t *testing.T) {
	order := reactive.NewSignal([]string{"1", "2", "3"})
	app, doc := mountApp(t, keyedListRoot(order))
	doc.Ops().ResetCounters()

	order.Set([]string{"3", "1", "2"})
	app.FlushSync()

	if diff := cmp.Diff([]string{"3", "1", "2"}, listTexts(t, doc)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if c := doc.Ops().Counters(); c.Insert != 1 {
		t.Errorf("Insert = %d, want 1: moving the stable run is not minimal", c.Insert)
	}
}

func TestKeyedRemoveHead(t *testing.T) {
	order := reactive.NewSignal([]string{"a", "b", "c"})
	app, doc := mountApp(t, keyedListRoot(order))
	doc.Ops().ResetCounters()

	order.Set([]string{"b", "c"})
	app.FlushSync()

	if diff := cmp.Diff([]string{"b", "c"}, listTexts(t, doc)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	c := doc.Ops().Counters()
	if c.Remove != 1 || c.Insert != 0 || c.CreateElement != 0 {
		t.Errorf("counters = %+v, want a single removal", c)
	}
}

func TestKeyedInsertMiddle(t *testing.T) {
	order := reactive.NewSignal([]string{"a", "c"})
	app, doc := mountApp(t, keyedListRoot(order))
	doc.Ops().ResetCounters()

	order.Set([]string{"a", "b", "c"})
	app.FlushSync()

	if diff := cmp.Diff([]string{"a", "b", "c"}, listTexts(t, doc)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	c := doc.Ops().Counters()
	if c.CreateElement != 1 || c.Remove != 0 {
		t.Errorf("counters = %+v, want exactly one new element", c)
	}
}

func TestKeyedReverse(t *testing.T) {
	order := reactive.NewSignal([]string{"a", "b", "c", "d", "e"})
	app, doc := mountApp(t, keyedListRoot(order))

	order.Set([]string{"e", "d", "c", "b", "a"})
	app.FlushSync()

	if diff := cmp.Diff([]string{"e", "d", "c", "b", "a"}, listTexts(t, doc)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestUnkeyedPositionalPatch(t *testing.T) {
	order := reactive.NewSignal([]string{"x", "y"})
	root := vdom.Func(func() *vdom.VNode {
		return vdom.Ul(vdom.Range(order.Get(), func(item string, _ int) *vdom.VNode {
			return vdom.Li(item)
		}))
	})

	app, doc := mountApp(t, root)
	doc.Ops().ResetCounters()

	order.Set([]string{"x", "z"})
	app.FlushSync()

	c := doc.Ops().Counters()
	if c.SetText != 1 || c.CreateElement != 0 || c.Remove != 0 {
		t.Errorf("counters = %+v, positional patch should rewrite one text", c)
	}

	doc.Ops().ResetCounters()
	order.Set([]string{"x"})
	app.FlushSync()

	if c := doc.Ops().Counters(); c.Remove != 1 {
		t.Errorf("Remove = %d, want 1 for the dropped tail", c.Remove)
	}
	if diff := cmp.Diff([]string{"x"}, listTexts(t, doc)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicateKeysStillRender(t *testing.T) {
	order := reactive.NewSignal([]string{"a", "b"})
	app, doc := mountApp(t, keyedListRoot(order))

	order.Set([]string{"b", "a", "a"})
	app.FlushSync()

	if diff := cmp.Diff([]string{"b", "a", "a"}, listTexts(t, doc)); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
}
