package vtest

import (
	"strconv"
	"testing"

	"github.com/tideui/tide/pkg/reactive"
	"github.com/tideui/tide/pkg/vdom"
)

type clicker struct {
	count *reactive.Signal[int]
}

func (c *clicker) Render() *vdom.VNode {
	return vdom.Div(
		vdom.Button(vdom.ID("inc"),
			vdom.OnClick(func() { c.count.Update(func(n int) int { return n + 1 }) }),
			vdom.Text("+"),
		),
		vdom.Span(vdom.Class("count"), vdom.TextDyn(strconv.Itoa(c.count.Get()))),
	)
}

func TestMountAndClick(t *testing.T) {
	h := Mount(t, &clicker{count: reactive.NewSignal(0)})

	h.ExpectElement("button")
	h.ExpectContains(">0<")

	h.Click("#inc")
	h.ExpectContains(">1<")
	h.ExpectNotContains(">0<")

	h.Click("#inc")
	h.ExpectContains(">2<")
}

func TestQuery(t *testing.T) {
	h := Mount(t, &clicker{count: reactive.NewSignal(7)})

	span := h.MustQuery(".count")
	if got := span.TextContent(); got != "7" {
		t.Errorf("TextContent() = %q, want %q", got, "7")
	}
	if h.Query("#missing") != nil {
		t.Error("Query for absent id should return nil")
	}
}

func TestCountersTrackUpdates(t *testing.T) {
	h := Mount(t, &clicker{count: reactive.NewSignal(0)})
	h.ResetCounters()

	h.Click("#inc")

	c := h.Counters()
	if c.SetText != 1 {
		t.Errorf("SetText = %d, want 1", c.SetText)
	}
	if c.CreateElement != 0 || c.Remove != 0 {
		t.Errorf("structural ops on a text-only update: %+v", c)
	}
}

func TestRenderToString(t *testing.T) {
	html := RenderToString(vdom.P(vdom.Class("note"), vdom.Text("hello")))
	want := `<p class="note">hello</p>`
	if html != want {
		t.Errorf("RenderToString() = %q, want %q", html, want)
	}
}

func TestExpectAttribute(t *testing.T) {
	h := Mount(t, &clicker{count: reactive.NewSignal(0)})
	h.ExpectAttribute("class", "count")
}
