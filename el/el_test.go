package el

import (
	"testing"

	"github.com/tideui/tide/pkg/vdom"
)

func TestElementConstructors(t *testing.T) {
	n := Div(Class("box"), Span(Text("hi")))
	if n.Kind != vdom.KindElement || n.Tag != "div" {
		t.Fatalf("Div() = kind %v tag %q", n.Kind, n.Tag)
	}
	if n.Props["class"] != "box" {
		t.Errorf("class = %v", n.Props["class"])
	}
	if len(n.Children) != 1 || n.Children[0].Tag != "span" {
		t.Fatalf("children = %v", n.Children)
	}
}

func TestEventAttachment(t *testing.T) {
	called := false
	n := Button(OnClick(func() { called = true }))
	h, ok := n.Props["onclick"]
	if !ok {
		t.Fatal("onclick prop missing")
	}
	h.(func())()
	if !called {
		t.Error("handler not invoked")
	}
}

func TestConditionalHelpers(t *testing.T) {
	if got := If(false, Div()); got.Kind != vdom.KindComment {
		t.Errorf("If(false) kind = %v, want comment placeholder", got.Kind)
	}
	got := IfElse(true, Text("a"), Text("b"))
	if got.Text != "a" {
		t.Errorf("IfElse picked %q", got.Text)
	}
}
